package api

import (
	"context"
	"encoding/hex"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/CristiGvl/smcmon/internal/fan"
	"github.com/CristiGvl/smcmon/internal/monitor"
	"github.com/CristiGvl/smcmon/internal/smc"
)

// sectionError maps a failed section read onto a status code: 404 for a
// section turned off by configuration, 503 for a section whose reader has
// nothing to report.
func sectionError(c *fiber.Ctx, err error) error {
	status := 503
	if errors.Is(err, monitor.ErrSectionDisabled) {
		status = 404
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// Temperature endpoint
func (s *Server) getTemps(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	info, err := s.session.Temperatures(ctx)
	if err != nil {
		return sectionError(c, err)
	}

	return c.JSON(info)
}

// Fan endpoint
func (s *Server) getFans(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	fans, err := s.session.Fans(ctx)
	if err != nil {
		return sectionError(c, err)
	}
	if fans == nil {
		fans = []*fan.Info{}
	}

	return c.JSON(fans)
}

// Battery endpoint. A machine without a battery answers present=false.
func (s *Server) getBattery(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	battery, err := s.session.Battery(ctx)
	if err != nil {
		return sectionError(c, err)
	}

	if battery == nil {
		return c.JSON(fiber.Map{"present": false})
	}
	return c.JSON(fiber.Map{
		"present": true,
		"powered": battery.IsPowered(),
		"battery": battery,
	})
}

// Disk endpoint
func (s *Server) getDisk(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	info, err := s.session.Disk(ctx)
	if err != nil {
		return sectionError(c, err)
	}

	return c.JSON(info)
}

// CPU load endpoint
func (s *Server) getCPU(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	info, err := s.session.CPU(ctx)
	if err != nil {
		return sectionError(c, err)
	}

	return c.JSON(info)
}

// Memory endpoint
func (s *Server) getMemory(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	info, err := s.session.Memory(ctx)
	if err != nil {
		return sectionError(c, err)
	}

	return c.JSON(info)
}

// Snapshot endpoint, JSON by default or CBOR when the client accepts it
func (s *Server) getSnapshot(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	snap, err := s.session.Collect(ctx)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	if c.Accepts(fiber.MIMEApplicationJSON, MIMEApplicationCBOR) == MIMEApplicationCBOR {
		data, err := marshalCBOR(snap)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		c.Set(fiber.HeaderContentType, MIMEApplicationCBOR)
		return c.Send(data)
	}

	return c.JSON(snap)
}

// Single key endpoint: runs the two-phase read and reports the decoded value
func (s *Server) getSensor(c *fiber.Ctx) error {
	key, err := smc.ParseKey(c.Params("key"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	v, err := s.session.Channel().ReadKey(key)
	if err != nil {
		status := 500
		if errors.Is(err, smc.ErrCallFailed) {
			status = 404
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	resp := fiber.Map{
		"key":  key.String(),
		"type": v.Info.DataType,
		"size": v.Info.DataSize,
		"raw":  hex.EncodeToString(v.Bytes),
	}
	switch r := smc.Decode(v).(type) {
	case smc.TemperatureReading:
		resp["value"] = r.Celsius
		resp["unit"] = "celsius"
	case smc.FanSpeedReading:
		resp["value"] = r.RPM
		resp["unit"] = "rpm"
	case smc.CountReading:
		resp["value"] = r.Count
	case smc.Unrecognized:
		resp["value"] = nil
	}

	return c.JSON(resp)
}

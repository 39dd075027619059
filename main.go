package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"

	"github.com/CristiGvl/smcmon/api"
	"github.com/CristiGvl/smcmon/internal/config"
	"github.com/CristiGvl/smcmon/internal/display"
	"github.com/CristiGvl/smcmon/internal/monitor"
	"github.com/CristiGvl/smcmon/internal/platform"
)

type options struct {
	CPU     bool `short:"u" long:"cpu" description:"Show CPU temperature"`
	Disk    bool `short:"d" long:"disk" description:"Show disk space"`
	Fans    bool `short:"f" long:"fans" description:"Show fan speeds"`
	Memory  bool `short:"m" long:"memory" description:"Show memory temperature and usage"`
	GPU     bool `short:"g" long:"gpu" description:"Show GPU temperature"`
	Battery bool `short:"b" long:"battery" description:"Show battery charge and temperature"`
	All     bool `short:"v" long:"all" description:"Show everything"`

	Interval time.Duration `short:"i" long:"interval" description:"Refresh interval (default from config, 1s)"`
	Once     bool          `long:"once" description:"Print one readout and exit"`
	Config   string        `short:"c" long:"config" description:"YAML config file"`
	Debug    bool          `long:"debug" description:"Enable debug logging"`

	Serve bool   `long:"serve" description:"Serve readings over HTTP instead of printing them"`
	Bind  string `long:"bind" description:"IP address to bind the server to"`
	Port  string `long:"port" description:"Port to run the server on"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := loadConfig(&opts)
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	if err := platform.ValidateSupport(); err != nil {
		log.Fatalf("Platform validation failed: %v", err)
	}

	session, err := monitor.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to start monitoring session: %v", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.WithError(err).Error("Error closing SMC")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.Serve {
		serve(ctx, session, cfg)
		return
	}

	if opts.Once {
		snap, err := session.Collect(ctx)
		if err != nil {
			log.WithError(err).Error("Collection failed")
			return
		}
		display.Render(os.Stdout, snap)
		return
	}

	err = session.Watch(ctx, cfg.Interval, func(snap *monitor.Snapshot) {
		fmt.Print("\033[H\033[2J")
		display.Render(os.Stdout, snap)
	})
	if err != nil {
		log.WithError(err).Error("Monitoring stopped")
	}
}

// loadConfig reads the config file, if any, and applies command line overrides.
func loadConfig(opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, err
		}
	}

	sections := config.Sections{
		CPU:     opts.CPU,
		Disk:    opts.Disk,
		Fans:    opts.Fans,
		Memory:  opts.Memory,
		GPU:     opts.GPU,
		Battery: opts.Battery,
	}
	switch {
	case opts.All:
		cfg.Sections = config.All()
	case sections.Any():
		cfg.Sections = sections
	}

	if opts.Interval > 0 {
		cfg.Interval = opts.Interval
	}
	if opts.Bind != "" {
		cfg.Server.Bind = opts.Bind
	}
	if opts.Port != "" {
		cfg.Server.Port = opts.Port
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if opts.Debug {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	return cfg, cfg.Validate()
}

func serve(ctx context.Context, session *monitor.Session, cfg *config.Config) {
	server := api.NewServer(session)

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			log.WithError(err).Error("Error during shutdown")
		}
	}()

	log.Infof("Starting smcmon server on %s", cfg.Server.Addr())
	if err := server.Start(cfg.Server.Addr()); err != nil {
		log.WithError(err).Error("Server stopped")
	}
}

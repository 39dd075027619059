package smc

import "errors"

// Value is the undecoded answer to a key read. Bytes holds only the
// meaningful prefix of the 32-byte payload.
type Value struct {
	Key   Key
	Info  KeyInfo
	Bytes []byte
}

// KeyInfo runs the discovery call for key.
func (c *Channel) KeyInfo(key Key) (KeyInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keyInfo(key)
}

// ReadKey discovers the size and type of key, then reads its payload.
// Either phase failing short-circuits with a *CallError.
func (c *Channel) ReadKey(key Key) (Value, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, err := c.keyInfo(key)
	if err != nil {
		return Value{}, err
	}

	in := KeyData{
		Key:      key.Packed(),
		DataSize: info.DataSize,
		Data8:    CmdReadKey,
	}
	out, err := c.call(key, PhaseRead, &in)
	if err != nil {
		return Value{}, err
	}

	n := info.DataSize
	if n > PayloadSize {
		n = PayloadSize
	}
	payload := make([]byte, n)
	copy(payload, out.Bytes[:n])

	return Value{Key: key, Info: info, Bytes: payload}, nil
}

func (c *Channel) keyInfo(key Key) (KeyInfo, error) {
	if info, ok := c.cache[key]; ok {
		return info, nil
	}

	in := KeyData{
		Key:   key.Packed(),
		Data8: CmdGetKeyInfo,
	}
	out, err := c.call(key, PhaseKeyInfo, &in)
	if err != nil {
		return KeyInfo{}, err
	}

	info := KeyInfo{
		DataSize:   out.DataSize,
		DataType:   DataType(DecodeKey(out.DataType)),
		Attributes: out.Attributes,
	}
	if c.cache != nil {
		c.cache[key] = info
	}
	return info, nil
}

// call performs one structured exchange. Success requires both a
// successful kern_return and a zero SMC result byte.
func (c *Channel) call(key Key, phase Phase, in *KeyData) (*KeyData, error) {
	if c.driver == nil {
		return nil, ErrChannelClosed
	}

	inBuf, err := in.MarshalBinary()
	if err != nil {
		return nil, err
	}
	outBuf := make([]byte, KeyDataSize)

	if err := c.driver.Call(SelectorHandleYPCEvent, inBuf, outBuf); err != nil {
		callErr := &CallError{Key: key, Phase: phase, Err: err}
		var kr KernReturn
		if errors.As(err, &kr) {
			callErr.Code = uint32(kr)
		}
		c.log.WithError(callErr).Debug("smc call failed")
		return nil, callErr
	}

	var out KeyData
	if err := out.UnmarshalBinary(outBuf); err != nil {
		return nil, &CallError{Key: key, Phase: phase, Err: err}
	}
	if out.Result != 0 {
		callErr := &CallError{Key: key, Phase: phase, Code: uint32(out.Result)}
		c.log.WithError(callErr).Debug("smc rejected key")
		return nil, callErr
	}
	return &out, nil
}

package color

import (
	"context"
	"encoding/binary"
)

// Status is the content of the STATUS register.
type Status byte

// Valid reports that an RGBC integration cycle has completed since RGBC was enabled.
func (st Status) Valid() bool {
	return byte(st)&bitStatusValid != 0
}

// Interrupt reports that the RGBC interrupt is asserted.
func (st Status) Interrupt() bool {
	return byte(st)&bitStatusInterrupt != 0
}

// Channels holds raw RGBC channel counts.
type Channels struct {
	Clear uint16 `yaml:"clear"`
	Red   uint16 `yaml:"red"`
	Green uint16 `yaml:"green"`
	Blue  uint16 `yaml:"blue"`
}

// ReadID reads the device identification register
// (0x90 for TCS34001/TCS34005, 0x93 for TCS34003/TCS34007).
func (s *TCS3400) ReadID(ctx context.Context) (byte, error) {
	buf := make([]byte, 1)
	if err := s.readRegisters(ctx, RegID, buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (s *TCS3400) ReadStatus(ctx context.Context) (Status, error) {
	buf := make([]byte, 1)
	if err := s.readRegisters(ctx, RegStatus, buf); err != nil {
		return 0, err
	}
	return Status(buf[0]), nil
}

// ReadChannels reads all four channels in one transaction starting at CDATAL,
// which latches the upper bytes on the device.
func (s *TCS3400) ReadChannels(ctx context.Context) (Channels, error) {
	buf := make([]byte, 8)
	if err := s.readRegisters(ctx, RegCDataL, buf); err != nil {
		return Channels{}, err
	}
	return Channels{
		Clear: binary.LittleEndian.Uint16(buf[0:2]),
		Red:   binary.LittleEndian.Uint16(buf[2:4]),
		Green: binary.LittleEndian.Uint16(buf[4:6]),
		Blue:  binary.LittleEndian.Uint16(buf[6:8]),
	}, nil
}

package color

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mklimuk/lightsensors"
)

var ErrInvalidInputData = errors.New("tcs3400: invalid input data")

// DeviceError wraps a bus failure that occurred while accessing a register.
type DeviceError struct {
	Register Register
	Err      error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("tcs3400: could not access %s register: %v", e.Register, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// TCS3400 represents an ams TCS3400 color light-to-digital converter.
// See: https://ams.com/documents/20143/36005/TCS3400_DS000411_4-00.pdf
//
// The ENABLE register is never read back. The driver keeps the last value
// it wrote successfully and derives every enable/disable write from it, so
// a driver instance must not be shared between goroutines.
//
// Typical usage:
//
//	s := NewTCS3400(bus)
//	err := s.Enable(ctx)
//	err = s.SetRGBCGain(ctx, Gain16x)
//	err = s.EnableRGBC(ctx)
type TCS3400 struct {
	transport lightsensors.I2CBus
	enable    byte
}

// NewTCS3400 creates a driver that assumes the device is powered off (ENABLE = 0x00).
func NewTCS3400(trans lightsensors.I2CBus) *TCS3400 {
	return &TCS3400{transport: trans}
}

// EnableRegister returns the last value successfully written to the ENABLE register.
func (s *TCS3400) EnableRegister() byte {
	return s.enable
}

func (s *TCS3400) writeRegister(ctx context.Context, reg Register, value byte) error {
	slog.Debug("tcs3400: writing register", "register", reg, "value", fmt.Sprintf("%#04x", value))
	err := s.transport.WriteToAddr(ctx, DeviceAddress, []byte{byte(reg), value})
	if err != nil {
		return &DeviceError{Register: reg, Err: err}
	}
	return nil
}

func (s *TCS3400) readRegisters(ctx context.Context, reg Register, buf []byte) error {
	err := s.transport.WriteToAddr(ctx, DeviceAddress, []byte{byte(reg)})
	if err != nil {
		return &DeviceError{Register: reg, Err: fmt.Errorf("could not set register pointer: %w", err)}
	}
	err = s.transport.ReadFromAddr(ctx, DeviceAddress, buf)
	if err != nil {
		return &DeviceError{Register: reg, Err: err}
	}
	return nil
}

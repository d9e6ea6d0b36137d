package color

import (
	"context"
	"fmt"
)

// Enable powers the device on. The device goes to idle state.
func (s *TCS3400) Enable(ctx context.Context) error {
	return s.writeEnable(ctx, s.enable|BitPowerOn)
}

// Disable puts the device to sleep.
func (s *TCS3400) Disable(ctx context.Context) error {
	return s.writeEnable(ctx, s.enable&^BitPowerOn)
}

// EnableRGBC enables the RGBC converter.
func (s *TCS3400) EnableRGBC(ctx context.Context) error {
	return s.writeEnable(ctx, s.enable|BitRGBCEnable)
}

// DisableRGBC disables the RGBC converter.
func (s *TCS3400) DisableRGBC(ctx context.Context) error {
	return s.writeEnable(ctx, s.enable&^BitRGBCEnable)
}

// EnableRGBCInterrupts enables RGBC interrupt generation.
func (s *TCS3400) EnableRGBCInterrupts(ctx context.Context) error {
	return s.writeEnable(ctx, s.enable|BitRGBCIntEnable)
}

// DisableRGBCInterrupts disables RGBC interrupt generation.
func (s *TCS3400) DisableRGBCInterrupts(ctx context.Context) error {
	return s.writeEnable(ctx, s.enable&^BitRGBCIntEnable)
}

// EnableWait enables the wait timer between RGBC cycles.
func (s *TCS3400) EnableWait(ctx context.Context) error {
	return s.writeEnable(ctx, s.enable|BitWaitEnable)
}

// DisableWait disables the wait timer.
func (s *TCS3400) DisableWait(ctx context.Context) error {
	return s.writeEnable(ctx, s.enable&^BitWaitEnable)
}

func (s *TCS3400) writeEnable(ctx context.Context, value byte) error {
	err := s.writeRegister(ctx, RegEnable, value)
	if err != nil {
		return err
	}
	s.enable = value
	return nil
}

// SetWaitCycles sets the number of wait time cycles (1-256).
//
// Without wait long a cycle lasts 2.78ms. With wait long enabled the wait
// time is 12 times longer (about 0.03s per cycle).
func (s *TCS3400) SetWaitCycles(ctx context.Context, cycles uint16) error {
	value, err := cyclesToByte(cycles)
	if err != nil {
		return fmt.Errorf("wait cycles: %w", err)
	}
	return s.writeRegister(ctx, RegWTime, value)
}

// EnableWaitLong multiplies the wait time set with SetWaitCycles by 12.
// CONFIG is overwritten, not merged.
func (s *TCS3400) EnableWaitLong(ctx context.Context) error {
	return s.writeRegister(ctx, RegConfig, BitWaitLong)
}

// DisableWaitLong clears the CONFIG register.
func (s *TCS3400) DisableWaitLong(ctx context.Context) error {
	return s.writeRegister(ctx, RegConfig, 0)
}

// SetRGBCGain sets the RGBC converter gain.
func (s *TCS3400) SetRGBCGain(ctx context.Context, gain Gain) error {
	code, err := gain.code()
	if err != nil {
		return err
	}
	return s.writeRegister(ctx, RegControl, code)
}

// SetIntegrationCycles sets the number of integration cycles (1-256).
// The integration time is cycles * 2.78ms.
func (s *TCS3400) SetIntegrationCycles(ctx context.Context, cycles uint16) error {
	value, err := cyclesToByte(cycles)
	if err != nil {
		return fmt.Errorf("integration cycles: %w", err)
	}
	return s.writeRegister(ctx, RegATime, value)
}

// SetRGBCInterruptLowThreshold sets the clear channel low interrupt threshold.
// If the high byte write fails the device keeps the new low byte.
func (s *TCS3400) SetRGBCInterruptLowThreshold(ctx context.Context, threshold uint16) error {
	return s.writeThreshold(ctx, RegAILTL, RegAILTH, threshold)
}

// SetRGBCInterruptHighThreshold sets the clear channel high interrupt threshold.
func (s *TCS3400) SetRGBCInterruptHighThreshold(ctx context.Context, threshold uint16) error {
	return s.writeThreshold(ctx, RegAIHTL, RegAIHTH, threshold)
}

func (s *TCS3400) writeThreshold(ctx context.Context, low, high Register, threshold uint16) error {
	err := s.writeRegister(ctx, low, byte(threshold))
	if err != nil {
		return err
	}
	return s.writeRegister(ctx, high, byte(threshold>>8))
}

// SetRGBCInterruptPersistence controls the RGBC interrupt generation rate.
func (s *TCS3400) SetRGBCInterruptPersistence(ctx context.Context, persistence Persistence) error {
	code, err := persistence.code()
	if err != nil {
		return err
	}
	return s.writeRegister(ctx, RegAPers, code)
}

// cyclesToByte encodes a 1-256 cycle count the way ATIME and WTIME store it (256 - cycles).
func cyclesToByte(cycles uint16) (byte, error) {
	if cycles == 0 || cycles > 256 {
		return 0, fmt.Errorf("%w: %d cycles out of range 1-256", ErrInvalidInputData, cycles)
	}
	return byte(256 - cycles), nil
}

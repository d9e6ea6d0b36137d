package color

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Settings describes a complete sensor configuration. Zero values of Gain,
// Persistence and the cycle counts, as well as nil thresholds, leave the
// corresponding register untouched.
type Settings struct {
	Gain              Gain        `yaml:"gain,omitempty"`
	IntegrationCycles uint16      `yaml:"integration_cycles,omitempty"`
	WaitCycles        uint16      `yaml:"wait_cycles,omitempty"`
	WaitLong          bool        `yaml:"wait_long"`
	Wait              bool        `yaml:"wait"`
	LowThreshold      *uint16     `yaml:"low_threshold,omitempty"`
	HighThreshold     *uint16     `yaml:"high_threshold,omitempty"`
	Persistence       Persistence `yaml:"persistence,omitempty"`
	Interrupts        bool        `yaml:"interrupts"`
}

// LoadSettings decodes a YAML settings document. Unknown fields are rejected.
func LoadSettings(r io.Reader) (Settings, error) {
	var settings Settings
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(&settings)
	if err != nil {
		return Settings{}, fmt.Errorf("could not decode settings: %w", err)
	}
	return settings, settings.Validate()
}

func (st Settings) Validate() error {
	if st.Gain != 0 {
		if _, err := st.Gain.code(); err != nil {
			return err
		}
	}
	if st.Persistence != 0 {
		if _, err := st.Persistence.code(); err != nil {
			return err
		}
	}
	if st.IntegrationCycles != 0 {
		if _, err := cyclesToByte(st.IntegrationCycles); err != nil {
			return fmt.Errorf("integration cycles: %w", err)
		}
	}
	if st.WaitCycles != 0 {
		if _, err := cyclesToByte(st.WaitCycles); err != nil {
			return fmt.Errorf("wait cycles: %w", err)
		}
	}
	return nil
}

// Configure powers the device on, applies settings and enables the RGBC converter.
// Settings are validated before the first write. Configure stops at the first
// failed write; registers written before it keep their new values.
func (s *TCS3400) Configure(ctx context.Context, st Settings) error {
	if err := st.Validate(); err != nil {
		return err
	}
	if err := s.Enable(ctx); err != nil {
		return fmt.Errorf("could not power on: %w", err)
	}
	if st.Gain != 0 {
		if err := s.SetRGBCGain(ctx, st.Gain); err != nil {
			return fmt.Errorf("could not set gain: %w", err)
		}
	}
	if st.IntegrationCycles != 0 {
		if err := s.SetIntegrationCycles(ctx, st.IntegrationCycles); err != nil {
			return fmt.Errorf("could not set integration cycles: %w", err)
		}
	}
	if st.WaitCycles != 0 {
		if err := s.SetWaitCycles(ctx, st.WaitCycles); err != nil {
			return fmt.Errorf("could not set wait cycles: %w", err)
		}
	}
	waitLong := s.DisableWaitLong
	if st.WaitLong {
		waitLong = s.EnableWaitLong
	}
	if err := waitLong(ctx); err != nil {
		return fmt.Errorf("could not set wait long: %w", err)
	}
	if st.LowThreshold != nil {
		if err := s.SetRGBCInterruptLowThreshold(ctx, *st.LowThreshold); err != nil {
			return fmt.Errorf("could not set low threshold: %w", err)
		}
	}
	if st.HighThreshold != nil {
		if err := s.SetRGBCInterruptHighThreshold(ctx, *st.HighThreshold); err != nil {
			return fmt.Errorf("could not set high threshold: %w", err)
		}
	}
	if st.Persistence != 0 {
		if err := s.SetRGBCInterruptPersistence(ctx, st.Persistence); err != nil {
			return fmt.Errorf("could not set persistence: %w", err)
		}
	}
	wait := s.DisableWait
	if st.Wait {
		wait = s.EnableWait
	}
	if err := wait(ctx); err != nil {
		return fmt.Errorf("could not set wait: %w", err)
	}
	interrupts := s.DisableRGBCInterrupts
	if st.Interrupts {
		interrupts = s.EnableRGBCInterrupts
	}
	if err := interrupts(ctx); err != nil {
		return fmt.Errorf("could not set interrupts: %w", err)
	}
	if err := s.EnableRGBC(ctx); err != nil {
		return fmt.Errorf("could not enable RGBC: %w", err)
	}
	return nil
}

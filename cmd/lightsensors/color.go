package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/mklimuk/lightsensors/cmd/lightsensors/console"
	"github.com/mklimuk/lightsensors/color"
)

var colorCmd = cli.Command{
	Name:  "color",
	Usage: "TCS3400 RGBC sensor",
	Subcommands: []*cli.Command{
		&colorIDCmd,
		&colorStatusCmd,
		&colorReadCmd,
		&colorConfigureCmd,
		&colorPowerCmd,
		&colorGainCmd,
		&colorIntegrationCmd,
		&colorWaitCmd,
		&colorThresholdsCmd,
		&colorPersistenceCmd,
	},
}

var colorIDCmd = cli.Command{
	Name:  "id",
	Usage: "read device identification",
	Action: func(c *cli.Context) error {
		return withSensor(c, func(ctx context.Context, s *color.TCS3400) error {
			id, err := s.ReadID(ctx)
			if err != nil {
				return console.Fail("error reading device id", err)
			}
			console.Printf("device id: %s\n", console.White(hexByte(id)))
			return nil
		})
	},
}

var colorStatusCmd = cli.Command{
	Name:  "status",
	Usage: "read STATUS register",
	Action: func(c *cli.Context) error {
		return withSensor(c, func(ctx context.Context, s *color.TCS3400) error {
			st, err := s.ReadStatus(ctx)
			if err != nil {
				return console.Fail("error reading status", err)
			}
			console.Printf("valid: %s\n", console.White(st.Valid()))
			if st.Interrupt() {
				console.Printf("interrupt: %s\n", console.Yellow(true))
			} else {
				console.Printf("interrupt: %s\n", console.Green(false))
			}
			return nil
		})
	},
}

var colorReadCmd = cli.Command{
	Name:    "read",
	Aliases: []string{"rd"},
	Usage:   "read raw RGBC channel counts",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "yaml", Usage: "print channels as yaml"},
	},
	Action: func(c *cli.Context) error {
		return withSensor(c, func(ctx context.Context, s *color.TCS3400) error {
			ch, err := s.ReadChannels(ctx)
			if err != nil {
				return console.Fail("error reading channels", err)
			}
			if c.Bool("yaml") {
				return encodeYAML(ch)
			}
			console.PInfof(console.PictoRainbow, "C %s R %s G %s B %s",
				console.White(ch.Clear), console.Red(ch.Red), console.Green(ch.Green), console.Blue(ch.Blue))
			return nil
		})
	},
}

var colorConfigureCmd = cli.Command{
	Name:  "configure",
	Usage: "apply a yaml settings file and enable the RGBC converter",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true},
		&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "do not ask for confirmation"},
	},
	Action: func(c *cli.Context) error {
		f, err := os.Open(c.String("file"))
		if err != nil {
			return console.Fail("could not open settings", err)
		}
		defer func() { _ = f.Close() }()
		settings, err := color.LoadSettings(f)
		if err != nil {
			return console.Fail("invalid settings", err)
		}
		if err := encodeYAML(settings); err != nil {
			return err
		}
		if !c.Bool("yes") {
			answer, err := console.YesOrNo("apply settings?")
			if err != nil {
				return console.Fail("prompt error", err)
			}
			if answer != console.Yes {
				return nil
			}
		}
		return withSensor(c, func(ctx context.Context, s *color.TCS3400) error {
			err := s.Configure(ctx, settings)
			if err != nil {
				return console.Fail("error configuring sensor", err)
			}
			console.PInfof(console.PictoWrench, "configured, ENABLE=%s", console.White(hexByte(s.EnableRegister())))
			return nil
		})
	},
}

var colorPowerCmd = cli.Command{
	Name:      "power",
	Usage:     "power the device on or put it to sleep",
	ArgsUsage: "on|off",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return console.Exit(1, "expected 1 argument, got %d", c.NArg())
		}
		return withSensor(c, func(ctx context.Context, s *color.TCS3400) error {
			var err error
			switch c.Args().First() {
			case "on":
				err = s.Enable(ctx)
			case "off":
				err = s.Disable(ctx)
			default:
				return console.Exit(1, "expected on or off, got %q", c.Args().First())
			}
			if err != nil {
				return console.Fail("error switching power", err)
			}
			console.PInfof(console.PictoBulb, "power %s", console.White(c.Args().First()))
			return nil
		})
	},
}

var colorGainCmd = cli.Command{
	Name:      "gain",
	Usage:     "set RGBC gain",
	ArgsUsage: "1x|4x|16x|60x",
	Action: func(c *cli.Context) error {
		gain, err := color.ParseGain(c.Args().First())
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		return withSensor(c, func(ctx context.Context, s *color.TCS3400) error {
			if err := s.SetRGBCGain(ctx, gain); err != nil {
				return console.Fail("error setting gain", err)
			}
			console.PInfof(console.PictoWrench, "gain %s", console.White(gain))
			return nil
		})
	},
}

var colorIntegrationCmd = cli.Command{
	Name:      "integration",
	Usage:     "set number of integration cycles (2.78ms each)",
	ArgsUsage: "1-256",
	Action: func(c *cli.Context) error {
		cycles, err := parseUint16(c.Args().First())
		if err != nil {
			return console.Fail("invalid cycles", err)
		}
		return withSensor(c, func(ctx context.Context, s *color.TCS3400) error {
			if err := s.SetIntegrationCycles(ctx, cycles); err != nil {
				return console.Fail("error setting integration cycles", err)
			}
			console.PInfof(console.PictoWrench, "integration cycles %s", console.White(cycles))
			return nil
		})
	},
}

var colorWaitCmd = cli.Command{
	Name:        "wait",
	Usage:       "set number of wait cycles and enable the wait timer",
	ArgsUsage:   "1-256",
	Description: "Writes the whole ENABLE register: RGBC and interrupts stay off unless --rgbc and --interrupts are given.",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "long", Usage: "multiply wait time by 12"},
		&cli.BoolFlag{Name: "rgbc", Usage: "keep the RGBC converter enabled"},
		&cli.BoolFlag{Name: "interrupts", Usage: "keep RGBC interrupts enabled"},
	},
	Action: func(c *cli.Context) error {
		cycles, err := parseUint16(c.Args().First())
		if err != nil {
			return console.Fail("invalid cycles", err)
		}
		opts := waitOptions{
			cycles:     cycles,
			long:       c.Bool("long"),
			rgbc:       c.Bool("rgbc"),
			interrupts: c.Bool("interrupts"),
		}
		return withSensor(c, func(ctx context.Context, s *color.TCS3400) error {
			if err := applyWait(ctx, s, opts); err != nil {
				return console.Exit(1, "%s", console.Red(err))
			}
			console.PInfof(console.PictoWrench, "wait cycles %s (long: %t), ENABLE=%s",
				console.White(cycles), opts.long, console.White(hexByte(s.EnableRegister())))
			return nil
		})
	},
}

type waitOptions struct {
	cycles     uint16
	long       bool
	rgbc       bool
	interrupts bool
}

// applyWait programs the wait timer and writes every ENABLE bit,
// the device starts from a powered off cache on each run.
func applyWait(ctx context.Context, s *color.TCS3400, opts waitOptions) error {
	if err := s.SetWaitCycles(ctx, opts.cycles); err != nil {
		return fmt.Errorf("error setting wait cycles: %w", err)
	}
	waitLong := s.DisableWaitLong
	if opts.long {
		waitLong = s.EnableWaitLong
	}
	if err := waitLong(ctx); err != nil {
		return fmt.Errorf("error setting wait long: %w", err)
	}
	if err := s.Enable(ctx); err != nil {
		return fmt.Errorf("error powering on: %w", err)
	}
	if err := s.EnableWait(ctx); err != nil {
		return fmt.Errorf("error enabling wait: %w", err)
	}
	if opts.interrupts {
		if err := s.EnableRGBCInterrupts(ctx); err != nil {
			return fmt.Errorf("error enabling interrupts: %w", err)
		}
	}
	if opts.rgbc {
		if err := s.EnableRGBC(ctx); err != nil {
			return fmt.Errorf("error enabling RGBC: %w", err)
		}
	}
	return nil
}

var colorThresholdsCmd = cli.Command{
	Name:      "thresholds",
	Usage:     "set clear channel interrupt thresholds",
	ArgsUsage: "<low> <high>",
	Action: func(c *cli.Context) error {
		if c.NArg() != 2 {
			return console.Exit(1, "expected 2 arguments, got %d", c.NArg())
		}
		low, err := parseUint16(c.Args().Get(0))
		if err != nil {
			return console.Fail("invalid low threshold", err)
		}
		high, err := parseUint16(c.Args().Get(1))
		if err != nil {
			return console.Fail("invalid high threshold", err)
		}
		return withSensor(c, func(ctx context.Context, s *color.TCS3400) error {
			if err := s.SetRGBCInterruptLowThreshold(ctx, low); err != nil {
				return console.Fail("error setting low threshold", err)
			}
			if err := s.SetRGBCInterruptHighThreshold(ctx, high); err != nil {
				return console.Fail("error setting high threshold", err)
			}
			console.PInfof(console.PictoBell, "thresholds %s - %s", console.White(low), console.White(high))
			return nil
		})
	},
}

var colorPersistenceCmd = cli.Command{
	Name:      "persistence",
	Usage:     "set interrupt persistence",
	ArgsUsage: "every|any|2|3|5|10|15|...|60",
	Action: func(c *cli.Context) error {
		p, err := color.ParsePersistence(c.Args().First())
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		return withSensor(c, func(ctx context.Context, s *color.TCS3400) error {
			if err := s.SetRGBCInterruptPersistence(ctx, p); err != nil {
				return console.Fail("error setting persistence", err)
			}
			console.PInfof(console.PictoBell, "persistence %s", console.White(p))
			return nil
		})
	},
}

func parseUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func hexByte(v byte) string {
	return fmt.Sprintf("%#04x", v)
}

func encodeYAML(v interface{}) error {
	enc := yaml.NewEncoder(console.Output())
	defer func() { _ = enc.Close() }()
	err := enc.Encode(v)
	if err != nil {
		return console.Fail("encoding error", err)
	}
	return nil
}

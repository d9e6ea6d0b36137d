package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"
	"periph.io/x/conn/v3/physic"

	"github.com/mklimuk/lightsensors"
	"github.com/mklimuk/lightsensors/adapter"
	"github.com/mklimuk/lightsensors/cmd/lightsensors/console"
	"github.com/mklimuk/lightsensors/color"
	"github.com/mklimuk/lightsensors/i2c"
	"github.com/mklimuk/lightsensors/snsctx"
)

const (
	adapterMCP2221 = "mcp2221"
	adapterGeneric = "generic"
	adapterNanoPi  = "nanopi"
)

const commandTimeout = 5 * time.Second

var errUnknownAdapter = errors.New("unknown adapter")

// openBus returns the bus selected with global flags and a function releasing it.
func openBus(c *cli.Context) (lightsensors.I2CBus, func(), error) {
	switch c.String("adapter") {
	case adapterMCP2221:
		a := adapter.NewMCP2221(adapter.WithSpeed(c.Int("speed")))
		if err := a.Init(); err != nil {
			return nil, nil, err
		}
		return a, func() {}, nil
	case adapterGeneric:
		bus, err := i2c.NewGenericBus(c.String("device"))
		if err != nil {
			return nil, nil, err
		}
		if err := bus.SetSpeed(physic.Frequency(c.Int("speed")) * physic.Hertz); err != nil {
			// not every i2c-dev driver supports changing the clock
			slog.Warn("could not set bus speed", "error", err)
		}
		return bus, func() {
			if err := bus.Close(); err != nil {
				slog.Error("error closing bus", "error", err)
			}
		}, nil
	case adapterNanoPi:
		npi := nanopi.NewNeoAdaptor()
		if err := npi.Connect(); err != nil {
			return nil, nil, fmt.Errorf("adaptor connect error: %w", err)
		}
		var opts []i2c.GobotBusOpt
		if c.IsSet("bus") {
			opts = append(opts, i2c.WithBusNumber(c.Int("bus")))
		}
		bus := i2c.NewGobotBus(npi, opts...)
		return bus, func() {
			if err := bus.Close(); err != nil {
				slog.Error("error closing bus", "error", err)
			}
			if err := npi.Finalize(); err != nil {
				slog.Error("error finalizing adaptor", "error", err)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", errUnknownAdapter, c.String("adapter"))
	}
}

// withSensor runs fn against a TCS3400 on the selected bus.
// Every invocation starts from a powered off ENABLE register cache.
func withSensor(c *cli.Context, fn func(ctx context.Context, s *color.TCS3400) error) error {
	bus, closeBus, err := openBus(c)
	if err != nil {
		return console.Fail("adapter initialization error", err)
	}
	defer closeBus()
	ctx, cancel := context.WithTimeout(snsctx.SetVerbose(c.Context, c.Bool("verbose")), commandTimeout)
	defer cancel()
	return fn(ctx, color.NewTCS3400(bus))
}

package i2c

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gobot.io/x/gobot/v2/drivers/i2c"

	"github.com/mklimuk/lightsensors"
)

var _ lightsensors.I2CBus = &GobotBus{}

// GobotBus is an I2CBus on top of a gobot platform adaptor (e.g. nanopi.NewNeoAdaptor()).
// The adaptor must be connected before the first transaction. One gobot
// connection is opened per device address and reused.
type GobotBus struct {
	mx          sync.Mutex
	adaptor     i2c.Connector
	busNr       int
	connections map[byte]i2c.Connection
}

type GobotBusOpt func(*GobotBus)

// WithBusNumber selects the bus; the adaptor default is used otherwise.
func WithBusNumber(nr int) GobotBusOpt {
	return func(b *GobotBus) {
		b.busNr = nr
	}
}

func NewGobotBus(adaptor i2c.Connector, opts ...GobotBusOpt) *GobotBus {
	b := &GobotBus{
		adaptor:     adaptor,
		busNr:       adaptor.DefaultI2cBus(),
		connections: make(map[byte]i2c.Connection),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *GobotBus) connection(address byte) (i2c.Connection, error) {
	if conn, ok := b.connections[address]; ok {
		return conn, nil
	}
	conn, err := b.adaptor.GetI2cConnection(int(address), b.busNr)
	if err != nil {
		return nil, fmt.Errorf("could not open connection to %x on bus %d: %w", address, b.busNr, err)
	}
	b.connections[address] = conn
	return conn, nil
}

func (b *GobotBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mx.Lock()
	defer b.mx.Unlock()
	conn, err := b.connection(address)
	if err != nil {
		return err
	}
	err = conn.WriteBytes(buffer)
	if err != nil {
		return fmt.Errorf("could not write to i2c bus %x: %w", address, err)
	}
	return nil
}

func (b *GobotBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mx.Lock()
	defer b.mx.Unlock()
	conn, err := b.connection(address)
	if err != nil {
		return err
	}
	n, err := conn.Read(buffer)
	if err != nil {
		return fmt.Errorf("could not read from i2c bus %x: %w", address, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short read from i2c bus %x: expected %d bytes, got %d", address, len(buffer), n)
	}
	return nil
}

func (b *GobotBus) Release(ctx context.Context) error {
	return nil
}

// Close closes all cached connections. The adaptor itself is left to the caller.
func (b *GobotBus) Close() error {
	b.mx.Lock()
	defer b.mx.Unlock()
	var errs []error
	for addr, conn := range b.connections {
		if err := conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("could not close connection to %x: %w", addr, err))
		}
		delete(b.connections, addr)
	}
	return errors.Join(errs...)
}

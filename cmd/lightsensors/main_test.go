package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mklimuk/lightsensors/adapter"
	"github.com/mklimuk/lightsensors/color"
)

// recordingBus keeps every write and fails once failAt writes went through.
type recordingBus struct {
	writes [][]byte
	failAt int
}

func (b *recordingBus) ReadFromAddr(context.Context, byte, []byte) error { return nil }

func (b *recordingBus) WriteToAddr(_ context.Context, _ byte, buffer []byte) error {
	if b.failAt > 0 && len(b.writes) == b.failAt {
		return errors.New("nack")
	}
	b.writes = append(b.writes, append([]byte(nil), buffer...))
	return nil
}

func (b *recordingBus) Release(context.Context) error { return nil }

func TestRun_ValidatesBeforeOpeningBus(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown gain", []string{"color", "gain", "8x"}},
		{"unknown persistence", []string{"color", "persistence", "4"}},
		{"cycles not a number", []string{"color", "integration", "abc"}},
		{"cycles overflow", []string{"color", "wait", "70000"}},
		{"missing threshold", []string{"color", "thresholds", "10"}},
		{"missing power state", []string{"color", "power"}},
		{"speed below range", []string{"--speed", "0", "color", "id"}},
		{"speed above range", []string{"--speed", "1000000", "color", "id"}},
		{"missing settings file", []string{"color", "configure", "--file", "does-not-exist.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 1, run(append([]string{"lightsensors"}, tt.args...)))
		})
	}
}

func TestRun_UnknownAdapter(t *testing.T) {
	assert.Equal(t, 1, run([]string{"lightsensors", "--adapter", "ftdi", "color", "id"}))
}

func TestRun_Help(t *testing.T) {
	assert.Equal(t, 0, run([]string{"lightsensors", "--help"}))
}

func TestApplyWait(t *testing.T) {
	tests := []struct {
		name     string
		opts     waitOptions
		expected [][]byte
	}{
		{
			name: "wait only",
			opts: waitOptions{cycles: 10},
			expected: [][]byte{
				{0x83, 0xF6},
				{0x8D, 0x00},
				{0x80, 0x01},
				{0x80, 0x09},
			},
		},
		{
			name: "keeps converter and interrupts",
			opts: waitOptions{cycles: 256, long: true, rgbc: true, interrupts: true},
			expected: [][]byte{
				{0x83, 0x00},
				{0x8D, 0x02},
				{0x80, 0x01},
				{0x80, 0x09},
				{0x80, 0x19},
				{0x80, 0x1B},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := &recordingBus{}
			s := color.NewTCS3400(bus)
			require.NoError(t, applyWait(context.Background(), s, tt.opts))
			assert.Equal(t, tt.expected, bus.writes)
			assert.Equal(t, tt.expected[len(tt.expected)-1][1], s.EnableRegister())
		})
	}
}

func TestApplyWait_Error(t *testing.T) {
	bus := &recordingBus{failAt: 2}
	s := color.NewTCS3400(bus)
	err := applyWait(context.Background(), s, waitOptions{cycles: 10, rgbc: true})
	assert.ErrorContains(t, err, "error powering on")
	var devErr *color.DeviceError
	assert.ErrorAs(t, err, &devErr)
	assert.Len(t, bus.writes, 2)
	assert.Equal(t, byte(0), s.EnableRegister())
}

func TestHexByte(t *testing.T) {
	assert.Equal(t, "0x01", hexByte(0x01))
	assert.Equal(t, "0x1b", hexByte(0x1B))
	assert.Equal(t, "0x00", hexByte(0))
}

func TestSpeedRange(t *testing.T) {
	err := adapter.NewMCP2221(adapter.WithSpeed(20_000)).Init()
	assert.ErrorIs(t, err, adapter.ErrInvalidSpeed)
}

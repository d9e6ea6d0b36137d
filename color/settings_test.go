package color

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const fullSettings = `
gain: 16x
integration_cycles: 64
wait_cycles: 10
wait_long: true
wait: true
low_threshold: 100
high_threshold: 60000
persistence: 5
interrupts: true
`

func TestLoadSettings(t *testing.T) {
	st, err := LoadSettings(strings.NewReader(fullSettings))
	require.NoError(t, err)

	assert.Equal(t, Gain16x, st.Gain)
	assert.Equal(t, uint16(64), st.IntegrationCycles)
	assert.Equal(t, uint16(10), st.WaitCycles)
	assert.True(t, st.WaitLong)
	assert.True(t, st.Wait)
	require.NotNil(t, st.LowThreshold)
	assert.Equal(t, uint16(100), *st.LowThreshold)
	require.NotNil(t, st.HighThreshold)
	assert.Equal(t, uint16(60000), *st.HighThreshold)
	assert.Equal(t, Persistence5, st.Persistence)
	assert.True(t, st.Interrupts)
}

func TestLoadSettings_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		invalid bool
	}{
		{"unknown field", "gain: 4x\ncolour: red\n", false},
		{"unknown gain", "gain: 8x\n", true},
		{"unknown persistence", "persistence: 4\n", true},
		{"integration out of range", "integration_cycles: 257\n", true},
		{"wait out of range", "wait_cycles: 300\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSettings(strings.NewReader(tt.doc))
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalidInputData)
			}
		})
	}
}

func TestSettings_MarshalYAML(t *testing.T) {
	low := uint16(7)
	out, err := yaml.Marshal(Settings{Gain: Gain60x, Persistence: PersistenceAny, LowThreshold: &low})
	require.NoError(t, err)

	assert.Contains(t, string(out), "gain: 60x")
	assert.Contains(t, string(out), "persistence: any")
	assert.Contains(t, string(out), "low_threshold: 7")
	assert.NotContains(t, string(out), "high_threshold")
	assert.NotContains(t, string(out), "integration_cycles")
}

func TestTCS3400_Configure(t *testing.T) {
	bus := new(MockI2CBus)
	bus.On("WriteToAddr", mock.Anything, byte(DeviceAddress), mock.Anything).Return(nil)
	sensor := NewTCS3400(bus)
	st, err := LoadSettings(strings.NewReader(fullSettings))
	require.NoError(t, err)

	require.NoError(t, sensor.Configure(context.Background(), st))

	assert.Equal(t, [][]byte{
		{0x80, 0x01}, // power on
		{0x8F, 0x02}, // 16x
		{0x81, 0xC0}, // 64 cycles
		{0x83, 0xF6}, // 10 cycles
		{0x8D, 0x02}, // wait long
		{0x84, 0x64}, // low threshold 100
		{0x85, 0x00},
		{0x86, 0x60}, // 60000 = 0xEA60
		{0x87, 0xEA},
		{0x8C, 0x04}, // persistence 5
		{0x80, 0x09}, // wait
		{0x80, 0x19}, // interrupts
		{0x80, 0x1B}, // RGBC
	}, bus.writes())
	assert.Equal(t, byte(0x1B), sensor.EnableRegister())
}

func TestTCS3400_ConfigureMinimal(t *testing.T) {
	bus := new(MockI2CBus)
	bus.On("WriteToAddr", mock.Anything, byte(DeviceAddress), mock.Anything).Return(nil)
	sensor := NewTCS3400(bus)

	require.NoError(t, sensor.Configure(context.Background(), Settings{}))

	assert.Equal(t, [][]byte{
		{0x80, 0x01},
		{0x8D, 0x00},
		{0x80, 0x01},
		{0x80, 0x01},
		{0x80, 0x03},
	}, bus.writes())
}

func TestTCS3400_ConfigureInvalid(t *testing.T) {
	bus := new(MockI2CBus)
	err := NewTCS3400(bus).Configure(context.Background(), Settings{IntegrationCycles: 1024})

	assert.ErrorIs(t, err, ErrInvalidInputData)
	bus.AssertNotCalled(t, "WriteToAddr", mock.Anything, mock.Anything, mock.Anything)
}

func TestTCS3400_ConfigureStopsOnError(t *testing.T) {
	bus := new(MockI2CBus)
	bus.expectWrite(RegEnable, BitPowerOn)
	bus.On("WriteToAddr", mock.Anything, byte(DeviceAddress), []byte{byte(RegControl), 0x01}).Return(errBus).Once()
	sensor := NewTCS3400(bus)

	err := sensor.Configure(context.Background(), Settings{Gain: Gain4x, IntegrationCycles: 10})

	require.Error(t, err)
	assert.ErrorIs(t, err, errBus)
	assert.Contains(t, err.Error(), "could not set gain")
	assert.Len(t, bus.writes(), 2)
	assert.Equal(t, BitPowerOn, sensor.EnableRegister())
	bus.AssertExpectations(t)
}

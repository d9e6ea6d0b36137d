package color

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTCS3400_ReadChannels(t *testing.T) {
	bus := new(MockI2CBus)
	bus.On("WriteToAddr", mock.Anything, byte(DeviceAddress), []byte{byte(RegCDataL)}).Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, byte(DeviceAddress), mock.Anything).
		Return([]byte{0x34, 0x12, 0x01, 0x00, 0xFF, 0xFF, 0x00, 0x80}, nil).Once()

	ch, err := NewTCS3400(bus).ReadChannels(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Channels{Clear: 0x1234, Red: 0x0001, Green: 0xFFFF, Blue: 0x8000}, ch)
	bus.AssertExpectations(t)
}

func TestTCS3400_ReadID(t *testing.T) {
	bus := new(MockI2CBus)
	bus.On("WriteToAddr", mock.Anything, byte(DeviceAddress), []byte{byte(RegID)}).Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, byte(DeviceAddress), mock.Anything).Return([]byte{0x90}, nil).Once()

	id, err := NewTCS3400(bus).ReadID(context.Background())

	require.NoError(t, err)
	assert.Equal(t, byte(0x90), id)
}

func TestTCS3400_ReadStatus(t *testing.T) {
	tests := []struct {
		raw       byte
		valid     bool
		interrupt bool
	}{
		{0x00, false, false},
		{0x01, true, false},
		{0x10, false, true},
		{0x11, true, true},
	}
	for _, tt := range tests {
		bus := new(MockI2CBus)
		bus.On("WriteToAddr", mock.Anything, byte(DeviceAddress), []byte{byte(RegStatus)}).Return(nil).Once()
		bus.On("ReadFromAddr", mock.Anything, byte(DeviceAddress), mock.Anything).Return([]byte{tt.raw}, nil).Once()

		st, err := NewTCS3400(bus).ReadStatus(context.Background())

		require.NoError(t, err)
		assert.Equal(t, tt.valid, st.Valid(), "status %#04x", tt.raw)
		assert.Equal(t, tt.interrupt, st.Interrupt(), "status %#04x", tt.raw)
	}
}

func TestTCS3400_ReadErrors(t *testing.T) {
	t.Run("pointer write", func(t *testing.T) {
		bus := new(MockI2CBus)
		bus.On("WriteToAddr", mock.Anything, byte(DeviceAddress), mock.Anything).Return(errBus).Once()

		_, err := NewTCS3400(bus).ReadChannels(context.Background())

		var devErr *DeviceError
		require.ErrorAs(t, err, &devErr)
		assert.Equal(t, RegCDataL, devErr.Register)
		assert.ErrorIs(t, err, errBus)
		bus.AssertNotCalled(t, "ReadFromAddr", mock.Anything, mock.Anything, mock.Anything)
	})
	t.Run("read", func(t *testing.T) {
		bus := new(MockI2CBus)
		bus.On("WriteToAddr", mock.Anything, byte(DeviceAddress), mock.Anything).Return(nil).Once()
		bus.On("ReadFromAddr", mock.Anything, byte(DeviceAddress), mock.Anything).Return(nil, errBus).Once()

		_, err := NewTCS3400(bus).ReadID(context.Background())

		assert.ErrorIs(t, err, errBus)
	})
}

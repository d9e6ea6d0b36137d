package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGain(t *testing.T) {
	tests := []struct {
		given    string
		expected Gain
	}{
		{"1x", Gain1x},
		{"4", Gain4x},
		{"16X", Gain16x},
		{" 60x ", Gain60x},
	}
	for _, tt := range tests {
		t.Run(tt.given, func(t *testing.T) {
			g, err := ParseGain(tt.given)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, g)
		})
	}
	for _, given := range []string{"", "x", "2x", "64x"} {
		_, err := ParseGain(given)
		assert.ErrorIs(t, err, ErrInvalidInputData, given)
	}
}

func TestGainCodes(t *testing.T) {
	for i, g := range []Gain{Gain1x, Gain4x, Gain16x, Gain60x} {
		code, err := g.code()
		require.NoError(t, err)
		assert.Equal(t, byte(i), code)
	}
	_, err := Gain(0).code()
	assert.ErrorIs(t, err, ErrInvalidInputData)
}

func TestPersistenceCodes(t *testing.T) {
	prev := -1
	for p := PersistenceEvery; p <= Persistence60; p++ {
		code, err := p.code()
		require.NoError(t, err)
		assert.Greater(t, int(code), prev, "codes must strictly increase (%s)", p)
		prev = int(code)
	}
	assert.Equal(t, 15, prev)
	_, err := Persistence(17).code()
	assert.ErrorIs(t, err, ErrInvalidInputData)
}

func TestParsePersistence(t *testing.T) {
	for p := PersistenceEvery; p <= Persistence60; p++ {
		parsed, err := ParsePersistence(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	parsed, err := ParsePersistence("EVERY")
	require.NoError(t, err)
	assert.Equal(t, PersistenceEvery, parsed)
	_, err = ParsePersistence("4")
	assert.ErrorIs(t, err, ErrInvalidInputData)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "16x", Gain16x.String())
	assert.Equal(t, "Gain(7)", Gain(7).String())
	assert.Equal(t, "every", PersistenceEvery.String())
	assert.Equal(t, "Persistence(0)", Persistence(0).String())
	assert.Equal(t, "APERS", RegAPers.String())
	assert.Equal(t, "0x9c", Register(0x9C).String())
	assert.Equal(t, "0x05", Register(0x05).String())
}

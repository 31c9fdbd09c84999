package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestMapBoxInches(t *testing.T) {
	m := NewMapper(10.0, 5.625)

	box, err := m.MapBox(96, 54, f64(192), f64(108))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, box.X, 1e-9)
	assert.InDelta(t, 0.5625, box.Y, 1e-9)
	assert.InDelta(t, 2.0, box.W, 1e-9)
	assert.InDelta(t, 1.125, box.H, 1e-9)
}

func TestMapBoxLinearity(t *testing.T) {
	m := NewMapper(720, 405)

	one, err := m.MapBox(50, 80, f64(100), f64(40))
	require.NoError(t, err)
	two, err := m.MapBox(100, 160, f64(200), f64(80))
	require.NoError(t, err)

	assert.InDelta(t, one.X*2, two.X, 1e-9)
	assert.InDelta(t, one.Y*2, two.Y, 1e-9)
	assert.InDelta(t, one.W*2, two.W, 1e-9)
	assert.InDelta(t, one.H*2, two.H, 1e-9)
}

func TestMapBoxDefaultSize(t *testing.T) {
	m := NewMapper(10.0, 5.625)

	box, err := m.MapBox(0, 0, nil, nil)
	require.NoError(t, err)

	// 200x40px defaults on the 960x540 reference canvas.
	assert.InDelta(t, 200.0/960.0*10.0, box.W, 1e-9)
	assert.InDelta(t, 40.0/540.0*5.625, box.H, 1e-9)
}

func TestMapBoxPreservesFractions(t *testing.T) {
	m := NewMapper(10.0, 5.625)

	box, err := m.MapBox(10, 20, nil, nil)
	require.NoError(t, err)

	assert.InDelta(t, 0.10416666, box.X, 1e-6)
	assert.InDelta(t, 0.20833333, box.Y, 1e-6)
}

func TestMapBoxRejectsNegative(t *testing.T) {
	m := NewMapper(10.0, 5.625)

	_, err := m.MapBox(-1, 0, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)

	_, err = m.MapBox(0, -0.5, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

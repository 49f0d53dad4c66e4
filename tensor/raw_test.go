package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  int
	}{
		{"scalar", Shape{}, 1},
		{"vector", Shape{5}, 5},
		{"matrix", Shape{3, 4}, 12},
		{"rank3", Shape{2, 3, 4}, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shape.NumElements())
		})
	}
}

func TestShapeValidate(t *testing.T) {
	require.NoError(t, Shape{2, 3}.Validate())
	require.Error(t, Shape{2, 0}.Validate())
	require.Error(t, Shape{-1, 3}.Validate())
}

func TestNewRawZeroInitialized(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32)
	require.NoError(t, err)

	assert.Equal(t, 6, raw.NumElements())
	assert.Equal(t, 24, raw.ByteSize())
	for _, v := range raw.AsFloat32() {
		assert.Zero(t, v)
	}
}

func TestNewRawInvalidShape(t *testing.T) {
	_, err := NewRaw(Shape{2, -1}, Float32)
	require.Error(t, err)
}

func TestFromFloat32RoundTrip(t *testing.T) {
	values := []float32{1, 2, 3, 4, 5, 6}
	raw, err := FromFloat32(values, Shape{2, 3})
	require.NoError(t, err)

	assert.Equal(t, values, raw.AsFloat32())
	assert.Equal(t, Float32, raw.DType())
	assert.True(t, raw.Shape().Equal(Shape{2, 3}))
}

func TestFromFloat32LengthMismatch(t *testing.T) {
	_, err := FromFloat32([]float32{1, 2, 3}, Shape{2, 2})
	require.Error(t, err)
}

func TestAsFloat32WrongDType(t *testing.T) {
	raw, err := NewRaw(Shape{2}, Float64)
	require.NoError(t, err)
	assert.Panics(t, func() { raw.AsFloat32() })
}

func TestCloneIsDeep(t *testing.T) {
	raw, err := FromFloat32([]float32{1, 2, 3}, Shape{3})
	require.NoError(t, err)

	clone := raw.Clone()
	require.True(t, raw.EqualData(clone))

	clone.AsFloat32()[0] = 99
	assert.False(t, raw.EqualData(clone))
	assert.Equal(t, float32(1), raw.AsFloat32()[0])
}

func TestCopyFromShapeMismatch(t *testing.T) {
	dst, err := NewRaw(Shape{2, 2}, Float32)
	require.NoError(t, err)
	src, err := NewRaw(Shape{4}, Float32)
	require.NoError(t, err)

	require.Error(t, dst.CopyFrom(src))
}

func TestParseDataType(t *testing.T) {
	for _, dt := range []DataType{Float32, Float64, Int32, Int64, Uint8, Bool} {
		parsed, ok := ParseDataType(dt.String())
		require.True(t, ok)
		assert.Equal(t, dt, parsed)
	}

	_, ok := ParseDataType("complex128")
	assert.False(t, ok)
}

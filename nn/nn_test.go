package nn

import (
	"testing"

	"github.com/kiln-ml/kiln/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenseForwardKnownValues(t *testing.T) {
	layer := NewDense(2, 2)

	// W = [[1, 2], [3, 4]], b = [0.5, -0.5]
	copy(layer.Weight().Tensor().AsFloat32(), []float32{1, 2, 3, 4})
	copy(layer.Bias().Tensor().AsFloat32(), []float32{0.5, -0.5})

	input, err := tensor.FromFloat32([]float32{1, 1}, tensor.Shape{1, 2})
	require.NoError(t, err)

	out := layer.Forward(input)
	require.True(t, out.Shape().Equal(tensor.Shape{1, 2}))

	// y = x @ W.T + b = [1+2+0.5, 3+4-0.5]
	assert.InDelta(t, 3.5, out.AsFloat32()[0], 1e-6)
	assert.InDelta(t, 6.5, out.AsFloat32()[1], 1e-6)
}

func TestDenseForwardShapeMismatch(t *testing.T) {
	layer := NewDense(4, 2)
	input, err := tensor.FromFloat32([]float32{1, 2, 3}, tensor.Shape{1, 3})
	require.NoError(t, err)

	assert.Panics(t, func() { layer.Forward(input) })
}

func TestDenseStateDictRoundTrip(t *testing.T) {
	src := NewDense(3, 2)
	dst := NewDense(3, 2)

	require.NoError(t, dst.LoadStateDict(src.StateDict()))

	assert.True(t, src.Weight().Tensor().EqualData(dst.Weight().Tensor()))
	assert.True(t, src.Bias().Tensor().EqualData(dst.Bias().Tensor()))
}

func TestDenseLoadStateDictMissingKey(t *testing.T) {
	layer := NewDense(3, 2)

	err := layer.LoadStateDict(map[string]*tensor.RawTensor{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing weight")
}

func TestDenseLoadStateDictShapeMismatch(t *testing.T) {
	layer := NewDense(3, 2)

	bad, err := tensor.NewRaw(tensor.Shape{5, 5}, tensor.Float32)
	require.NoError(t, err)

	err = layer.LoadStateDict(map[string]*tensor.RawTensor{
		"weight": bad,
		"bias":   layer.Bias().Tensor(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shape mismatch")
}

func TestReLUForward(t *testing.T) {
	act := NewReLU()
	input, err := tensor.FromFloat32([]float32{-1, 0, 2.5}, tensor.Shape{3})
	require.NoError(t, err)

	out := act.Forward(input)
	assert.Equal(t, []float32{0, 0, 2.5}, out.AsFloat32())

	// Input must not be mutated.
	assert.Equal(t, []float32{-1, 0, 2.5}, input.AsFloat32())
	assert.Empty(t, act.Parameters())
}

func TestSequentialStateDictKeys(t *testing.T) {
	model := NewSequential().
		Add("hidden", NewDense(4, 3)).
		Add("act", NewReLU()).
		Add("out", NewDense(3, 2))

	stateDict := model.StateDict()
	require.Len(t, stateDict, 4)
	for _, key := range []string{"hidden.weight", "hidden.bias", "out.weight", "out.bias"} {
		assert.Contains(t, stateDict, key)
	}
}

func TestSequentialParameterOrder(t *testing.T) {
	model := NewSequential().
		Add("hidden", NewDense(4, 3)).
		Add("out", NewDense(3, 2))

	params := model.Parameters()
	require.Len(t, params, 4)
	assert.True(t, params[0].Tensor().Shape().Equal(tensor.Shape{3, 4})) // hidden.weight
	assert.True(t, params[1].Tensor().Shape().Equal(tensor.Shape{3}))   // hidden.bias
	assert.True(t, params[2].Tensor().Shape().Equal(tensor.Shape{2, 3})) // out.weight
	assert.True(t, params[3].Tensor().Shape().Equal(tensor.Shape{2}))   // out.bias
}

func TestSequentialLoadStateDict(t *testing.T) {
	src := NewSequential().
		Add("hidden", NewDense(4, 3)).
		Add("out", NewDense(3, 2))
	dst := NewSequential().
		Add("hidden", NewDense(4, 3)).
		Add("out", NewDense(3, 2))

	require.NoError(t, dst.LoadStateDict(src.StateDict()))

	srcParams := src.Parameters()
	dstParams := dst.Parameters()
	for i := range srcParams {
		assert.True(t, srcParams[i].Tensor().EqualData(dstParams[i].Tensor()))
	}
}

func TestSequentialLoadStateDictMissingChildParams(t *testing.T) {
	model := NewSequential().Add("hidden", NewDense(4, 3))

	err := model.LoadStateDict(map[string]*tensor.RawTensor{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `child "hidden"`)
}

func TestSequentialLoadStateDictRejectsUnknownKeys(t *testing.T) {
	src := NewSequential().Add("hidden", NewDense(4, 3))
	dst := NewSequential().Add("encoder", NewDense(4, 3))

	// Same shapes, renamed layer: the restore must fail loudly rather
	// than leave "encoder" at its fresh init.
	err := dst.LoadStateDict(src.StateDict())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hidden.weight")
}

func TestSequentialDuplicateChildPanics(t *testing.T) {
	model := NewSequential().Add("hidden", NewDense(2, 2))
	assert.Panics(t, func() { model.Add("hidden", NewDense(2, 2)) })
	assert.Panics(t, func() { model.Add("a.b", NewDense(2, 2)) })
}

func TestSequentialForwardChains(t *testing.T) {
	model := NewSequential().
		Add("first", NewDense(2, 2)).
		Add("act", NewReLU())

	// Identity weight, zero bias: ReLU(x) end to end.
	copy(model.Child("first").(*Dense).Weight().Tensor().AsFloat32(), []float32{1, 0, 0, 1})

	input, err := tensor.FromFloat32([]float32{-3, 4}, tensor.Shape{1, 2})
	require.NoError(t, err)

	out := model.Forward(input)
	assert.Equal(t, []float32{0, 4}, out.AsFloat32())
}

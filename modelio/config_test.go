package modelio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordArgsDefaultsOnly(t *testing.T) {
	cfg := RecordArgs(Config{"filters": 16, "depth": 2}, nil)

	assert.True(t, cfg.Equal(Config{"filters": 16, "depth": 2}))
}

func TestRecordArgsPrecedence(t *testing.T) {
	// defaults < required < options, later options win.
	cfg := RecordArgs(
		Config{"filters": 16, "depth": 2, "activation": "relu"},
		Config{"filters": 32, "in": 8},
		Arg("depth", 4),
		Arg("depth", 5),
	)

	assert.True(t, cfg.Equal(Config{
		"filters":    32,
		"depth":      5,
		"activation": "relu",
		"in":         8,
	}))
}

func TestRecordArgsDoesNotAliasDefaults(t *testing.T) {
	defaults := Config{"filters": 16}
	cfg := RecordArgs(defaults, nil, Arg("filters", 32))

	assert.Equal(t, 16, defaults["filters"])
	assert.Equal(t, 32, cfg["filters"])
}

func TestRecordArgsEmptyNamePanics(t *testing.T) {
	assert.Panics(t, func() { Arg("", 1) })
	assert.Panics(t, func() { RecordArgs(Config{"": 1}, nil) })
	assert.Panics(t, func() { RecordArgs(nil, Config{"": 1}) })
}

func TestConfigIntAcceptsJSONNumbers(t *testing.T) {
	cfg := Config{"a": 32, "b": float64(32), "c": int64(32)}

	for _, name := range []string{"a", "b", "c"} {
		v, err := cfg.Int(name)
		require.NoError(t, err)
		assert.Equal(t, 32, v)
	}

	_, err := cfg.Int("missing")
	require.Error(t, err)

	_, err = Config{"a": "nope"}.Int("a")
	require.Error(t, err)
}

func TestConfigIntRejectsFractionalFloat(t *testing.T) {
	_, err := Config{"filters": 32.7}.Int("filters")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an integer")

	// Exact float values are still accepted (JSON round-trip form).
	v, err := Config{"filters": float64(32)}.Int("filters")
	require.NoError(t, err)
	assert.Equal(t, 32, v)

	_, err = Config{"shape": []any{float64(4), 2.5}}.IntSlice("shape")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an integer")
}

func TestConfigTypedGetters(t *testing.T) {
	cfg := Config{
		"lr":     0.001,
		"name":   "unet",
		"bias":   true,
		"shape":  []any{float64(64), float64(64)}, // as after a JSON round-trip
		"shape2": []int{32, 32},
	}

	lr, err := cfg.Float("lr")
	require.NoError(t, err)
	assert.InDelta(t, 0.001, lr, 1e-12)

	name, err := cfg.String("name")
	require.NoError(t, err)
	assert.Equal(t, "unet", name)

	bias, err := cfg.Bool("bias")
	require.NoError(t, err)
	assert.True(t, bias)

	shape, err := cfg.IntSlice("shape")
	require.NoError(t, err)
	assert.Equal(t, []int{64, 64}, shape)

	shape2, err := cfg.IntSlice("shape2")
	require.NoError(t, err)
	assert.Equal(t, []int{32, 32}, shape2)

	assert.True(t, cfg.Has("lr"))
	assert.False(t, cfg.Has("momentum"))
}

func TestConfigEqualAcrossNumericTypes(t *testing.T) {
	recorded := Config{"filters": 32, "depth": 4}
	reloaded := Config{"filters": float64(32), "depth": float64(4)}

	assert.True(t, recorded.Equal(reloaded))
	assert.False(t, recorded.Equal(Config{"filters": 32, "depth": 5}))
	assert.False(t, recorded.Equal(Config{"filters": 32}))
}

func TestConfigCloneIsIndependent(t *testing.T) {
	cfg := Config{"filters": 32}
	clone := cfg.Clone()
	clone["filters"] = 64

	assert.Equal(t, 32, cfg["filters"])
}

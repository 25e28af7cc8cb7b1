package functions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SamarthMahendra/Orion/functions"
	"github.com/SamarthMahendra/Orion/orion"
)

func TestRegistry_InvokeUnknownFunction(t *testing.T) {
	r := functions.NewRegistry()
	_, err := r.Invoke("missing", nil)
	require.ErrorIs(t, err, orion.ErrUnknownFunction)
}

func TestRegistry_RegisterAndInvoke(t *testing.T) {
	r := functions.NewRegistry()
	require.False(t, r.Exists("double"))
	r.Register("double", func(args []orion.Value) (orion.Value, error) {
		return args[0].(int) * 2, nil
	})
	require.True(t, r.Exists("double"))

	v, err := r.Invoke("double", []orion.Value{21})
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestBuiltins_AddAndMul(t *testing.T) {
	r := functions.Builtins()

	v, err := r.Invoke("add", []orion.Value{int32(3), int32(7)})
	require.NoError(t, err)
	require.Equal(t, int32(10), v)

	v, err = r.Invoke("mul", []orion.Value{int32(6), int32(7)})
	require.NoError(t, err)
	require.Equal(t, int32(42), v)
}

func TestBuiltins_DecodeLittleEndianArgs(t *testing.T) {
	r := functions.Builtins()
	v, err := r.Invoke("add", []orion.Value{
		functions.EncodeInt32(3),
		functions.EncodeInt32(7),
	})
	require.NoError(t, err)
	require.Equal(t, int32(10), v)
}

func TestEncodeDecodeInt32_RoundTrips(t *testing.T) {
	b := functions.EncodeInt32(-12345)
	v, err := functions.DecodeInt32(b)
	require.NoError(t, err)
	require.Equal(t, int32(-12345), v)
}

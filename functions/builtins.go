package functions

import (
	"encoding/binary"
	"fmt"

	"github.com/SamarthMahendra/Orion/orion"
)

// DecodeInt32 decodes a task arg using Orion's built-in byte-encoding
// convention: 4-byte little-endian int32 (spec.md §3, §8 #8). The wire
// format itself is opaque to the core; this is the one convention the
// reference CLI binaries and built-in functions agree on.
func DecodeInt32(b []byte) (int32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("orion: arg must be 4 bytes, got %d", len(b))
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// EncodeInt32 is the inverse of DecodeInt32, used by callers constructing
// literal Task.Args.
func EncodeInt32(v int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}

// Builtins registers the built-in arithmetic functions ("add", "mul") used
// by the S4 remote scenario. Each expects exactly two orion.Value args,
// each either an int32 or int, or a 4-byte []byte literal arg (as
// node.Service passes them) that is decoded with DecodeInt32.
func Builtins() *Registry {
	r := NewRegistry()
	r.Register("add", arith(func(a, b int32) int32 { return a + b }))
	r.Register("mul", arith(func(a, b int32) int32 { return a * b }))
	return r
}

func arith(op func(a, b int32) int32) Func {
	return func(args []orion.Value) (orion.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("orion: arithmetic function requires exactly 2 args, got %d", len(args))
		}
		a, err := asInt32(args[0])
		if err != nil {
			return nil, err
		}
		b, err := asInt32(args[1])
		if err != nil {
			return nil, err
		}
		return op(a, b), nil
	}
}

func asInt32(v orion.Value) (int32, error) {
	switch t := v.(type) {
	case int32:
		return t, nil
	case int:
		return int32(t), nil
	case []byte:
		return DecodeInt32(t)
	default:
		return 0, fmt.Errorf("orion: expected int32-compatible arg, got %T", v)
	}
}

package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/joshuapare/jbkv"
)

// parseValue builds a jbkv.Value from a command-line type name and raw
// text, so jbkvctl can write any Value alternative from plain arguments.
func parseValue(kind, raw string) (jbkv.Value, error) {
	switch kind {
	case "", "string":
		return jbkv.NewString(raw)
	case "bool":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewBool(b), nil
	case "int32":
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewInt32(int32(n)), nil
	case "int64":
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewInt64(n), nil
	case "uint32":
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewUInt32(uint32(n)), nil
	case "uint64":
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewUInt64(n), nil
	case "float32":
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewFloat32(float32(f)), nil
	case "float64":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewFloat64(f), nil
	case "blob":
		b, err := hex.DecodeString(raw)
		if err != nil {
			return jbkv.Value{}, fmt.Errorf("decode hex blob: %w", err)
		}
		return jbkv.NewBlob(b)
	default:
		return jbkv.Value{}, fmt.Errorf("unknown value type %q", kind)
	}
}

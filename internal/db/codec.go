package db

import (
	"encoding/binary"
	"math"
)

// VectorBytes encodes a float32 vector as little-endian bytes, the layout
// the FLOAT32 vector fields and PARAMS BLOB arguments expect.
func VectorBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

package db

import "testing"

func TestVectorBytes(t *testing.T) {
	v := []float32{1.0, 2.0}
	b := VectorBytes(v)
	if len(b) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(b))
	}
	// 1.0 is 0x3f800000, little-endian
	if b[0] != 0x00 || b[1] != 0x00 || b[2] != 0x80 || b[3] != 0x3f {
		t.Errorf("unexpected encoding of 1.0: % x", b[:4])
	}
}

func TestVectorBytes_Empty(t *testing.T) {
	if b := VectorBytes(nil); len(b) != 0 {
		t.Errorf("expected empty string, got %d bytes", len(b))
	}
}

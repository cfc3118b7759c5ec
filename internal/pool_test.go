package internal

import "testing"

func TestPutBufferResets(t *testing.T) {
	b := GetBuffer()
	b.WriteString("world.setBlock(1,2,3,57)")
	PutBuffer(b)

	if got := GetBuffer(); got.Len() != 0 {
		t.Fatalf("expected empty buffer from pool, got %q", got.String())
	}
}

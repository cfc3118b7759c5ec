package oerror

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewFormats(t *testing.T) {
	err := New("bad reply %q", "1,2")
	if err.Error() != `bad reply "1,2"` {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestRequestErrorUnwraps(t *testing.T) {
	err := fmt.Errorf("place block: %w", &RequestError{Command: "world.setBlock(1,2,3,57)"})

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError in %v", err)
	}
	if reqErr.Error() != "world.setBlock(1,2,3,57) failed" {
		t.Fatalf("unexpected message %q", reqErr.Error())
	}
}

package utils

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestFormatVec64(t *testing.T) {
	if got := FormatVec64(mgl64.Vec3{10.5, 64, -3.25}); got != "(10.5, 64, -3.25)" {
		t.Fatalf("unexpected format %q", got)
	}
}

func TestChatMessage(t *testing.T) {
	if got := ChatMessage("<green>Hello</green> 100%", false); got != "<green>Hello</green> 100%" {
		t.Fatalf("plain message changed: %q", got)
	}

	got := ChatMessage("<green>Hello</green> 100%", true)
	if strings.Contains(got, "<green>") || !strings.Contains(got, "§a") {
		t.Fatalf("colour tags not rendered: %q", got)
	}
	if !strings.Contains(got, "Hello") || !strings.Contains(got, "100%") {
		t.Fatalf("text lost while rendering: %q", got)
	}
}

package virtual

import (
	"bytes"
	"strings"
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/mcpi/world"
	"github.com/sirupsen/logrus"
)

func TestWorldClearLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.Out = &buf
	log.Level = logrus.DebugLevel

	w := NewWorld(log)
	pos := cube.Pos{1, 2, 3}
	w.SetBlock(pos, world.Diamond)
	if got := w.Block(pos); got.ID != world.Diamond.ID {
		t.Fatalf("expected diamond, got %v", got.Name)
	}
	if buf.Len() != 0 {
		t.Fatalf("placing a block should not be logged: %q", buf.String())
	}

	w.SetBlock(pos, world.Air)
	if w.Len() != 0 {
		t.Fatalf("expected empty world after clearing, got %d blocks", w.Len())
	}
	if got := w.Block(pos); got.ID != world.Air.ID {
		t.Fatalf("expected air, got %v", got.Name)
	}
	if !strings.Contains(buf.String(), "cleared block") {
		t.Fatalf("expected clear to be logged, got %q", buf.String())
	}

	buf.Reset()
	w.SetBlock(cube.Pos{9, 9, 9}, world.Air)
	if buf.Len() != 0 {
		t.Fatalf("clearing air should not be logged: %q", buf.String())
	}
}

package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/oomph-ac/mcpi/builder"
	"github.com/oomph-ac/mcpi/world"
)

func TestDefaultsAreValid(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
	if s.Greeting.Message != "Hello from python" {
		t.Fatalf("unexpected default greeting %q", s.Greeting.Message)
	}
	shape, err := s.Shape()
	if err != nil {
		t.Fatalf("shape: %v", err)
	}
	if shape.Pattern != builder.Vein || shape.Length != 100 || shape.Block.ID != world.Diamond.ID {
		t.Fatalf("unexpected default shape %+v", shape)
	}
	if d, _ := s.Timeout(); d != 5*time.Second {
		t.Fatalf("unexpected default timeout %v", d)
	}
}

func TestSaveDefaultThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := SaveDefault(path); err != nil {
		t.Fatalf("save default: %v", err)
	}
	if err := SaveDefault(path); err == nil {
		t.Fatalf("expected error saving over an existing file")
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s != DefaultSettings() {
		t.Fatalf("loaded settings differ from defaults: %+v", s)
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[Build]\nPattern = \"tower\"\nLength = 10\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Build.Pattern != "tower" || s.Build.Length != 10 {
		t.Fatalf("overrides not applied: %+v", s.Build)
	}
	if s.Build.Block != world.Diamond.Name || s.Connection.Address != "localhost:4711" {
		t.Fatalf("defaults lost: %+v", s)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{
		"block":   "[Build]\nBlock = \"minecraft:unobtainium\"\n",
		"length":  "[Build]\nLength = -1\n",
		"timeout": "[Connection]\nTimeout = \"soon\"\n",
		"level":   "[Log]\nLevel = \"loud\"\n",
	} {
		path := filepath.Join(dir, name+".toml")
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("expected %s to be rejected", name)
		}
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

package world

import (
	"testing"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/item"
)

func TestDiamondLegacyID(t *testing.T) {
	d, ok := ByName("minecraft:diamond_block")
	if !ok {
		t.Fatalf("diamond block missing from catalogue")
	}
	if d.ID != 57 || d.Data != 0 {
		t.Fatalf("expected 57:0, got %d:%d", d.ID, d.Data)
	}
	if Diamond != d {
		t.Fatalf("Diamond var does not match catalogue entry: %+v", Diamond)
	}
}

func TestWoolColoursHaveDataValues(t *testing.T) {
	seen := map[int]bool{}
	for _, c := range item.Colours() {
		bt, ok := FromBlock(block.Wool{Colour: c})
		if !ok {
			t.Fatalf("wool colour %v missing from catalogue", c)
		}
		if bt.ID != 35 {
			t.Fatalf("expected wool id 35, got %d", bt.ID)
		}
		if seen[bt.Data] {
			t.Fatalf("duplicate wool data value %d", bt.Data)
		}
		seen[bt.Data] = true
	}
}

func TestNamesSortedAndResolvable(t *testing.T) {
	n := Names()
	for i, name := range n {
		if i > 0 && n[i-1] > name {
			t.Fatalf("names not sorted at %d: %q > %q", i, n[i-1], name)
		}
		if _, ok := ByName(name); !ok {
			t.Fatalf("name %q does not resolve", name)
		}
	}
	if _, ok := ByName("minecraft:not_a_block"); ok {
		t.Fatalf("unknown name resolved")
	}
}

func TestByLegacyID(t *testing.T) {
	bt, ok := ByLegacyID(57, 0)
	if !ok || bt.Name != Diamond.Name {
		t.Fatalf("expected diamond for 57:0, got %+v (%v)", bt, ok)
	}
	if _, ok := ByLegacyID(57, 3); ok {
		t.Fatalf("unexpected match for 57:3")
	}
}

package world

import (
	"sort"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/item"
	"github.com/df-mc/dragonfly/server/world"
)

// BlockType identifies a block kind that can be placed over the Minecraft Pi protocol. The protocol
// predates the flattening, so blocks are addressed by their legacy numeric id and a data value for
// sub-types such as wool colours.
type BlockType struct {
	// Name is the namespaced name of the block, for example minecraft:diamond_block.
	Name string
	// ID is the legacy block id sent in world.setBlock.
	ID int
	// Data is the legacy data value. Zero for blocks without sub-types.
	Data int
	// Block is the dragonfly block the type corresponds to.
	Block world.Block
}

var (
	// Air is the empty block.
	Air BlockType
	// Diamond is the diamond block.
	Diamond BlockType
	// Gold is the gold block.
	Gold BlockType
)

var (
	byName   = map[string]BlockType{}
	byLegacy = map[[2]int]BlockType{}
	names    []string
)

func init() {
	register(block.Air{}, 0, 0)
	register(block.Stone{}, 1, 0)
	register(block.Grass{}, 2, 0)
	register(block.Dirt{}, 3, 0)
	register(block.Cobblestone{}, 4, 0)
	register(block.Glass{}, 20, 0)
	register(block.Gold{}, 41, 0)
	register(block.Iron{}, 42, 0)
	register(block.TNT{}, 46, 0)
	register(block.Obsidian{}, 49, 0)
	register(block.Diamond{}, 57, 0)
	register(block.Emerald{}, 133, 0)
	for _, c := range item.Colours() {
		register(block.Wool{Colour: c}, 35, int(c.Uint8()))
	}
	sort.Strings(names)

	Air, _ = FromBlock(block.Air{})
	Diamond, _ = FromBlock(block.Diamond{})
	Gold, _ = FromBlock(block.Gold{})
}

// register adds a block to the catalogue under the name the block encodes itself with.
func register(b world.Block, id, data int) {
	name, _ := b.EncodeBlock()
	t := BlockType{Name: name, ID: id, Data: data, Block: b}
	byName[name] = t
	byLegacy[[2]int{id, data}] = t
	names = append(names, name)
}

// ByName looks up a block type by its namespaced name.
func ByName(name string) (BlockType, bool) {
	t, ok := byName[name]
	return t, ok
}

// FromBlock looks up the block type for a dragonfly block. The second return value is false if the
// block has no legacy id known to the catalogue.
func FromBlock(b world.Block) (BlockType, bool) {
	name, _ := b.EncodeBlock()
	return ByName(name)
}

// ByLegacyID looks up a block type by its legacy id and data value.
func ByLegacyID(id, data int) (BlockType, bool) {
	t, ok := byLegacy[[2]int{id, data}]
	return t, ok
}

// Names returns the sorted names of all known block types.
func Names() []string {
	return append([]string(nil), names...)
}

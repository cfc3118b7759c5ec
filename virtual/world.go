package virtual

import (
	"sync"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/mcpi/world"
	"github.com/sirupsen/logrus"
)

// World keeps track of the blocks set through the virtual server. Positions that were never set hold air.
type World struct {
	log *logrus.Logger

	blockMu sync.Mutex
	blocks  map[cube.Pos]world.BlockType
}

// NewWorld creates a new, empty world.
func NewWorld(log *logrus.Logger) *World {
	return &World{
		log:    log,
		blocks: make(map[cube.Pos]world.BlockType),
	}
}

// SetBlock sets the block at a position in the world.
func (w *World) SetBlock(pos cube.Pos, t world.BlockType) {
	w.blockMu.Lock()
	defer w.blockMu.Unlock()

	if t.ID == world.Air.ID {
		if _, ok := w.blocks[pos]; ok {
			w.log.Debugf("virtual world: cleared block at %v", pos)
		}
		delete(w.blocks, pos)
		return
	}
	w.blocks[pos] = t
}

// Block returns the block at the position passed.
func (w *World) Block(pos cube.Pos) world.BlockType {
	w.blockMu.Lock()
	defer w.blockMu.Unlock()

	if t, ok := w.blocks[pos]; ok {
		return t
	}
	return world.Air
}

// Len returns the amount of non-air blocks in the world.
func (w *World) Len() int {
	w.blockMu.Lock()
	defer w.blockMu.Unlock()
	return len(w.blocks)
}

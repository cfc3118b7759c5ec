package virtual

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/atomic"
)

// Player is a player connected to the virtual server.
type Player struct {
	id   int
	name string

	pos atomic.Value
}

// NewPlayer creates a new player with the entity id, name and position passed.
func NewPlayer(id int, name string, pos mgl64.Vec3) *Player {
	p := &Player{
		id:   id,
		name: name,
	}
	p.pos.Store(pos)
	return p
}

// ID returns the entity id of the player.
func (p *Player) ID() int {
	return p.id
}

// Name returns the name of the player.
func (p *Player) Name() string {
	return p.name
}

// Teleport moves the player to the position passed.
func (p *Player) Teleport(pos mgl64.Vec3) {
	p.pos.Store(pos)
}

// Position returns the current position of the player.
func (p *Player) Position() mgl64.Vec3 {
	return p.pos.Load().(mgl64.Vec3)
}

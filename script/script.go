// Package script implements the hello world program: it greets the server, then lifts every online player
// by a block and builds a shape of blocks in front of them.
package script

import (
	"context"
	"fmt"
	"io"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/mcpi/builder"
	"github.com/oomph-ac/mcpi/settings"
	"github.com/oomph-ac/mcpi/utils"
	"github.com/oomph-ac/mcpi/world"
	"github.com/sirupsen/logrus"
)

// Server is the part of a Minecraft Pi API connection the script uses. *minecraft.Conn implements it.
type Server interface {
	PostToChat(message string) error
	PlayerEntityIDs() ([]int, error)
	EntityPos(id int) (mgl64.Vec3, error)
	EntityName(id int) (string, error)
	SetEntityPos(id int, pos mgl64.Vec3) error
	SetBlock(pos cube.Pos, t world.BlockType) error
	// Sync returns once every command sent before it was handled, reporting failures of commands that
	// have no reply of their own.
	Sync() error
}

// Config holds the values the script runs with.
type Config struct {
	// Message is posted to the chat before anything else.
	Message string
	// Jump is added to the vertical coordinate of every player.
	Jump float64
	// Shape is built in front of every player.
	Shape builder.Shape
	// Log receives progress at info level. If nil, the standard logrus logger is used.
	Log *logrus.Logger
}

// DefaultConfig returns the config of the original program: say hello, make players jump a block and
// build a vein of 100 diamond blocks.
func DefaultConfig() Config {
	return Config{
		Message: "Hello from python",
		Jump:    1,
		Shape:   builder.DefaultShape(),
	}
}

// FromSettings returns the config described by the settings passed. If the greeting has colour enabled,
// its colour tags are rendered to formatting codes.
func FromSettings(s settings.Settings, log *logrus.Logger) (Config, error) {
	shape, err := s.Shape()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Message: utils.ChatMessage(s.Greeting.Message, s.Greeting.Colour),
		Jump:    s.Build.Jump,
		Shape:   shape,
		Log:     log,
	}, nil
}

// Run runs the script against the server passed, writing a line about the online players and one per
// player to out. Any failure stops the run and is returned; blocks placed before it stay in place.
func Run(ctx context.Context, srv Server, out io.Writer, conf Config) error {
	if conf.Log == nil {
		conf.Log = logrus.StandardLogger()
	}
	if err := conf.Shape.Validate(); err != nil {
		return err
	}

	if err := srv.PostToChat(conf.Message); err != nil {
		return fmt.Errorf("post to chat: %w", err)
	}
	ids, err := srv.PlayerEntityIDs()
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	fmt.Fprintf(out, "Users: %v are online\n", ids)
	if len(ids) == 0 {
		fmt.Fprintln(out, "No users online")
		return nil
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := visit(ctx, srv, out, id, conf); err != nil {
			return err
		}
	}
	return nil
}

// visit lifts a single player and builds the shape in front of them.
func visit(ctx context.Context, srv Server, out io.Writer, id int, conf Config) error {
	pos, err := srv.EntityPos(id)
	if err != nil {
		return fmt.Errorf("position of player %d: %w", id, err)
	}
	name, err := srv.EntityName(id)
	if err != nil {
		return fmt.Errorf("name of player %d: %w", id, err)
	}
	fmt.Fprintf(out, "User #%d %s at %s\n", id, name, utils.FormatVec64(pos))

	if err := srv.SetEntityPos(id, pos.Add(mgl64.Vec3{0, conf.Jump, 0})); err != nil {
		return fmt.Errorf("move player %d: %w", id, err)
	}

	placements := conf.Shape.Placements(cube.PosFromVec3(pos))
	for _, p := range placements {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := srv.SetBlock(p.Pos, p.Block); err != nil {
			return fmt.Errorf("place %v at %v for player %d: %w", p.Block.Name, p.Pos, id, err)
		}
	}
	if err := srv.Sync(); err != nil {
		return fmt.Errorf("build next to player %d: %w", id, err)
	}
	conf.Log.Infof("built %s of %d blocks next to %s", conf.Shape.Pattern, len(placements), name)
	return nil
}

package minecraft

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/mcpi/internal"
	"github.com/oomph-ac/mcpi/oerror"
	"github.com/oomph-ac/mcpi/world"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// drainWindow is how long Conn waits for unsolicited input before sending a command.
const drainWindow = time.Millisecond

// Conn is a connection to a Minecraft Pi API server. Commands are written as single lines and queries
// block until the reply line is read. A Conn is not safe for concurrent use.
//
// Commands such as world.setBlock have no reply, but the server answers them with Fail if they cannot be
// executed. Such a Fail is picked up before the next command is sent, or by Sync. The protocol carries no
// request ids: if the Fail arrives after the next query was already sent, that query reads it as its own
// reply and the RequestError returned names the query instead of the command that failed.
type Conn struct {
	log     *logrus.Logger
	conn    net.Conn
	r       *bufio.Reader
	timeout time.Duration

	// lastSent is the last command line written, used to attribute Fail replies.
	lastSent string
	closed   atomic.Bool
}

// PostToChat posts a message to the chat of the server. Line breaks are replaced with spaces, as they
// would otherwise terminate the command.
func (c *Conn) PostToChat(message string) error {
	return c.send("chat.post", message)
}

// PlayerEntityIDs returns the entity ids of all players currently online, in the order the server lists
// them. If no players are online, an empty slice is returned.
func (c *Conn) PlayerEntityIDs() ([]int, error) {
	reply, err := c.sendReceive("world.getPlayerIds")
	if err != nil {
		return nil, err
	}
	return parseIDs(reply)
}

// EntityPos returns the position of the entity with the id passed.
func (c *Conn) EntityPos(id int) (mgl64.Vec3, error) {
	reply, err := c.sendReceive("entity.getPos", id)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return parseVec3(reply)
}

// EntityName returns the name of the entity with the id passed. For players this is the name they
// entered in their client.
func (c *Conn) EntityName(id int) (string, error) {
	return c.sendReceive("entity.getName", id)
}

// SetEntityPos teleports the entity with the id passed to pos.
func (c *Conn) SetEntityPos(id int, pos mgl64.Vec3) error {
	return c.send("entity.setPos", id, pos[0], pos[1], pos[2])
}

// SetBlock sets the block at pos to the block type passed.
func (c *Conn) SetBlock(pos cube.Pos, t world.BlockType) error {
	if t.Data != 0 {
		return c.send("world.setBlock", pos[0], pos[1], pos[2], t.ID, t.Data)
	}
	return c.send("world.setBlock", pos[0], pos[1], pos[2], t.ID)
}

// BlockAt returns the type of the block at pos.
func (c *Conn) BlockAt(pos cube.Pos) (world.BlockType, error) {
	reply, err := c.sendReceive("world.getBlockWithData", pos[0], pos[1], pos[2])
	if err != nil {
		return world.BlockType{}, err
	}
	fields := strings.Split(reply, ",")
	if len(fields) != 2 {
		return world.BlockType{}, oerror.New("expected block id and data, got %q", reply)
	}
	id, idErr := strconv.Atoi(fields[0])
	data, dataErr := strconv.Atoi(fields[1])
	if idErr != nil || dataErr != nil {
		return world.BlockType{}, oerror.New("malformed block reply %q", reply)
	}
	t, ok := world.ByLegacyID(id, data)
	if !ok {
		return world.BlockType{}, oerror.New("unknown block %d:%d at %v", id, data, pos)
	}
	return t, nil
}

// Sync waits until the server has handled every command sent so far and returns a RequestError if one of
// the commands without a reply failed. It should be called after the last of a series of such commands,
// as their failures are otherwise only noticed when the next command is sent.
func (c *Conn) Sync() error {
	prev := c.lastSent
	if err := c.send("world.getPlayerIds"); err != nil {
		return err
	}
	line, err := c.readLine()
	if err != nil {
		return err
	}
	if line != "Fail" {
		return nil
	}
	// world.getPlayerIds does not fail, so the Fail belongs to the command sent before it. The reply to
	// world.getPlayerIds itself follows.
	if _, err := c.readLine(); err != nil {
		return err
	}
	return &oerror.RequestError{Command: prev}
}

// RemoteAddr returns the address of the server.
func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection. Calling Close more than once is a no-op.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.conn.Close()
}

// sendReceive sends a command and waits for its reply.
func (c *Conn) sendReceive(name string, args ...interface{}) (string, error) {
	if err := c.send(name, args...); err != nil {
		return "", err
	}
	return c.receive()
}

// send writes a single command line. Pending unsolicited input is drained first, so that a Fail reply
// to an earlier command without a reply is reported here.
func (c *Conn) send(name string, args ...interface{}) error {
	if c.closed.Load() {
		return oerror.New("%s: use of closed connection", name)
	}
	if err := c.drain(); err != nil {
		return err
	}

	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)
	writeCommand(buf, name, args...)
	line := buf.String()
	buf.WriteByte('\n')

	if err := c.conn.SetWriteDeadline(c.deadline()); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if _, err := c.conn.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("send %s: %w", line, err)
	}
	c.lastSent = line
	c.log.Debugf("-> %s", line)
	return nil
}

// receive reads a single reply line. A Fail reply is returned as a RequestError for the last command sent.
func (c *Conn) receive() (string, error) {
	line, err := c.readLine()
	if err != nil {
		return "", err
	}
	if line == "Fail" {
		return "", &oerror.RequestError{Command: c.lastSent}
	}
	return line, nil
}

// readLine reads a single line without its line break.
func (c *Conn) readLine() (string, error) {
	if err := c.conn.SetReadDeadline(c.deadline()); err != nil {
		return "", fmt.Errorf("set read deadline: %w", err)
	}
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("receive reply to %s: %w", c.lastSent, err)
	}
	line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
	c.log.Debugf("<- %s", line)
	return line, nil
}

// drain reads and discards any input that arrived without being asked for.
func (c *Conn) drain() error {
	for {
		if c.r.Buffered() == 0 {
			if err := c.conn.SetReadDeadline(time.Now().Add(drainWindow)); err != nil {
				return fmt.Errorf("set read deadline: %w", err)
			}
			if _, err := c.r.Peek(1); err != nil {
				if errors.Is(err, os.ErrDeadlineExceeded) {
					return nil
				}
				return fmt.Errorf("drain: %w", err)
			}
		}
		line, err := c.receive()
		if err != nil {
			return err
		}
		c.log.Debugf("drained unexpected data %q", line)
	}
}

// deadline returns the deadline for the next read or write.
func (c *Conn) deadline() time.Time {
	if c.timeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(c.timeout)
}

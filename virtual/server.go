package virtual

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/mcpi/world"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// Server is an in-process Minecraft Pi API server. It understands the subset of commands the client in
// the minecraft package sends and keeps the resulting state in memory, so that it can be inspected.
type Server struct {
	log   *logrus.Logger
	world *World

	mu       sync.Mutex
	players  *orderedmap.OrderedMap[int, *Player]
	nextID   int
	chat     []string
	commands []string
	failing  map[string]struct{}

	listener net.Listener
	conns    map[net.Conn]struct{}
	wg       sync.WaitGroup
	closed   atomic.Bool
}

// NewServer creates a new server. It does not accept connections until Listen is called.
func NewServer(log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		log:     log,
		world:   NewWorld(log),
		players: orderedmap.NewOrderedMap[int, *Player](),
		nextID:  1,
		failing: make(map[string]struct{}),
		conns:   make(map[net.Conn]struct{}),
	}
}

// Listen starts accepting connections on the address passed, for example "127.0.0.1:0".
func (s *Server) Listen(address string) error {
	l, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("listen on %v: %w", address, err)
	}
	s.listener = l
	s.log.Debugf("virtual server listening on %v", l.Addr())

	s.wg.Add(1)
	go s.accept()
	return nil
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Close stops the server and closes all open connections.
func (s *Server) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	s.mu.Lock()
	for c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
	return err
}

// World returns the world blocks are placed in.
func (s *Server) World() *World {
	return s.world
}

// AddPlayer adds a player to the server and returns its entity id. Ids are handed out incrementally.
func (s *Server) AddPlayer(name string, pos mgl64.Vec3) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.players.Set(id, NewPlayer(id, name, pos))
	return id
}

// RemovePlayer removes the player with the id passed, as if it disconnected.
func (s *Server) RemovePlayer(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players.Delete(id)
}

// Player returns the player with the id passed, if it is online.
func (s *Server) Player(id int) (*Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.players.Get(id)
}

// FailCommand makes the server answer every following command with the name passed with Fail.
func (s *Server) FailCommand(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[name] = struct{}{}
}

// ChatLog returns all messages posted to the chat, oldest first.
func (s *Server) ChatLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.chat...)
}

// Commands returns every command line received, oldest first.
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

// accept accepts connections until the listener is closed.
func (s *Server) accept() {
	defer s.wg.Done()
	for {
		c, err := s.listener.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				s.log.Errorf("virtual server accept: %v", err)
			}
			return
		}
		s.mu.Lock()
		s.conns[c] = struct{}{}
		s.mu.Unlock()
		if s.closed.Load() {
			_ = c.Close()
		}

		s.wg.Add(1)
		go s.handleConn(c)
	}
}

// handleConn reads command lines from a connection and answers them until the connection is closed.
func (s *Server) handleConn(c net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, c)
		s.mu.Unlock()
		_ = c.Close()
	}()

	r := bufio.NewReader(c)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				s.log.Debugf("virtual server read: %v", err)
			}
			return
		}
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

		reply, respond, ok := s.handle(line)
		if !ok {
			reply, respond = "Fail", true
		}
		if !respond {
			continue
		}
		if _, err := io.WriteString(c, reply+"\n"); err != nil {
			s.log.Debugf("virtual server write: %v", err)
			return
		}
	}
}

// handle executes a single command line. It returns the reply to send and whether the command has a reply
// at all. The last return value is false if the command failed.
func (s *Server) handle(line string) (reply string, respond, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, line)

	open, end := strings.IndexByte(line, '('), strings.LastIndexByte(line, ')')
	if open <= 0 || end != len(line)-1 {
		s.log.Debugf("virtual server: malformed command %q", line)
		return "", false, false
	}
	name, raw := line[:open], line[open+1:end]
	if _, ok := s.failing[name]; ok {
		return "", false, false
	}

	var args []string
	if raw != "" {
		args = strings.Split(raw, ",")
	}
	switch name {
	case "chat.post":
		s.chat = append(s.chat, raw)
		return "", false, true
	case "world.getPlayerIds":
		ids := make([]string, 0, s.players.Len())
		for el := s.players.Front(); el != nil; el = el.Next() {
			ids = append(ids, strconv.Itoa(el.Key))
		}
		return strings.Join(ids, "|"), true, true
	case "entity.getPos":
		p, ok := s.playerArg(args, 1)
		if !ok {
			return "", false, false
		}
		pos := p.Position()
		return formatFloat(pos[0]) + "," + formatFloat(pos[1]) + "," + formatFloat(pos[2]), true, true
	case "entity.getName":
		p, ok := s.playerArg(args, 1)
		if !ok {
			return "", false, false
		}
		return p.Name(), true, true
	case "entity.setPos":
		p, ok := s.playerArg(args, 4)
		if !ok {
			return "", false, false
		}
		pos, ok := parseFloats(args[1:])
		if !ok {
			return "", false, false
		}
		p.Teleport(pos)
		return "", false, true
	case "world.setBlock":
		if len(args) != 4 && len(args) != 5 {
			return "", false, false
		}
		nums, ok := parseInts(args)
		if !ok {
			return "", false, false
		}
		data := 0
		if len(nums) == 5 {
			data = nums[4]
		}
		t, ok := world.ByLegacyID(nums[3], data)
		if !ok {
			return "", false, false
		}
		s.world.SetBlock(cube.Pos{nums[0], nums[1], nums[2]}, t)
		return "", false, true
	case "world.getBlockWithData":
		if len(args) != 3 {
			return "", false, false
		}
		nums, ok := parseInts(args)
		if !ok {
			return "", false, false
		}
		t := s.world.Block(cube.Pos{nums[0], nums[1], nums[2]})
		return strconv.Itoa(t.ID) + "," + strconv.Itoa(t.Data), true, true
	}
	s.log.Debugf("virtual server: unknown command %q", name)
	return "", false, false
}

// playerArg resolves the player referred to by the first of n arguments.
func (s *Server) playerArg(args []string, n int) (*Player, bool) {
	if len(args) != n {
		return nil, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, false
	}
	return s.players.Get(id)
}

func parseInts(args []string) ([]int, bool) {
	nums := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, false
		}
		nums[i] = n
	}
	return nums, true
}

func parseFloats(args []string) (mgl64.Vec3, bool) {
	var vec mgl64.Vec3
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return vec, false
		}
		vec[i] = f
	}
	return vec, true
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

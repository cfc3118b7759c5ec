package minecraft

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultAddress is the address the Minecraft Pi API (and RaspberryJuice) listens on by default.
const DefaultAddress = "localhost:4711"

// Dialer allows specifying specific settings for connection to a Minecraft Pi API server.
// The zero value of Dialer is used for the package level Dial function.
type Dialer struct {
	// Log is the logger that commands and replies are logged to at debug level. If nil, the standard
	// logrus logger is used.
	Log *logrus.Logger
	// Timeout is the maximum amount of time a dial or a single reply may take. Zero means no timeout.
	Timeout time.Duration
}

// Dial dials a Minecraft Pi API server at the address passed using the zero value of Dialer. If address
// is empty, DefaultAddress is used.
func Dial(address string) (*Conn, error) {
	return Dialer{}.Dial(address)
}

// Dial dials a Minecraft Pi API server at the address passed. If address is empty, DefaultAddress is
// used.
func (d Dialer) Dial(address string) (*Conn, error) {
	return d.DialContext(context.Background(), address)
}

// DialContext dials a Minecraft Pi API server at the address passed. If the context is cancelled before
// the connection is established, an error is returned.
func (d Dialer) DialContext(ctx context.Context, address string) (*Conn, error) {
	if address == "" {
		address = DefaultAddress
	}
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}

	nd := net.Dialer{Timeout: d.Timeout}
	netConn, err := nd.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("connect to %v: %w", address, err)
	}
	d.Log.Debugf("connected to %v", netConn.RemoteAddr())

	return &Conn{
		log:     d.Log,
		conn:    netConn,
		r:       bufio.NewReader(netConn),
		timeout: d.Timeout,
	}, nil
}

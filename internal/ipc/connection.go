package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/yourusername/swaysplit/internal/logging"
)

// Connection owns the Unix domain socket to the compositor and runs one
// request/response exchange at a time. It is not safe for concurrent use.
type Connection struct {
	socketPath string
	conn       net.Conn
	timeout    time.Duration
	readOpts   ReadOptions
	broken     bool
}

// NewConnection creates a new connection instance. A zero timeout
// disables per-exchange deadlines.
func NewConnection(socketPath string, timeout time.Duration, readOpts ReadOptions) *Connection {
	return &Connection{
		socketPath: socketPath,
		timeout:    timeout,
		readOpts:   readOpts,
	}
}

// Connect establishes the Unix domain socket connection
func (c *Connection) Connect(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}
	if c.socketPath == "" {
		return &ConnectionError{Err: ErrNoSocket}
	}

	dialer := net.Dialer{Timeout: c.timeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return &ConnectionError{Path: c.socketPath, Err: err}
	}
	c.conn = conn
	c.broken = false
	return nil
}

// Close closes the connection. Calling it again is a no-op.
func (c *Connection) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// IsConnected returns true if the connection is established
func (c *Connection) IsConnected() bool {
	return c.conn != nil
}

// SendReceive writes one request frame and reads the matching reply
// payload. The reply must carry the request's message type.
func (c *Connection) SendReceive(ctx context.Context, t MessageType, payload []byte) ([]byte, error) {
	if c.conn == nil {
		return nil, &IOError{Op: "send " + t.String(), Err: ErrNotConnected}
	}
	if c.broken {
		return nil, &IOError{Op: "send " + t.String(), Err: ErrBroken}
	}

	if err := c.conn.SetDeadline(c.deadline(ctx)); err != nil {
		return nil, &IOError{Op: "set deadline", Err: err}
	}

	// Unblock pending I/O when ctx is cancelled
	conn := c.conn
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	if _, err := c.conn.Write(Encode(t, payload)); err != nil {
		return nil, c.ioFailure(ctx, &IOError{Op: "write request", Err: err})
	}

	h, reply, err := ReadMessage(c.conn, c.readOpts)
	if err != nil {
		var perr *ProtocolError
		if errors.As(err, &perr) {
			c.broken = true
			return nil, err
		}
		return nil, c.ioFailure(ctx, err)
	}

	if h.Type != t {
		c.broken = true
		return nil, &ProtocolError{Reason: fmt.Sprintf("reply type %s does not match request %s", h.Type, t)}
	}

	logging.Debug().
		Str("type", t.String()).
		Int("request_len", len(payload)).
		Uint32("reply_len", h.Length).
		Msg("ipc exchange")

	return reply, nil
}

// deadline picks the earlier of the context deadline and the configured timeout
func (c *Connection) deadline(ctx context.Context) time.Time {
	var d time.Time
	if c.timeout > 0 {
		d = time.Now().Add(c.timeout)
	}
	if ctxDeadline, ok := ctx.Deadline(); ok && (d.IsZero() || ctxDeadline.Before(d)) {
		d = ctxDeadline
	}
	return d
}

// ioFailure marks the connection broken, since a late reply may still
// arrive, and reports ctx cancellation in place of the deadline error it caused
func (c *Connection) ioFailure(ctx context.Context, err error) error {
	c.broken = true

	var ioErr *IOError
	if ctx.Err() != nil && errors.As(err, &ioErr) {
		return &IOError{Op: ioErr.Op, Err: fmt.Errorf("request cancelled or timed out: %w", ctx.Err())}
	}
	return err
}

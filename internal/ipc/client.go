package ipc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/swaysplit/internal/logging"
	"github.com/yourusername/swaysplit/internal/models"
	"github.com/yourusername/swaysplit/internal/split"
)

const (
	DefaultTimeout = 30 * time.Second
)

// Options tunes a Client. The zero value means no timeout,
// DefaultMaxPayload and no magic check; use DefaultOptions for the usual setup.
type Options struct {
	Timeout       time.Duration
	MaxPayload    uint32
	ValidateMagic bool
}

// DefaultOptions returns the options used by the CLI when nothing is configured
func DefaultOptions() Options {
	return Options{
		Timeout:       DefaultTimeout,
		MaxPayload:    DefaultMaxPayload,
		ValidateMagic: true,
	}
}

// Client is the compositor IPC client. It owns a single connection.
type Client struct {
	id   string
	conn *Connection
}

// NewClient creates a client for socketPath without connecting
func NewClient(socketPath string, opts Options) *Client {
	if opts.MaxPayload == 0 {
		opts.MaxPayload = DefaultMaxPayload
	}

	return &Client{
		id: uuid.New().String(),
		conn: NewConnection(socketPath, opts.Timeout, ReadOptions{
			MaxPayload: opts.MaxPayload,
			CheckMagic: opts.ValidateMagic,
		}),
	}
}

// Connect creates a client and opens its connection.
// Fails with a *ConnectionError when socketPath is empty or unreachable.
func Connect(ctx context.Context, socketPath string, opts Options) (*Client, error) {
	c := NewClient(socketPath, opts)
	if err := c.Connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Connect opens the connection. The client never reconnects on its own.
func (c *Client) Connect(ctx context.Context) error {
	if err := c.conn.Connect(ctx); err != nil {
		return err
	}
	logging.Debug().Str("client", c.id).Str("socket", c.conn.socketPath).Msg("connected")
	return nil
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// SendReceive runs one framed exchange and returns the raw reply payload
func (c *Client) SendReceive(ctx context.Context, t MessageType, payload []byte) ([]byte, error) {
	reply, err := c.conn.SendReceive(ctx, t, payload)
	if err != nil {
		logging.Debug().Str("client", c.id).Str("type", t.String()).Err(err).Msg("ipc exchange failed")
		return nil, err
	}
	return reply, nil
}

// GetTree retrieves the layout tree
func (c *Client) GetTree(ctx context.Context) (*models.Node, error) {
	reply, err := c.SendReceive(ctx, GetTree, nil)
	if err != nil {
		return nil, err
	}
	return models.ParseTree(reply)
}

// FocusedWindowSize returns the focused node's width and height.
// (0, 0) means no focused node or no geometry on it; callers must treat
// that as "orientation unknown".
func (c *Client) FocusedWindowSize(ctx context.Context) (width, height uint, err error) {
	tree, err := c.GetTree(ctx)
	if err != nil {
		return 0, 0, err
	}

	focused := models.FindFocused(tree)
	width, height = focused.Size()
	logging.Debug().
		Str("client", c.id).
		Bool("found", focused != nil).
		Uint("width", width).
		Uint("height", height).
		Msg("focused window size")
	return width, height, nil
}

// RunCommand sends a command string and returns the per-subcommand results.
// A *CommandError is returned alongside the results if any subcommand failed.
func (c *Client) RunCommand(ctx context.Context, command string) ([]models.CommandResult, error) {
	reply, err := c.SendReceive(ctx, Command, []byte(command))
	if err != nil {
		return nil, err
	}

	results, err := models.ParseCommandResults(reply)
	if err != nil {
		return nil, err
	}

	var failures []CommandFailure
	for i, r := range results {
		if !r.Success {
			failures = append(failures, CommandFailure{Index: i, ParseError: r.ParseError, Error: r.Error})
		}
	}
	if len(failures) > 0 {
		return results, &CommandError{Command: command, Failures: failures}
	}

	return results, nil
}

// RunSplitAndExecute splits the focused container (unless o is split.None)
// and launches command in it, as a single RUN_COMMAND request.
// An empty composed command is still sent.
func (c *Client) RunSplitAndExecute(ctx context.Context, o split.Orientation, command []string) error {
	composed := split.Compose(o, command)
	logging.Info().Str("client", c.id).Str("orientation", o.String()).Str("command", composed).Msg("split and exec")

	_, err := c.RunCommand(ctx, composed)
	return err
}

// GetVersion retrieves the compositor version
func (c *Client) GetVersion(ctx context.Context) (*models.VersionInfo, error) {
	reply, err := c.SendReceive(ctx, GetVersion, nil)
	if err != nil {
		return nil, err
	}
	return models.ParseVersion(reply)
}

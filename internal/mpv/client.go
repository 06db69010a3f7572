// Package mpv drives an mpv process over its JSON IPC socket.
package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	apperrors "github.com/tessro/parrot/internal/errors"
	"go.uber.org/zap"
)

// request is one IPC command.
type request struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

// response is a command reply or an unsolicited event.
type response struct {
	RequestID int64           `json:"request_id"`
	Error     string          `json:"error"`
	Data      json.RawMessage `json:"data"`
	Event     string          `json:"event"`
}

// CommandError is a failed command reply.
type CommandError struct {
	Command string
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("mpv %s: %s", e.Command, e.Message)
}

// Client speaks newline-delimited JSON with mpv.
type Client struct {
	conn   io.ReadWriteCloser
	logger *zap.SugaredLogger

	writeMu sync.Mutex

	mu      sync.Mutex
	nextID  int64
	pending map[int64]chan response
	closed  bool
	events  chan string
	done    chan struct{}
}

// NewClient starts reading replies from conn.
func NewClient(conn io.ReadWriteCloser, logger *zap.SugaredLogger) *Client {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	c := &Client{
		conn:    conn,
		logger:  logger,
		pending: make(map[int64]chan response),
		events:  make(chan string, 16),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// Events returns unsolicited event names such as "file-loaded" or
// "end-file". It is closed when the connection ends.
func (c *Client) Events() <-chan string {
	return c.events
}

// Done is closed when the connection ends.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Command sends a command and waits for its reply.
func (c *Client) Command(ctx context.Context, args ...any) (json.RawMessage, error) {
	id, ch, err := c.register()
	if err != nil {
		return nil, err
	}

	if err := c.write(request{Command: args, RequestID: id}); err != nil {
		c.unregister(id)
		return nil, err
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return nil, apperrors.ErrPlayerClosed
		}
		if resp.Error != "success" {
			return nil, &CommandError{Command: commandName(args), Message: resp.Error}
		}
		return resp.Data, nil
	case <-ctx.Done():
		c.unregister(id)
		return nil, ctx.Err()
	}
}

// Send sends a command without waiting. A failed reply is logged.
func (c *Client) Send(args ...any) error {
	id, ch, err := c.register()
	if err != nil {
		return err
	}

	if err := c.write(request{Command: args, RequestID: id}); err != nil {
		c.unregister(id)
		return err
	}

	name := commandName(args)
	go func() {
		resp, ok := <-ch
		if ok && resp.Error != "success" {
			c.logger.Warnw("Player command failed", "command", name, "error", resp.Error)
		}
	}()
	return nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) register() (int64, chan response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, nil, apperrors.ErrPlayerClosed
	}
	c.nextID++
	ch := make(chan response, 1)
	c.pending[c.nextID] = ch
	return c.nextID, ch, nil
}

func (c *Client) unregister(id int64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *Client) write(req request) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode command: %w", err)
	}
	data = append(data, '\n')

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if _, err := c.conn.Write(data); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPlayerClosed, err)
	}
	return nil
}

func (c *Client) readLoop() {
	defer c.shutdown()

	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		var resp response
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			c.logger.Debugw("Ignoring malformed reply", "line", scanner.Text())
			continue
		}

		if resp.Event != "" {
			select {
			case c.events <- resp.Event:
			default:
				// Drop event if nobody is listening
			}
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[resp.RequestID]
		delete(c.pending, resp.RequestID)
		c.mu.Unlock()

		if ok {
			ch <- resp
		}
	}
}

func (c *Client) shutdown() {
	c.mu.Lock()
	c.closed = true
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	c.mu.Unlock()

	close(c.events)
	close(c.done)
}

func commandName(args []any) string {
	if len(args) == 0 {
		return ""
	}
	return fmt.Sprint(args[0])
}

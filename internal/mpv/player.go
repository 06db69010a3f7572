package mpv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tessro/parrot/internal/core"
	apperrors "github.com/tessro/parrot/internal/errors"
	"go.uber.org/zap"
)

// Options configures Launch.
type Options struct {
	Binary       string
	Socket       string
	StartTimeout time.Duration
	ExtraArgs    []string
	Logger       *zap.SugaredLogger
}

// Player implements core.Player on top of a Client.
type Player struct {
	client *Client
	cmd    *exec.Cmd
	socket string
	logger *zap.SugaredLogger
}

var _ core.Player = (*Player)(nil)

// NewPlayer wraps an existing connection.
func NewPlayer(client *Client, logger *zap.SugaredLogger) *Player {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Player{client: client, logger: logger}
}

// Args returns the mpv command line for a socket path.
func Args(socket string, extra []string) []string {
	args := []string{
		"--idle=yes",
		"--force-window=yes",
		"--keep-open=yes",
		"--input-ipc-server=" + socket,
	}
	return append(args, extra...)
}

// Launch starts mpv and connects to its IPC socket.
func Launch(ctx context.Context, opts Options) (*Player, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	binary := opts.Binary
	if binary == "" {
		binary = "mpv"
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrPlayerNotFound, binary)
	}

	socket := opts.Socket
	if socket == "" {
		socket = filepath.Join(os.TempDir(), "parrot-mpv-"+strconv.Itoa(os.Getpid())+".sock")
	}
	_ = os.Remove(socket)

	timeout := opts.StartTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	cmd := exec.Command(path, Args(socket, opts.ExtraArgs)...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", binary, err)
	}
	logger.Infow("Started player", "binary", path, "pid", cmd.Process.Pid, "socket", socket)

	conn, err := dial(ctx, socket, timeout)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, err
	}

	p := NewPlayer(NewClient(conn, logger), logger)
	p.cmd = cmd
	p.socket = socket
	return p, nil
}

func dial(ctx context.Context, socket string, timeout time.Duration) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	var d net.Dialer
	for {
		conn, err := d.DialContext(ctx, "unix", socket)
		if err == nil {
			return conn, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: player socket %s did not come up: %v", apperrors.ErrTimeout, socket, err)
		case <-ticker.C:
		}
	}
}

// Client returns the IPC client.
func (p *Player) Client() *Client {
	return p.client
}

// Load opens a media source. NoSource stops playback.
func (p *Player) Load(ctx context.Context, src core.MediaSource, playing bool) error {
	if src.IsNone() {
		_, err := p.client.Command(ctx, "stop")
		return err
	}
	if _, err := p.client.Command(ctx, "loadfile", src.Location(), "replace"); err != nil {
		return err
	}
	return p.SetPaused(ctx, !playing)
}

// Seek jumps to an absolute position.
func (p *Player) Seek(ctx context.Context, pos time.Duration) error {
	return p.client.Send("seek", pos.Seconds(), "absolute+exact")
}

// SetRate sets the playback speed.
func (p *Player) SetRate(ctx context.Context, rate float64) error {
	return p.client.Send("set_property", "speed", rate)
}

// SetPaused pauses or resumes playback.
func (p *Player) SetPaused(ctx context.Context, paused bool) error {
	_, err := p.client.Command(ctx, "set_property", "pause", paused)
	return err
}

// Paused reports whether playback is paused.
func (p *Player) Paused(ctx context.Context) (bool, error) {
	data, err := p.client.Command(ctx, "get_property", "pause")
	if err != nil {
		return false, err
	}
	var paused bool
	if err := json.Unmarshal(data, &paused); err != nil {
		return false, fmt.Errorf("unexpected pause value %s: %w", data, err)
	}
	return paused, nil
}

// TogglePause flips the pause state.
func (p *Player) TogglePause(ctx context.Context) error {
	_, err := p.client.Command(ctx, "cycle", "pause")
	return err
}

// Position returns the elapsed playback time.
func (p *Player) Position(ctx context.Context) (time.Duration, error) {
	data, err := p.client.Command(ctx, "get_property", "time-pos")
	if err != nil {
		return 0, err
	}
	var secs *float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return 0, fmt.Errorf("unexpected time-pos value %s: %w", data, err)
	}
	if secs == nil || math.IsNaN(*secs) {
		return 0, errors.New("no position")
	}
	return time.Duration(*secs * float64(time.Second)), nil
}

// ShowText displays text on the player's OSD.
func (p *Player) ShowText(ctx context.Context, text string, d time.Duration) error {
	return p.client.Send("show-text", text, d.Milliseconds())
}

// Close quits mpv and releases the socket.
func (p *Player) Close() error {
	if p.cmd != nil {
		_ = p.client.Send("quit")
	}
	err := p.client.Close()

	if p.cmd != nil {
		done := make(chan struct{})
		go func() {
			_ = p.cmd.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			_ = p.cmd.Process.Kill()
			<-done
		}
		_ = os.Remove(p.socket)
	}
	return err
}

package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessro/parrot/internal/core"
	apperrors "github.com/tessro/parrot/internal/errors"
)

// fakeMPV answers IPC commands on the server end of a pipe.
type fakeMPV struct {
	conn net.Conn

	mu       sync.Mutex
	received [][]any
	replies  map[string]string
	timePos  any
}

func newFakeMPV(t *testing.T) (*fakeMPV, *Client) {
	t.Helper()
	server, client := net.Pipe()
	f := &fakeMPV{conn: server, replies: map[string]string{}, timePos: 12.5}
	go f.serve()
	c := NewClient(client, nil)
	t.Cleanup(func() {
		_ = c.Close()
		_ = server.Close()
	})
	return f, c
}

func (f *fakeMPV) serve() {
	scanner := bufio.NewScanner(f.conn)
	for scanner.Scan() {
		var req request
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			continue
		}
		f.mu.Lock()
		f.received = append(f.received, req.Command)
		name := commandName(req.Command)
		status, ok := f.replies[name]
		f.mu.Unlock()
		if !ok {
			status = "success"
		}

		resp := map[string]any{"request_id": req.RequestID, "error": status}
		if name == "get_property" && len(req.Command) > 1 {
			switch req.Command[1] {
			case "time-pos":
				resp["data"] = f.timePos
			case "pause":
				resp["data"] = true
			}
		}
		data, _ := json.Marshal(resp)
		if _, err := f.conn.Write(append(data, '\n')); err != nil {
			return
		}
	}
}

func (f *fakeMPV) emit(event string) {
	data, _ := json.Marshal(map[string]string{"event": event})
	_, _ = f.conn.Write(append(data, '\n'))
}

func (f *fakeMPV) commands() [][]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]any(nil), f.received...)
}

func (f *fakeMPV) waitFor(t *testing.T, n int) [][]any {
	t.Helper()
	require.Eventually(t, func() bool { return len(f.commands()) >= n }, time.Second, 5*time.Millisecond)
	return f.commands()
}

func TestPosition(t *testing.T) {
	_, c := newFakeMPV(t)
	p := NewPlayer(c, nil)

	pos, err := p.Position(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12500*time.Millisecond, pos)
}

func TestPositionUnavailable(t *testing.T) {
	f, c := newFakeMPV(t)
	f.timePos = nil
	p := NewPlayer(c, nil)

	_, err := p.Position(context.Background())
	assert.Error(t, err)
}

func TestPaused(t *testing.T) {
	_, c := newFakeMPV(t)
	paused, err := NewPlayer(c, nil).Paused(context.Background())
	require.NoError(t, err)
	assert.True(t, paused)
}

func TestCommandError(t *testing.T) {
	f, c := newFakeMPV(t)
	f.replies["loadfile"] = "error running command"

	src, err := core.LocalSource("/tmp/clip.mp4")
	require.NoError(t, err)
	err = NewPlayer(c, nil).Load(context.Background(), src, true)
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "loadfile", cmdErr.Command)
	assert.Equal(t, "error running command", cmdErr.Message)
}

func TestLoadSendsFileAndPause(t *testing.T) {
	f, c := newFakeMPV(t)
	p := NewPlayer(c, nil)

	src, err := core.ParseSource("https://example.com/video.mp4")
	require.NoError(t, err)
	require.NoError(t, p.Load(context.Background(), src, false))

	cmds := f.waitFor(t, 2)
	assert.Equal(t, []any{"loadfile", "https://example.com/video.mp4", "replace"}, cmds[0])
	assert.Equal(t, []any{"set_property", "pause", true}, cmds[1])
}

func TestLoadNoneStops(t *testing.T) {
	f, c := newFakeMPV(t)
	require.NoError(t, NewPlayer(c, nil).Load(context.Background(), core.NoSource(), true))
	assert.Equal(t, []any{"stop"}, f.waitFor(t, 1)[0])
}

func TestFireAndForgetCommands(t *testing.T) {
	f, c := newFakeMPV(t)
	p := NewPlayer(c, nil)
	ctx := context.Background()

	require.NoError(t, p.Seek(ctx, 1500*time.Millisecond))
	require.NoError(t, p.SetRate(ctx, 1.2))
	require.NoError(t, p.ShowText(ctx, "hola", 2*time.Second))

	cmds := f.waitFor(t, 3)
	// JSON numbers decode as float64.
	assert.Equal(t, []any{"seek", 1.5, "absolute+exact"}, cmds[0])
	assert.Equal(t, []any{"set_property", "speed", 1.2}, cmds[1])
	assert.Equal(t, []any{"show-text", "hola", float64(2000)}, cmds[2])
}

func TestRequestIDsAreUnique(t *testing.T) {
	_, c := newFakeMPV(t)
	p := NewPlayer(c, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Position(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestEvents(t *testing.T) {
	f, c := newFakeMPV(t)
	go f.emit("file-loaded")

	select {
	case e := <-c.Events():
		assert.Equal(t, "file-loaded", e)
	case <-time.After(time.Second):
		t.Fatal("no event")
	}
}

func TestClosedConnection(t *testing.T) {
	server, client := net.Pipe()
	c := NewClient(client, nil)
	_ = server.Close()

	<-c.Done()
	_, err := c.Command(context.Background(), "get_property", "pause")
	assert.ErrorIs(t, err, apperrors.ErrPlayerClosed)
}

func TestCommandContext(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	c := NewClient(client, nil)
	defer c.Close()

	// Read requests but never reply.
	go func() {
		buf := make([]byte, 1024)
		for {
			if _, err := server.Read(buf); err != nil {
				return
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.Command(ctx, "get_property", "time-pos")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestArgs(t *testing.T) {
	args := Args("/tmp/mpv.sock", []string{"--no-border"})
	assert.Contains(t, args, "--idle=yes")
	assert.Contains(t, args, "--input-ipc-server=/tmp/mpv.sock")
	assert.Equal(t, "--no-border", args[len(args)-1])
}

func TestLaunchMissingBinary(t *testing.T) {
	_, err := Launch(context.Background(), Options{Binary: "parrot-no-such-player"})
	assert.ErrorIs(t, err, apperrors.ErrPlayerNotFound)
}

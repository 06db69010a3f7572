// Package keys decodes raw terminal input into transport events.
package keys

import (
	"context"
	"errors"
	"io"

	"github.com/tessro/parrot/internal/playback"
)

// Key is a decoded keypress.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyRepeat
	KeyEnter
	KeyQuit
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyRepeat:
		return "r"
	case KeyEnter:
		return "enter"
	case KeyQuit:
		return "q"
	default:
		return "none"
	}
}

// Event maps a key to its synchronizer event.
func Event(k Key) (playback.Event, bool) {
	switch k {
	case KeyLeft:
		return playback.Previous{}, true
	case KeyRight:
		return playback.Next{}, true
	case KeyUp:
		return playback.SpeedUp{}, true
	case KeyDown:
		return playback.SpeedDown{}, true
	case KeyRepeat:
		return playback.ToggleRepeat{}, true
	case KeyEnter:
		return playback.Replay{}, true
	default:
		return nil, false
	}
}

const (
	esc    = 0x1b
	ctrlC  = 0x03
	ctrlD  = 0x04
	maxSeq = 3
)

// Decoder turns a byte stream into keys. Escape sequences split across
// reads are kept until complete.
type Decoder struct {
	pending []byte
}

// Feed decodes p and returns the complete keys it contains.
func (d *Decoder) Feed(p []byte) []Key {
	buf := append(d.pending, p...)
	d.pending = nil

	var out []Key
	for i := 0; i < len(buf); {
		b := buf[i]

		if b == esc {
			rest := buf[i:]
			if len(rest) < maxSeq {
				// Wait for the rest of the sequence unless it cannot be one.
				if len(rest) == 1 || rest[1] == '[' || rest[1] == 'O' {
					d.pending = append([]byte(nil), rest...)
					return out
				}
				i++
				continue
			}
			if rest[1] == '[' || rest[1] == 'O' {
				if k := arrow(rest[2]); k != KeyNone {
					out = append(out, k)
				}
				i += maxSeq
				continue
			}
			i++
			continue
		}

		switch b {
		case 'r', 'R':
			out = append(out, KeyRepeat)
		case '\r', '\n':
			out = append(out, KeyEnter)
		case 'q', 'Q', ctrlC, ctrlD:
			out = append(out, KeyQuit)
		}
		i++
	}
	return out
}

func arrow(b byte) Key {
	switch b {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	default:
		return KeyNone
	}
}

// Decode decodes one complete chunk of input.
func Decode(p []byte) []Key {
	var d Decoder
	return d.Feed(p)
}

// Listen reads keys from r and sends their events until ctx ends, r is
// exhausted or a quit key arrives. Quit and end of input return nil.
func Listen(ctx context.Context, r io.Reader, send func(context.Context, playback.Event) error) error {
	type chunk struct {
		data []byte
		err  error
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	chunks := make(chan chunk)

	go func() {
		buf := make([]byte, 64)
		for {
			n, err := r.Read(buf)
			c := chunk{data: append([]byte(nil), buf[:n]...), err: err}
			select {
			case chunks <- c:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	var d Decoder
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-chunks:
			for _, k := range d.Feed(c.data) {
				if k == KeyQuit {
					return nil
				}
				if e, ok := Event(k); ok {
					if err := send(ctx, e); err != nil {
						return err
					}
				}
			}
			if errors.Is(c.err, io.EOF) {
				return nil
			}
			if c.err != nil {
				return c.err
			}
		}
	}
}

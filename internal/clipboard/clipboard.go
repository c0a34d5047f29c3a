// Package clipboard is the clipboard collaborator. Writes go to the system
// clipboard when there is one and to the terminal via OSC 52 otherwise.
package clipboard

import (
	"fmt"
	"io"
	"os"

	atotto "github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"github.com/charmbracelet/log"
)

// Writer accepts a text write request.
type Writer interface {
	WriteText(s string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(s string) error

func (f WriterFunc) WriteText(s string) error { return f(s) }

// System writes through atotto/clipboard with an OSC 52 fallback.
type System struct {
	// Terminal receives the OSC 52 sequence; defaults to stderr.
	Terminal io.Writer
	log      *log.Logger

	// overridable in tests
	unsupported bool
	writeAll    func(string) error
}

func NewSystem(logger *log.Logger) *System {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &System{
		Terminal:    os.Stderr,
		log:         logger,
		unsupported: atotto.Unsupported,
		writeAll:    atotto.WriteAll,
	}
}

func (c *System) WriteText(s string) error {
	if !c.unsupported {
		err := c.writeAll(s)
		if err == nil {
			c.log.Debug("copied to system clipboard", "bytes", len(s))
			return nil
		}
		c.log.Debug("system clipboard failed, trying OSC 52", "err", err)
	}
	seq := osc52.New(s)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(c.Terminal); err != nil {
		return fmt.Errorf("osc52 write: %w", err)
	}
	c.log.Debug("copied via OSC 52", "bytes", len(s))
	return nil
}

// Available reports whether a system clipboard utility was found.
func Available() bool { return !atotto.Unsupported }

// Package clipboard copies text to the system clipboard, falling back to the
// terminal's OSC 52 selection sequence when no system clipboard is available.
package clipboard

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	sysclip "github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/mmcdole/xtconsole/internal/domain"
)

// Method reports which path performed a copy
type Method string

const (
	MethodSystem   Method = "clipboard"
	MethodTerminal Method = "terminal (osc52)"
)

// Copier copies text using the system clipboard first, then OSC 52
type Copier struct {
	osc52  bool
	out    io.Writer // Terminal that receives the OSC 52 sequence
	logger *slog.Logger

	// system writes to the system clipboard; nil when unsupported
	system func(text string) error
}

// NewCopier creates a copier. When osc52 is false only the system clipboard is tried.
func NewCopier(osc52Fallback bool, logger *slog.Logger) *Copier {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Copier{
		osc52:  osc52Fallback,
		out:    os.Stderr,
		logger: logger,
	}
	if !sysclip.Unsupported {
		c.system = sysclip.WriteAll
	}
	return c
}

// Copy places text on the clipboard and reports how. It returns
// domain.ErrClipboardUnavailable when every path failed.
func (c *Copier) Copy(text string) (Method, error) {
	if c.system != nil {
		err := c.system(text)
		if err == nil {
			c.logger.Debug("copied to system clipboard", "bytes", len(text))
			return MethodSystem, nil
		}
		c.logger.Debug("system clipboard failed", "error", err)
	}

	if c.osc52 && c.out != nil {
		if _, err := osc52.New(text).WriteTo(c.out); err != nil {
			c.logger.Warn("osc52 copy failed", "error", err)
			return "", fmt.Errorf("%w: %v", domain.ErrClipboardUnavailable, err)
		}
		c.logger.Debug("copied via osc52", "bytes", len(text))
		return MethodTerminal, nil
	}

	return "", domain.ErrClipboardUnavailable
}

// Package clipboard provides clipboard adapters for copied preview links.
// The system adapter prefers wl-clipboard (Wayland) or xclip/xsel (X11) and
// falls back to the platform clipboard library elsewhere.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/logging"
)

// ErrUnavailable is returned when no clipboard backend could be found.
var ErrUnavailable = errors.New("no clipboard tool available (install wl-clipboard or xclip)")

// tool is an external clipboard command with its copy and paste arguments.
type tool struct {
	name      string
	copyPath  string
	copyArgs  []string
	pastePath string
	pasteArgs []string
}

var (
	wlClipboard = tool{name: "wl-copy", pasteArgs: []string{"--no-newline"}}
	xclip       = tool{name: "xclip", copyArgs: []string{"-selection", "clipboard"}, pasteArgs: []string{"-selection", "clipboard", "-o"}}
	xsel        = tool{name: "xsel", copyArgs: []string{"--clipboard", "--input"}, pasteArgs: []string{"--clipboard", "--output"}}
)

// Adapter implements port.Clipboard using system clipboard tools.
type Adapter struct {
	tool    *tool
	library bool
}

var _ port.Clipboard = (*Adapter)(nil)

// New creates a clipboard adapter for the current session.
func New() *Adapter {
	return detect(os.Getenv, exec.LookPath, !clipboard.Unsupported)
}

func detect(getenv func(string) string, lookPath func(string) (string, error), libraryOK bool) *Adapter {
	a := &Adapter{}

	if getenv("WAYLAND_DISPLAY") != "" {
		if copyPath, err := lookPath("wl-copy"); err == nil {
			if pastePath, err := lookPath("wl-paste"); err == nil {
				t := wlClipboard
				t.copyPath, t.pastePath = copyPath, pastePath
				a.tool = &t
				return a
			}
		}
	}

	if getenv("DISPLAY") != "" {
		for _, candidate := range []tool{xclip, xsel} {
			if path, err := lookPath(candidate.name); err == nil {
				t := candidate
				t.copyPath, t.pastePath = path, path
				a.tool = &t
				return a
			}
		}
	}

	a.library = libraryOK
	return a
}

// Backend names the selected clipboard backend, or "" when none is available.
func (a *Adapter) Backend() string {
	switch {
	case a.tool != nil:
		return a.tool.name
	case a.library:
		return "system"
	default:
		return ""
	}
}

// WriteText copies text to the clipboard.
func (a *Adapter) WriteText(ctx context.Context, text string) error {
	log := logging.FromContext(ctx)

	switch {
	case a.tool != nil:
		cmd := exec.CommandContext(ctx, a.tool.copyPath, a.tool.copyArgs...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err != nil {
			log.Error().Err(err).Str("tool", a.tool.name).Msg("clipboard write failed")
			return fmt.Errorf("%s: %w", a.tool.name, err)
		}
	case a.library:
		if err := clipboard.WriteAll(text); err != nil {
			log.Error().Err(err).Msg("clipboard write failed")
			return err
		}
	default:
		log.Error().Err(ErrUnavailable).Msg("clipboard write failed")
		return ErrUnavailable
	}

	log.Debug().Str("backend", a.Backend()).Int("len", len(text)).Msg("clipboard write success")
	return nil
}

// ReadText reads text from the clipboard.
func (a *Adapter) ReadText(ctx context.Context) (string, error) {
	log := logging.FromContext(ctx)

	switch {
	case a.tool != nil:
		out, err := exec.CommandContext(ctx, a.tool.pastePath, a.tool.pasteArgs...).Output()
		if err != nil {
			log.Debug().Err(err).Str("tool", a.tool.name).Msg("clipboard read failed (may be empty)")
			return "", err
		}
		return string(out), nil
	case a.library:
		return clipboard.ReadAll()
	default:
		return "", ErrUnavailable
	}
}

// Memory is an in-process clipboard used by headless runs and tests.
type Memory struct {
	mu     sync.Mutex
	text   string
	writes int
}

var _ port.Clipboard = (*Memory)(nil)

// NewMemory creates an empty in-process clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// WriteText implements port.Clipboard.
func (m *Memory) WriteText(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.writes++
	logging.FromContext(ctx).Debug().Int("len", len(text)).Msg("memory clipboard write")
	return nil
}

// ReadText implements port.Clipboard.
func (m *Memory) ReadText(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// Writes counts WriteText calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

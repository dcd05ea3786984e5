package styles

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/previewr/internal/bootstrap"
	domainurl "github.com/bnema/previewr/internal/domain/url"
)

// PreviewRenderer renders preview session state for the terminal.
type PreviewRenderer struct {
	theme *Theme
}

// NewPreviewRenderer creates a renderer with the given theme.
func NewPreviewRenderer(theme *Theme) *PreviewRenderer {
	if theme == nil {
		theme = NewTheme()
	}
	return &PreviewRenderer{theme: theme}
}

// RenderReport renders the final state of a replay or run.
func (r *PreviewRenderer) RenderReport(report bootstrap.PreviewReport) string {
	t := r.theme
	label := t.Subtle.Width(10)

	var sb strings.Builder
	state := t.BadgeMuted.Render("closed")
	if report.Session.OverlayOpen {
		state = t.Badge.Render("open")
	}
	sb.WriteString(t.BoxHeader.Render(fmt.Sprintf("%s Preview %s", IconGlobe, state)))
	sb.WriteString("\n")

	current := report.Session.CurrentURL
	if current == "" {
		current = "-"
	}
	sb.WriteString(label.Render("url") + t.Highlight.Render(current) + "\n")

	if len(report.Session.Stack) > 0 {
		sb.WriteString(label.Render("history"))
		for i := len(report.Session.Stack) - 1; i >= 0; i-- {
			if i != len(report.Session.Stack)-1 {
				sb.WriteString(strings.Repeat(" ", 10))
			}
			sb.WriteString(t.Subtle.Render(IconBack) + " " + t.Normal.Render(report.Session.Stack[i]) + "\n")
		}
	}

	if report.Session.OverlayOpen {
		sb.WriteString(label.Render("title") + t.Normal.Render(report.Overlay.Title) + "\n")
		sb.WriteString(label.Render("controls") + t.Normal.Render(strings.Join(report.Overlay.Controls, ", ")) + "\n")
		sb.WriteString(label.Render("placement") + t.Normal.Render(fmt.Sprintf("%s x %s %s, z-index %d",
			report.Overlay.Placement.Width,
			report.Overlay.Placement.Height,
			report.Overlay.Placement.Side,
			report.Overlay.Placement.ZIndex,
		)) + "\n")
	}

	var flags []string
	if report.Session.ReaderMode {
		flags = append(flags, IconBook+" reader")
	}
	if report.Session.Demo {
		flags = append(flags, "demo")
	}
	if len(flags) > 0 {
		sb.WriteString(label.Render("mode") + t.WarningStyle.Render(strings.Join(flags, ", ")) + "\n")
	}

	for _, tab := range report.Tabs {
		sb.WriteString(label.Render("new tab") + t.Normal.Render(tab) + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(t.Subtle.Render(fmt.Sprintf(
		"messages %d accepted, %d dropped | overlays %d | telemetry %d stored, %d dropped",
		report.Router.Accepted,
		report.Router.Dropped,
		report.OverlaysOpened,
		report.Telemetry.Stored,
		report.Telemetry.QueueFull+report.Telemetry.RateLimited,
	)))

	return t.Box.Render(sb.String())
}

// RenderEngines renders the search registry in order, marking the default.
func (r *PreviewRenderer) RenderEngines(engines []domainurl.SearchEngine) string {
	t := r.theme
	width := 0
	for _, e := range engines {
		width = max(width, lipgloss.Width(e.ID))
	}

	var sb strings.Builder
	sb.WriteString(t.Title.Render(IconSearch+" Search engines") + "\n")
	for i, e := range engines {
		line := fmt.Sprintf("  %s %s %s",
			t.Highlight.Render(IconCursor),
			t.Normal.Width(width).Render(e.ID),
			t.Subtle.Render(e.QueryPrefix),
		)
		if i == 0 {
			line += " " + t.Badge.Render("default")
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

// RenderPreference renders one stored preference value.
func (r *PreviewRenderer) RenderPreference(key string, raw json.RawMessage, ok bool) string {
	t := r.theme
	if !ok {
		return fmt.Sprintf("  %s %s %s", t.Subtle.Render(IconInfo), t.Highlight.Render(key), t.Subtle.Render("not set"))
	}
	return fmt.Sprintf("  %s %s %s", t.Highlight.Render(IconDatabase), t.Highlight.Render(key), t.Normal.Render(string(raw)))
}

// RenderPreferences renders every stored preference, sorted by key.
func (r *PreviewRenderer) RenderPreferences(values map[string]json.RawMessage) string {
	if len(values) == 0 {
		return r.theme.Subtle.Render("  no preferences stored")
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = r.RenderPreference(k, values[k], true)
	}
	return strings.Join(lines, "\n")
}

// RenderSaved confirms a preference write.
func (r *PreviewRenderer) RenderSaved(key string) string {
	return fmt.Sprintf("  %s %s saved", r.theme.SuccessStyle.Render(IconCheck), r.theme.Highlight.Render(key))
}

// RenderConfigPath renders the config file location.
func (r *PreviewRenderer) RenderConfigPath(path string) string {
	return fmt.Sprintf("  %s Config %s", lipgloss.NewStyle().Foreground(r.theme.Accent).Render(IconConfig), r.theme.Subtle.Render(path))
}

// RenderError renders an error message.
func (r *PreviewRenderer) RenderError(err error) string {
	return fmt.Sprintf("  %s %s", r.theme.ErrorStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}

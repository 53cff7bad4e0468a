package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/emdiet/popl/internal/ui/output"
	"github.com/charmbracelet/lipgloss"
	"github.com/emdiet/popl/internal/ui/style"
	"github.com/muesli/termenv"
)

// PrettyHandler is a slog.Handler writing one coloured line per record:
// the level icon, the message, then key=value attributes in a muted colour.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	attrs  []string
	prefix string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	msg, color := decorate(r.Level, r.Message)
	line := h.out.String(msg).Foreground(h.out.Color(string(color))).String()

	attrs := slices.Clone(h.attrs)
	r.Attrs(func(attr slog.Attr) bool {
		attrs = appendAttr(attrs, h.prefix, attr)
		return true
	})
	if len(attrs) > 0 {
		line += " " + h.out.String(strings.Join(attrs, " ")).Foreground(h.out.Color(string(style.Slate))).String()
	}

	_, err := h.out.WriteString(line + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rendered := slices.Clip(h.attrs)
	for _, attr := range attrs {
		rendered = appendAttr(rendered, h.prefix, attr)
	}
	return &PrettyHandler{out: h.out, level: h.level, attrs: rendered, prefix: h.prefix}
}

// WithGroup returns a new Handler qualifying later attribute keys with name.
// Groups nest.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &PrettyHandler{out: h.out, level: h.level, attrs: h.attrs, prefix: h.prefix + name + "."}
}

// decorate picks the icon and colour of a line. Info lines that already
// carry the success icon, like step summaries, are shown in green.
func decorate(level slog.Level, msg string) (string, lipgloss.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross + " " + msg, style.Red
	case level >= slog.LevelWarn:
		return style.Warning + " " + msg, style.Yellow
	case strings.HasPrefix(msg, style.Check+" "):
		return msg, style.Green
	default:
		return msg, style.Slate
	}
}

// appendAttr renders attr as key=value, expanding groups and quoting values
// such as paths with spaces.
func appendAttr(dst []string, prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return dst
	}

	if attr.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix += attr.Key + "."
		}
		for _, child := range attr.Value.Group() {
			dst = appendAttr(dst, groupPrefix, child)
		}
		return dst
	}

	value := attr.Value.String()
	if value == "" || strings.ContainsAny(value, " \t\n\"=") {
		value = strconv.Quote(value)
	}
	return append(dst, prefix+attr.Key+"="+value)
}

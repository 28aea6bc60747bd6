// Package slogutil provides the slog handler and level helpers used by codehunter.
package slogutil

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// LineHandler writes one record per line, e.g.
//
//	2026-01-02T15:04:05Z [info] Parsed file | file=pkg/a.py functions=3
//
// Attribute groups flatten into dotted keys. String values holding spaces,
// quotes or '=' are quoted so paths with spaces stay one token.
type LineHandler struct {
	out    *lockedWriter
	level  slog.Leveler
	noTime bool

	// pre holds the attributes bound by WithAttrs, already rendered.
	pre []byte
	// group is the dotted key prefix opened by WithGroup, e.g. "graph.".
	group string
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) write(p []byte) error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	_, err := lw.w.Write(p)
	return err
}

// NewLineHandler creates a line handler. A nil opts logs at info level.
func NewLineHandler(w io.Writer, opts *slog.HandlerOptions) *LineHandler {
	h := &LineHandler{out: &lockedWriter{w: w}, level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// WithoutTime returns a copy of the handler that omits the timestamp column.
func (h *LineHandler) WithoutTime() *LineHandler {
	c := h.clone()
	c.noTime = true
	return c
}

func (h *LineHandler) clone() *LineHandler {
	c := *h
	c.pre = append([]byte(nil), h.pre...)
	return &c
}

func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 128+len(h.pre))
	if !h.noTime && !r.Time.IsZero() {
		buf = r.Time.UTC().AppendFormat(buf, time.RFC3339)
		buf = append(buf, ' ')
	}
	buf = append(buf, '[')
	buf = append(buf, levelLabel(r.Level)...)
	buf = append(buf, "] "...)
	buf = append(buf, r.Message...)

	attrs := h.pre
	if r.NumAttrs() > 0 {
		attrs = append([]byte(nil), h.pre...)
		r.Attrs(func(a slog.Attr) bool {
			attrs = appendAttr(attrs, h.group, a)
			return true
		})
	}
	if len(attrs) > 0 {
		buf = append(buf, " |"...)
		buf = append(buf, attrs...)
	}
	buf = append(buf, '\n')
	return h.out.write(buf)
}

func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	c := h.clone()
	for _, a := range attrs {
		c.pre = appendAttr(c.pre, c.group, a)
	}
	return c
}

func (h *LineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	c.group += name + "."
	return c
}

// appendAttr renders a as " key=value", recursing into groups. Attributes
// without a key and empty groups render nothing.
func appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			buf = appendAttr(buf, prefix, ga)
		}
		return buf
	}
	if a.Key == "" {
		return buf
	}
	buf = append(buf, ' ')
	buf = append(buf, prefix...)
	buf = append(buf, a.Key...)
	buf = append(buf, '=')
	return appendValue(buf, a.Value)
}

func appendValue(buf []byte, v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			return strconv.AppendQuote(buf, s)
		}
		return append(buf, s...)
	case slog.KindInt64:
		return strconv.AppendInt(buf, v.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(buf, v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.AppendFloat(buf, v.Float64(), 'g', -1, 64)
	case slog.KindBool:
		return strconv.AppendBool(buf, v.Bool())
	case slog.KindDuration:
		return append(buf, v.Duration().Round(time.Microsecond).String()...)
	case slog.KindTime:
		return v.Time().UTC().AppendFormat(buf, time.RFC3339)
	}
	if err, ok := v.Any().(error); ok {
		return strconv.AppendQuote(buf, err.Error())
	}
	return appendValue(buf, slog.StringValue(v.String()))
}

// levelLabel maps a level onto the four names codehunter prints.
// Intermediate levels round down, so LevelInfo+2 prints as info.
func levelLabel(level slog.Level) string {
	labels := [...]struct {
		min  slog.Level
		name string
	}{
		{slog.LevelError, "error"},
		{slog.LevelWarn, "warn"},
		{slog.LevelInfo, "info"},
	}
	for _, l := range labels {
		if level >= l.min {
			return l.name
		}
	}
	return "debug"
}

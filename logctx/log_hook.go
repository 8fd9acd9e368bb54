package logctx

import (
	"context"
	"log/slog"
	"sync"
)

type HookRecord struct {
	Record slog.Record
	// Attrs are the attributes added with Logger.With, not those on the Record.
	Attrs []slog.Attr
	Group string
}

// AttrMap returns both the logger and record attributes, keyed by name.
// Record attributes win when both have the same key.
func (r HookRecord) AttrMap() map[string]any {
	result := attrMap(r.Attrs)
	r.Record.Attrs(func(a slog.Attr) bool {
		result[a.Key] = a.Value.Any()
		return true
	})
	return result
}

func NewHook() *Hook {
	return &Hook{records: &hookRecords{}}
}

// Hook is a slog.Handler that keeps records in memory, for tests.
// It handles every level.
type Hook struct {
	records *hookRecords
	attrs   []slog.Attr
	group   string
}

var _ slog.Handler = &Hook{}

func (t *Hook) Enabled(context.Context, slog.Level) bool {
	return true
}

func (t *Hook) Handle(_ context.Context, r slog.Record) error {
	t.records.Add(HookRecord{Record: r.Clone(), Attrs: t.attrs, Group: t.group})
	return nil
}

func (t *Hook) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(t.attrs)+len(attrs))
	merged = append(merged, t.attrs...)
	merged = append(merged, attrs...)
	return &Hook{records: t.records, attrs: merged, group: t.group}
}

func (t *Hook) WithGroup(group string) slog.Handler {
	return &Hook{records: t.records, attrs: t.attrs, group: group}
}

// LastRecord returns the last record that was logged or nil.
func (t *Hook) LastRecord() *HookRecord {
	return t.records.LastRecord()
}

// Records returns all records that were logged.
func (t *Hook) Records() []HookRecord {
	return t.records.Records()
}

// Messages returns the message of every record, in order.
func (t *Hook) Messages() []string {
	recs := t.Records()
	result := make([]string, len(recs))
	for i, r := range recs {
		result[i] = r.Record.Message
	}
	return result
}

func (t *Hook) AttrMap() map[string]any {
	return attrMap(t.attrs)
}

type hookRecords struct {
	r   []HookRecord
	mux sync.RWMutex
}

func (h *hookRecords) Add(r HookRecord) {
	h.mux.Lock()
	defer h.mux.Unlock()
	h.r = append(h.r, r)
}

func (h *hookRecords) Records() []HookRecord {
	h.mux.RLock()
	defer h.mux.RUnlock()
	entries := make([]HookRecord, len(h.r))
	copy(entries, h.r)
	return entries
}

func (h *hookRecords) LastRecord() *HookRecord {
	h.mux.RLock()
	defer h.mux.RUnlock()
	i := len(h.r) - 1
	if i < 0 {
		return nil
	}
	r := h.r[i]
	return &r
}

func attrMap(attrs []slog.Attr) map[string]any {
	result := make(map[string]any, len(attrs))
	for _, a := range attrs {
		result[a.Key] = a.Value.Any()
	}
	return result
}

package sheet

import (
	"strconv"
	"strings"
)

// Row is a single spreadsheet row keyed by the original header text, kept in
// column order so that duplicate-matching headers resolve deterministically.
type Row struct {
	headers []string
	cells   map[string]string
}

// NewRow builds an empty row.
func NewRow() *Row {
	return &Row{cells: make(map[string]string)}
}

// Set stores a cell under its original header. Later duplicates of the same
// header overwrite the value but keep the first position.
func (r *Row) Set(header, value string) {
	if _, ok := r.cells[header]; !ok {
		r.headers = append(r.headers, header)
	}
	r.cells[header] = value
}

// Len returns the number of populated cells.
func (r *Row) Len() int {
	return len(r.headers)
}

// Lookup scans the row's headers in column order and returns the value of the
// first header whose normalized form matches the normalized field name.
// Normalization lowercases and strips all whitespace and underscores, so
// "Completed Chapters", "completed_chapters" and "CompletedChapters " all
// resolve the same field.
func (r *Row) Lookup(field string) (string, bool) {
	want := normalizeKey(field)
	for _, header := range r.headers {
		if normalizeKey(header) == want {
			return r.cells[header], true
		}
	}
	return "", false
}

// String returns the trimmed cell text for field, or fallback when the field
// is missing or blank.
func (r *Row) String(field, fallback string) string {
	raw, ok := r.Lookup(field)
	if !ok {
		return fallback
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

// Int coerces the cell for field to a non-negative-friendly integer. Missing
// or non-numeric cells coerce to 0; decimal text is truncated. There is no
// rejection on type mismatch, mirroring the tolerant source behavior.
func (r *Row) Int(field string) int {
	raw, ok := r.Lookup(field)
	if !ok {
		return 0
	}
	return coerceInt(raw)
}

func coerceInt(raw string) int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return int(f)
	}
	return 0
}

func normalizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, ch := range key {
		switch {
		case ch == '_':
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f':
		default:
			b.WriteRune(ch)
		}
	}
	return strings.ToLower(b.String())
}

// Package excel implements the spreadsheet reconciliation pass: parsing
// composite PO/Line keys, extracting ETA dates from annotation text, and
// writing computed comment/reply fields back into uploaded workbooks.
package excel

import (
	"fmt"
	"strings"
)

// ParsePOLine splits a composite key like "4500010431/12" into its PO and
// line parts. Anything other than exactly two non-empty parts is rejected.
func ParsePOLine(s string) (po string, line string, err error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid PO/Line format: %q", s)
	}

	po = strings.TrimSpace(parts[0])
	line = strings.TrimSpace(parts[1])
	if po == "" || line == "" {
		return "", "", fmt.Errorf("invalid PO/Line format: %q", s)
	}
	return po, line, nil
}

// HeaderIndex maps header names to 1-based column numbers. Supplier files
// are inconsistent about trailing whitespace in headers, so lookups also
// match the trimmed form.
type HeaderIndex map[string]int

func NewHeaderIndex(headers []string) HeaderIndex {
	idx := make(HeaderIndex, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		idx[h] = i + 1
		if trimmed := strings.TrimRight(h, " "); trimmed != h {
			idx[trimmed] = i + 1
		}
	}
	return idx
}

// Column resolves a logical column by name, falling back to known synonym
// headers used by other spreadsheet producers.
func (h HeaderIndex) Column(name string, synonyms ...string) (int, bool) {
	if col, ok := h[name]; ok {
		return col, true
	}
	for _, syn := range synonyms {
		if col, ok := h[syn]; ok {
			return col, true
		}
	}
	return 0, false
}

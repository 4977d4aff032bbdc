package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"prism/internal/theme"

	"github.com/charmbracelet/lipgloss"
)

// Host is the ordered list of resource dictionaries attached to the window.
// It is only touched on the UI goroutine.
type Host struct {
	catalog Catalog
	stack   []Dictionary
}

// NewHost creates an empty host backed by catalog.
func NewHost(catalog Catalog) *Host {
	return &Host{catalog: catalog}
}

// ClearResources detaches every dictionary.
func (h *Host) ClearResources() {
	h.stack = h.stack[:0]
}

// AppendResource attaches the dictionary named id on top of the stack.
// An unknown id is a packaging defect and panics.
func (h *Host) AppendResource(id theme.ResourceID) {
	d, ok := h.catalog[id]
	if !ok {
		panic(fmt.Sprintf("ui: resource %q is not in the catalog", id))
	}
	h.stack = append(h.stack, d)
}

// Resources returns the attached identifiers in order.
func (h *Host) Resources() []theme.ResourceID {
	ids := make([]theme.ResourceID, len(h.stack))
	for i, d := range h.stack {
		ids[i] = d.ID
	}
	return ids
}

// Color looks key up from the top of the stack down.
func (h *Host) Color(key string) (lipgloss.AdaptiveColor, bool) {
	for i := len(h.stack) - 1; i >= 0; i-- {
		if c, ok := h.stack[i].Entries[key]; ok {
			return c, true
		}
	}
	return lipgloss.AdaptiveColor{}, false
}

// Keys returns every key visible through the stack, sorted.
func (h *Host) Keys() []string {
	seen := make(map[string]struct{})
	for _, d := range h.stack {
		for k := range d.Entries {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteKeys writes one key per line with the dictionary that supplies it.
func (h *Host) WriteKeys(w io.Writer) error {
	for _, k := range h.Keys() {
		owner := ""
		for i := len(h.stack) - 1; i >= 0; i-- {
			if _, ok := h.stack[i].Entries[k]; ok {
				owner = string(h.stack[i].ID)
				break
			}
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", k, owner); err != nil {
			return err
		}
	}
	return nil
}

// DumpKeys writes a listing produced by WriteKeys to path, replacing any existing file.
func DumpKeys(keys string, path string) error {
	//nolint:gosec // G306: dump is meant to be read by the user
	if err := os.WriteFile(path, []byte(keys), 0o644); err != nil {
		return fmt.Errorf("write resource keys: %w", err)
	}
	return nil
}

// snapshotKeys renders WriteKeys into a string.
func (h *Host) snapshotKeys() string {
	var b strings.Builder
	_ = h.WriteKeys(&b)
	return b.String()
}

// Package widget tracks the widgets installed under the widgets root
// directory. Each immediate subdirectory is one widget; its directory name
// is the widget id plugins and the API refer to.
package widget

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/deskulpt-apps/deskulpt/internal/log"
)

// ErrWidgetNotFound is returned when an id matches no scanned widget.
var ErrWidgetNotFound = errors.New("widget not found")

// manifestFile is the optional per-widget metadata file.
const manifestFile = "deskulpt.json"

// Widget is one installed widget.
type Widget struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Entry string `json:"entry,omitempty"`
	Dir   string `json:"dir"`
}

// manifest is the subset of deskulpt.json the host cares about.
type manifest struct {
	Name  string `json:"name"`
	Entry string `json:"entry"`
}

// Catalog is the scanned widget set. Rescan replaces the set atomically;
// reads are safe concurrently with a rescan.
type Catalog struct {
	root string

	mu      sync.RWMutex
	widgets map[string]Widget
}

// NewCatalog creates an empty catalog over root. Call Rescan to populate it.
func NewCatalog(root string) *Catalog {
	return &Catalog{root: root, widgets: make(map[string]Widget)}
}

// Rescan walks the root directory and rebuilds the widget set. A missing or
// unreadable root is an error; a widget with a malformed manifest is kept
// with defaults and the problem is logged.
func (c *Catalog) Rescan() error {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		return fmt.Errorf("scan widgets root %s: %w", c.root, err)
	}

	widgets := make(map[string]Widget, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		id := e.Name()
		dir := filepath.Join(c.root, id)
		w := Widget{ID: id, Name: id, Dir: dir}

		if m, err := readManifest(filepath.Join(dir, manifestFile)); err != nil {
			log.WithWidget(id).Warn("ignoring malformed manifest", "error", err)
		} else if m != nil {
			if m.Name != "" {
				w.Name = m.Name
			}
			w.Entry = m.Entry
		}
		widgets[id] = w
	}

	c.mu.Lock()
	c.widgets = widgets
	c.mu.Unlock()

	log.WithComponent("widget-catalog").Info("widgets scanned", "count", len(widgets))
	return nil
}

// readManifest returns nil with no error when the file does not exist.
func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return &m, nil
}

// Dir resolves a widget id to its absolute directory. This backs the
// widget_dir callback handed to plugins.
func (c *Catalog) Dir(id string) (string, error) {
	c.mu.RLock()
	w, ok := c.widgets[id]
	c.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("widget %s: %w", id, ErrWidgetNotFound)
	}
	return filepath.Abs(w.Dir)
}

// Widgets returns the scanned widgets sorted by id.
func (c *Catalog) Widgets() []Widget {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Widget, 0, len(c.widgets))
	for _, w := range c.widgets {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

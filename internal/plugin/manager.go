package plugin

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/deskulpt-apps/deskulpt/internal/log"
	"github.com/deskulpt-apps/deskulpt/internal/plugin/abi"
)

// Record is a point-in-time view of one resident plugin, safe to hand out
// beyond the manager's lock.
type Record struct {
	Name        string   `json:"name"`
	Version     string   `json:"version,omitempty"`
	Commands    []string `json:"commands"`
	Path        string   `json:"path"`
	Fingerprint string   `json:"fingerprint"`
}

// Manager owns the set of resident plugins and the command routing table.
// All methods are safe for concurrent use. Command calls run under a read
// lock while load and unload take the write lock, so a library is never
// closed while one of its commands is executing.
type Manager struct {
	mu        sync.RWMutex
	plugins   map[string]*LoadedPlugin
	commands  map[string]string // command name -> plugin name
	callbacks abi.EngineCallbacks

	// loadFn is swapped in tests to inject in-process fakes.
	loadFn func(path string, cb abi.EngineCallbacks) (*LoadedPlugin, error)
}

// NewManager creates an empty manager that initializes every loaded plugin
// with the given callback table.
func NewManager(callbacks abi.EngineCallbacks) *Manager {
	return &Manager{
		plugins:   make(map[string]*LoadedPlugin),
		commands:  make(map[string]string),
		callbacks: callbacks,
		loadFn:    Load,
	}
}

// LoadPlugin loads the library at path and registers its commands. A name or
// command conflict with an already resident plugin rejects the new library
// entirely; the existing registration is untouched and the new library is
// destroyed and closed.
func (m *Manager) LoadPlugin(path string) (Record, error) {
	p, err := m.loadFn(path, m.callbacks)
	if err != nil {
		return Record{}, err
	}

	rec, err := m.register(p)
	if err != nil {
		if closeErr := p.Close(); closeErr != nil {
			log.WithPlugin(p.Info().Name).Warn("failed to close rejected plugin", "error", closeErr)
		}
		return Record{}, err
	}

	log.WithPlugin(rec.Name).Info("plugin loaded",
		"version", rec.Version,
		"commands", len(rec.Commands),
		"fingerprint", rec.Fingerprint)
	return rec, nil
}

// register validates p against the current registry and, if clean, inserts
// it atomically. A conflict leaves the registry untouched.
func (m *Manager) register(p *LoadedPlugin) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := p.Info().Name
	if _, ok := m.plugins[name]; ok {
		return Record{}, &ConflictError{Plugin: name}
	}
	seen := make(map[string]struct{}, len(p.Info().Commands))
	for _, cmd := range p.Info().Commands {
		if _, ok := m.commands[cmd]; ok {
			return Record{}, &ConflictError{Plugin: name, Command: cmd}
		}
		if _, ok := seen[cmd]; ok {
			return Record{}, &ConflictError{Plugin: name, Command: cmd}
		}
		seen[cmd] = struct{}{}
	}

	m.plugins[name] = p
	for _, cmd := range p.Info().Commands {
		m.commands[cmd] = name
	}
	return record(p), nil
}

// LoadPluginsFromDir loads every library in dir with the platform plugin
// extension. An unreadable directory aborts the scan; files that fail to
// load are skipped and reported together in a single warning after the scan.
// Returns the names of the plugins that loaded.
func (m *Manager) LoadPluginsFromDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan plugin dir %s: %w", dir, err)
	}

	var loaded, failures []string
	for _, e := range entries {
		if e.IsDir() || !IsValidPluginPath(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		rec, err := m.LoadPlugin(path)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		loaded = append(loaded, rec.Name)
	}
	if len(failures) > 0 {
		log.WithComponent("plugin-manager").Warn("some plugins failed to load",
			"failed", len(failures), "errors", strings.Join(failures, "; "))
	}
	return loaded, nil
}

// UnloadPlugin removes the named plugin, dropping its commands from the
// routing table, then destroys and closes the library.
func (m *Manager) UnloadPlugin(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.plugins[name]
	if !ok {
		return fmt.Errorf("unload %s: %w", name, ErrPluginNotFound)
	}
	delete(m.plugins, name)
	for _, cmd := range p.Info().Commands {
		delete(m.commands, cmd)
	}
	if err := p.Close(); err != nil {
		return fmt.Errorf("unload %s: %w", name, err)
	}
	log.WithPlugin(name).Info("plugin unloaded")
	return nil
}

// ReloadPlugin would unload and re-load the named plugin from its original
// path. Closing and re-opening a library whose callback trampolines may still
// be referenced is not yet safe, so this currently only validates the name.
//
// TODO: implement once unload is proven leak-free under dlclose.
func (m *Manager) ReloadPlugin(name string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.plugins[name]; !ok {
		return fmt.Errorf("reload %s: %w", name, ErrPluginNotFound)
	}
	return fmt.Errorf("reload %s: %w", name, ErrReloadUnsupported)
}

// CallCommand routes command to its owning plugin and invokes it. The result
// is validated as UTF-8 JSON before being returned. Calls from different
// goroutines may run concurrently; none can overlap an unload of the same
// plugin.
func (m *Manager) CallCommand(command, widgetID, payload string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name, ok := m.commands[command]
	if !ok {
		return nil, &DispatchError{Command: command, Err: ErrUnknownCommand}
	}
	p := m.plugins[name]

	out, err := p.CallCommand(command, widgetID, payload)
	if err != nil {
		return nil, &DispatchError{Plugin: name, Command: command, Err: err}
	}
	if !utf8.ValidString(out) {
		return nil, &DispatchError{Plugin: name, Command: command,
			Err: fmt.Errorf("result is not valid UTF-8")}
	}
	if !json.Valid([]byte(out)) {
		return nil, &DispatchError{Plugin: name, Command: command,
			Err: fmt.Errorf("result is not valid JSON")}
	}
	return json.RawMessage(out), nil
}

// PluginCount returns the number of resident plugins.
func (m *Manager) PluginCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.plugins)
}

// CommandCount returns the number of registered commands across all plugins.
func (m *Manager) CommandCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.commands)
}

// PluginNames returns the names of all resident plugins, sorted.
func (m *Manager) PluginNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.plugins))
	for name := range m.plugins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CommandNames returns all registered command names, sorted.
func (m *Manager) CommandNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.commands))
	for cmd := range m.commands {
		out = append(out, cmd)
	}
	sort.Strings(out)
	return out
}

// HasPlugin reports whether a plugin with the given name is resident.
func (m *Manager) HasPlugin(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.plugins[name]
	return ok
}

// HasCommand reports whether the command name routes to a resident plugin.
func (m *Manager) HasCommand(command string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.commands[command]
	return ok
}

// Plugins returns a snapshot of every resident plugin, sorted by name.
func (m *Manager) Plugins() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Record, 0, len(m.plugins))
	for _, p := range m.plugins {
		out = append(out, record(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Plugin returns the snapshot of one resident plugin.
func (m *Manager) Plugin(name string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.plugins[name]
	if !ok {
		return Record{}, fmt.Errorf("plugin %s: %w", name, ErrPluginNotFound)
	}
	return record(p), nil
}

// Close unloads every resident plugin. The manager is unusable afterwards.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for name, p := range m.plugins {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s: %w", name, err)
		}
		delete(m.plugins, name)
	}
	m.commands = make(map[string]string)
	return firstErr
}

func record(p *LoadedPlugin) Record {
	info := p.Info()
	cmds := make([]string, len(info.Commands))
	copy(cmds, info.Commands)
	return Record{
		Name:        info.Name,
		Version:     info.Version,
		Commands:    cmds,
		Path:        p.Path(),
		Fingerprint: p.Fingerprint(),
	}
}

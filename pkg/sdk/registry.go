package sdk

import (
	"fmt"
	"runtime/debug"
)

// registry is a plugin resolved for dispatch: its identity plus a command
// lookup table. It is immutable after newRegistry.
type registry struct {
	name     string
	version  string
	commands map[string]Command
	order    []string
}

// newRegistry validates and indexes a plugin's commands. Duplicate command
// names are an authoring error and fail plugin init.
func newRegistry(p Plugin) (*registry, error) {
	name := p.Name()
	if name == "" {
		return nil, fmt.Errorf("plugin has an empty name")
	}

	r := &registry{
		name:     name,
		version:  pluginVersion(p),
		commands: make(map[string]Command),
	}
	for _, cmd := range p.Commands() {
		cn := cmd.Name()
		if cn == "" {
			return nil, fmt.Errorf("plugin %s has a command with an empty name", name)
		}
		if _, ok := r.commands[cn]; ok {
			return nil, fmt.Errorf("plugin %s registers command %q twice", name, cn)
		}
		r.commands[cn] = cmd
		r.order = append(r.order, cn)
	}
	return r, nil
}

// pluginVersion prefers an explicit Versioner and falls back to the main
// module version baked into the binary.
func pluginVersion(p Plugin) string {
	if v, ok := p.(Versioner); ok {
		return v.Version()
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return ""
}

// dispatch routes one command invocation.
func (r *registry) dispatch(command, widgetID string, engine *EngineInterface, payload string) (string, error) {
	cmd, ok := r.commands[command]
	if !ok {
		return "", fmt.Errorf("plugin %s has no command %q", r.name, command)
	}
	return cmd.Run(widgetID, engine, payload)
}

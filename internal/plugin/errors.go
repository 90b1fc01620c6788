package plugin

import (
	"errors"
	"fmt"
)

// Sentinel errors for manager operations.
var (
	// ErrPluginNotFound is returned when an operation names a plugin that is
	// not currently loaded.
	ErrPluginNotFound = errors.New("plugin not found")

	// ErrUnknownCommand is returned when a command name resolves to no loaded
	// plugin.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrReloadUnsupported is returned by ReloadPlugin until hot reload is
	// implemented.
	ErrReloadUnsupported = errors.New("plugin reload not supported")
)

// LoadError reports a failure to load a plugin library. After a LoadError the
// library is not resident and no cleanup is owed by the caller.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load plugin %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ConflictError reports a registration that would shadow an existing plugin
// or command name. The offending plugin is never left partially registered.
type ConflictError struct {
	Plugin  string
	Command string
}

func (e *ConflictError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("plugin %s: command %q already registered", e.Plugin, e.Command)
	}
	return fmt.Sprintf("plugin %s already loaded", e.Plugin)
}

// DispatchError reports a command invocation that the plugin rejected or that
// produced an unusable result.
type DispatchError struct {
	Plugin  string
	Command string
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %s.%s: %v", e.Plugin, e.Command, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

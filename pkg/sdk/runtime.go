package sdk

import (
	"errors"
	"sync"
)

// Package-level plugin state. A c-shared library hosts exactly one plugin;
// Register wires it up and the C exports drive it through init, dispatch,
// and destroy.
var (
	stateMu    sync.Mutex
	registered Plugin
	active     *registry
	engine     *EngineInterface
)

// Register installs p as the plugin this library exports. It must be called
// exactly once, from an init function of the plugin's main package, before
// the host loads the library. Registering twice panics.
func Register(p Plugin) {
	stateMu.Lock()
	defer stateMu.Unlock()
	if registered != nil {
		panic("sdk: Register called twice")
	}
	registered = p
}

// initActive resolves the registered plugin against eng and returns its
// identity for the init out-slot.
func initActive(eng *EngineInterface) (*registry, error) {
	stateMu.Lock()
	defer stateMu.Unlock()
	if registered == nil {
		return nil, errors.New("no plugin registered")
	}
	if active != nil {
		return nil, errors.New("plugin already initialized")
	}
	r, err := newRegistry(registered)
	if err != nil {
		return nil, err
	}
	active = r
	engine = eng
	return r, nil
}

// dispatchActive routes one host command call.
func dispatchActive(command, widgetID, payload string) (string, error) {
	stateMu.Lock()
	r, eng := active, engine
	stateMu.Unlock()
	if r == nil {
		return "", errors.New("plugin not initialized")
	}
	return r.dispatch(command, widgetID, eng, payload)
}

// destroyActive tears down dispatch state. The registered plugin stays so a
// host that loads the library again can re-init it.
func destroyActive() {
	stateMu.Lock()
	defer stateMu.Unlock()
	active = nil
	engine = nil
}

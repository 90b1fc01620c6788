//go:build darwin || freebsd || linux

package plugin

import (
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/deskulpt-apps/deskulpt/internal/plugin/abi"
)

// commandFunc is the Go-side behavior of one fake plugin command.
type commandFunc func(widgetID, payload string) (string, error)

// fakePlugin backs a LoadedPlugin with in-process trampolines so loader and
// manager behavior can be exercised through the real calling convention
// without building a shared library.
type fakePlugin struct {
	commands  map[string]commandFunc
	destroyed atomic.Bool
	freed     atomic.Int64
}

// loaded wraps the fake into a LoadedPlugin as Load would have produced it.
// The zero handle makes Close skip dlclose.
func (f *fakePlugin) loaded(name, version, path string, commandNames []string) *LoadedPlugin {
	call := purego.NewCallback(func(cmd, wid, pay, out uintptr) uintptr {
		fn, ok := f.commands[abi.GoString(cmd)]
		if !ok {
			return ^uintptr(0)
		}
		res, err := fn(abi.GoString(wid), abi.GoString(pay))
		if err != nil {
			if cs, csErr := abi.CString(err.Error()); csErr == nil {
				*(*uintptr)(unsafe.Pointer(out)) = cs
			}
			return ^uintptr(0)
		}
		cs, csErr := abi.CString(res)
		if csErr != nil {
			return ^uintptr(0)
		}
		*(*uintptr)(unsafe.Pointer(out)) = cs
		return 0
	})
	destroy := purego.NewCallback(func() uintptr {
		f.destroyed.Store(true)
		return 0
	})
	free := purego.NewCallback(func(p uintptr) uintptr {
		if p != 0 {
			f.freed.Add(1)
			abi.Free(p)
		}
		return 0
	})

	return &LoadedPlugin{
		callCommand: call,
		destroy:     destroy,
		freeString:  free,
		info:        Info{Name: name, Version: version, Commands: commandNames},
		path:        path,
		fingerprint: "fake-" + name,
	}
}

// stubLoader builds a Manager loadFn that serves canned results by path.
type stubLoader struct {
	plugins map[string]*LoadedPlugin
	errs    map[string]error
}

func (s *stubLoader) load(path string, _ abi.EngineCallbacks) (*LoadedPlugin, error) {
	if err, ok := s.errs[path]; ok {
		return nil, err
	}
	if p, ok := s.plugins[path]; ok {
		return p, nil
	}
	return nil, &LoadError{Path: path, Err: ErrPluginNotFound}
}

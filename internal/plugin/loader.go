package plugin

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ebitengine/purego"

	"github.com/deskulpt-apps/deskulpt/internal/plugin/abi"
)

// Info is the identity a plugin reports at init time, copied into host memory
// before the plugin-owned originals are released.
type Info struct {
	Name     string
	Version  string
	Commands []string
}

// LoadedPlugin is a resident plugin library: the open handle plus the
// resolved export addresses and the identity it reported. Instances are
// created by Load and released exactly once with Close.
type LoadedPlugin struct {
	handle      uintptr
	callCommand uintptr
	destroy     uintptr
	freeString  uintptr
	info        Info
	path        string
	fingerprint string
}

// Load opens the dynamic library at path, resolves the four required exports,
// and runs plugin_init with the given callback table. On any failure it
// returns a LoadError and leaves nothing resident; a nonzero init return
// closes the library without calling plugin_destroy, since the plugin never
// reached the initialized state.
func Load(path string, callbacks abi.EngineCallbacks) (*LoadedPlugin, error) {
	fingerprint, err := Fingerprint(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	handle, err := dlOpen(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("open library: %w", err)}
	}

	syms := make(map[string]uintptr, len(abi.RequiredExports))
	for _, name := range abi.RequiredExports {
		addr, err := dlSym(handle, name)
		if err != nil || addr == 0 {
			dlClose(handle)
			return nil, &LoadError{Path: path, Err: fmt.Errorf("missing export %s", name)}
		}
		syms[name] = addr
	}

	slot := abi.Calloc(abi.PluginInfoSize)
	if slot == 0 {
		dlClose(handle)
		return nil, &LoadError{Path: path, Err: errors.New("allocate plugin info slot")}
	}
	defer abi.Free(slot)

	if rc := callInit(syms[abi.ExportInit], callbacks, slot); rc != 0 {
		dlClose(handle)
		return nil, &LoadError{Path: path, Err: fmt.Errorf("plugin_init returned %d", rc)}
	}

	p := &LoadedPlugin{
		handle:      handle,
		callCommand: syms[abi.ExportCallCommand],
		destroy:     syms[abi.ExportDestroy],
		freeString:  syms[abi.ExportFreeString],
		path:        path,
		fingerprint: fingerprint,
	}
	p.info = consumeInfo(abi.ReadRawPluginInfo(slot), p.freeString)

	if p.info.Name == "" {
		p.Close()
		return nil, &LoadError{Path: path, Err: errors.New("plugin reported an empty name")}
	}
	return p, nil
}

// consumeInfo copies the reported identity into host memory and releases
// every plugin-owned pointer through the plugin's free export.
func consumeInfo(raw abi.RawPluginInfo, freeString uintptr) Info {
	var info Info
	if raw.Name != 0 {
		info.Name = abi.GoString(raw.Name)
		pluginFree(freeString, raw.Name)
	}
	if raw.Version != 0 {
		info.Version = abi.GoString(raw.Version)
		pluginFree(freeString, raw.Version)
	}
	for _, p := range raw.CommandPointers() {
		if p == 0 {
			continue
		}
		info.Commands = append(info.Commands, abi.GoString(p))
		pluginFree(freeString, p)
	}
	if raw.Commands != 0 {
		pluginFree(freeString, raw.Commands)
	}
	return info
}

func pluginFree(freeString, ptr uintptr) {
	purego.SyscallN(freeString, ptr)
}

// CallCommand invokes plugin_call_command. The returned string is copied into
// host memory and the plugin-owned result is released before returning. On a
// nonzero status the out string, if any, carries the plugin's error message.
func (p *LoadedPlugin) CallCommand(cmd, widgetID, payload string) (string, error) {
	cCmd, err := abi.CString(cmd)
	if err != nil {
		return "", fmt.Errorf("command name: %w", err)
	}
	defer abi.Free(cCmd)
	cWid, err := abi.CString(widgetID)
	if err != nil {
		return "", fmt.Errorf("widget id: %w", err)
	}
	defer abi.Free(cWid)
	cPay, err := abi.CString(payload)
	if err != nil {
		return "", fmt.Errorf("payload: %w", err)
	}
	defer abi.Free(cPay)

	cell := abi.AllocPointerCell()
	if cell == 0 {
		return "", errors.New("allocate result slot")
	}
	defer abi.Free(cell)

	rc, _, _ := purego.SyscallN(p.callCommand, cCmd, cWid, cPay, cell)

	var result string
	if out := abi.ReadPointerCell(cell); out != 0 {
		result = abi.GoString(out)
		pluginFree(p.freeString, out)
	}
	if int32(rc) != 0 {
		if result == "" {
			result = fmt.Sprintf("command failed with code %d", int32(rc))
		}
		return "", errors.New(result)
	}
	return result, nil
}

// Close runs plugin_destroy and then unloads the library. It must be called
// exactly once, after the last command call has returned.
func (p *LoadedPlugin) Close() error {
	if p.destroy != 0 {
		purego.SyscallN(p.destroy)
	}
	if p.handle != 0 {
		return dlClose(p.handle)
	}
	return nil
}

// Info returns the identity the plugin reported at init.
func (p *LoadedPlugin) Info() Info { return p.info }

// Path returns the library path the plugin was loaded from.
func (p *LoadedPlugin) Path() string { return p.path }

// Fingerprint returns the BLAKE3 hex digest of the library file.
func (p *LoadedPlugin) Fingerprint() string { return p.fingerprint }

// IsValidPluginPath reports whether path carries the dynamic library
// extension for the current platform. It is an advisory filter for directory
// scans; Load itself accepts any path the linker accepts.
func IsValidPluginPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch runtime.GOOS {
	case "windows":
		return ext == ".dll"
	case "darwin":
		return ext == ".dylib"
	default:
		return ext == ".so"
	}
}

package abi

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// Names of the exports every plugin library must provide.
const (
	ExportInit        = "plugin_init"
	ExportCallCommand = "plugin_call_command"
	ExportDestroy     = "plugin_destroy"
	ExportFreeString  = "plugin_free_string"
)

// RequiredExports lists the four mandatory exports in resolution order.
var RequiredExports = []string{ExportInit, ExportCallCommand, ExportDestroy, ExportFreeString}

// Plugin ABI log levels. Values outside the range are treated as info by the
// host sink.
const (
	LevelError int32 = 0
	LevelWarn  int32 = 1
	LevelInfo  int32 = 2
	LevelDebug int32 = 3
	LevelTrace int32 = 4
)

// callbackFailure is the register value a callback returns on error; the
// callee reads it as int32 -1.
const callbackFailure = ^uintptr(0)

// EngineCallbacks is the pair of function pointers handed to every plugin at
// init time. The struct is two pointer-sized words; on System V amd64 and on
// arm64 it is passed by value in two registers, which is why the loader can
// spread the fields as two plain arguments. It is immutable once built and
// freely copied to every plugin.
type EngineCallbacks struct {
	// WidgetDir has C signature int32 (*)(const char* widget_id, char** path_out).
	WidgetDir uintptr
	// Log has C signature void (*)(int32_t level, const char* message).
	Log uintptr
}

// WidgetDirFunc resolves a widget id to an absolute directory path.
type WidgetDirFunc func(widgetID string) (string, error)

// LogFunc receives a plugin log line with its ABI level.
type LogFunc func(level int32, message string)

// NewEngineCallbacks builds the callback table from host functions. The
// returned value must be constructed once per process and copied into every
// plugin; the underlying trampolines are never released.
//
// The widget_dir callback writes a malloc'd, null-terminated UTF-8 path into
// path_out on success and returns 0; any resolver error, null argument, or
// unrepresentable path yields -1 and leaves path_out untouched. The log
// callback never fails; null messages are ignored.
func NewEngineCallbacks(widgetDir WidgetDirFunc, logFn LogFunc) EngineCallbacks {
	wd := purego.NewCallback(func(widgetID, pathOut uintptr) uintptr {
		if widgetID == 0 || pathOut == 0 {
			return callbackFailure
		}
		dir, err := widgetDir(GoString(widgetID))
		if err != nil {
			return callbackFailure
		}
		cs, err := CString(dir)
		if err != nil {
			return callbackFailure
		}
		*(*uintptr)(unsafe.Pointer(pathOut)) = cs
		return 0
	})

	lg := purego.NewCallback(func(level, message uintptr) uintptr {
		if message != 0 {
			logFn(int32(level), GoString(message))
		}
		return 0
	})

	return EngineCallbacks{WidgetDir: wd, Log: lg}
}

// RawPluginInfo mirrors the C layout of the init out-slot:
//
//	struct { char* name; char* version; char** commands; size_t num_commands; }
//
// Every non-null pointer in it is plugin-owned and must be released through
// the plugin's plugin_free_string export after copying.
type RawPluginInfo struct {
	Name        uintptr
	Version     uintptr
	Commands    uintptr
	NumCommands uintptr
}

// PluginInfoSize is the byte size of the init out-slot.
const PluginInfoSize = unsafe.Sizeof(RawPluginInfo{})

// ReadRawPluginInfo interprets slot as a plugin_info struct.
func ReadRawPluginInfo(slot uintptr) RawPluginInfo {
	return *(*RawPluginInfo)(unsafe.Pointer(slot))
}

// CommandPointers returns the num_commands char* entries of the info's
// command array.
func (r RawPluginInfo) CommandPointers() []uintptr {
	if r.Commands == 0 || r.NumCommands == 0 {
		return nil
	}
	out := make([]uintptr, r.NumCommands)
	copy(out, unsafe.Slice((*uintptr)(unsafe.Pointer(r.Commands)), r.NumCommands))
	return out
}

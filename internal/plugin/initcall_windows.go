//go:build windows

package plugin

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/deskulpt-apps/deskulpt/internal/plugin/abi"
)

// callInit invokes plugin_init. Win64 passes structs larger than eight bytes
// by reference, so the callback table goes across as a pointer.
func callInit(initFn uintptr, cb abi.EngineCallbacks, infoSlot uintptr) int32 {
	r, _, _ := purego.SyscallN(initFn, uintptr(unsafe.Pointer(&cb)), infoSlot)
	runtime.KeepAlive(&cb)
	return int32(r)
}

//go:build darwin || freebsd || linux

package plugin

import (
	"github.com/ebitengine/purego"

	"github.com/deskulpt-apps/deskulpt/internal/plugin/abi"
)

// callInit invokes plugin_init. The callback table is two pointer-sized
// fields, which System V amd64 and AAPCS64 pass by value in registers, so the
// fields spread as two plain arguments.
func callInit(initFn uintptr, cb abi.EngineCallbacks, infoSlot uintptr) int32 {
	r, _, _ := purego.SyscallN(initFn, cb.WidgetDir, cb.Log, infoSlot)
	return int32(r)
}

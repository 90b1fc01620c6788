//go:build windows

package abi

import "golang.org/x/sys/windows"

// On Windows the host free path is the UCRT allocator; plugins built against
// the same runtime release host strings with free as on Unix.
var (
	ucrt       = windows.NewLazySystemDLL("ucrtbase.dll")
	procMalloc = ucrt.NewProc("malloc")
	procCalloc = ucrt.NewProc("calloc")
	procFree   = ucrt.NewProc("free")
)

// Malloc allocates n bytes on the C heap.
func Malloc(n uintptr) uintptr {
	r, _, _ := procMalloc.Call(n)
	return r
}

// Calloc allocates n zeroed bytes on the C heap.
func Calloc(n uintptr) uintptr {
	r, _, _ := procCalloc.Call(1, n)
	return r
}

// Free releases a C heap allocation made by the host. It must never be used
// on plugin-produced memory; that goes through the plugin's free export.
func Free(p uintptr) {
	if p == 0 {
		return
	}
	procFree.Call(p)
}

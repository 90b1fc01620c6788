//go:build darwin || freebsd || linux

package abi

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"
)

// The host free path is the process C allocator. Binding it through the
// default dynamic namespace avoids a cgo dependency in the host binary.
var (
	cmemOnce   sync.Once
	mallocAddr uintptr
	callocAddr uintptr
	freeAddr   uintptr
)

func cmemInit() {
	cmemOnce.Do(func() {
		var err error
		if mallocAddr, err = purego.Dlsym(purego.RTLD_DEFAULT, "malloc"); err != nil {
			panic(fmt.Sprintf("abi: resolve malloc: %v", err))
		}
		if callocAddr, err = purego.Dlsym(purego.RTLD_DEFAULT, "calloc"); err != nil {
			panic(fmt.Sprintf("abi: resolve calloc: %v", err))
		}
		if freeAddr, err = purego.Dlsym(purego.RTLD_DEFAULT, "free"); err != nil {
			panic(fmt.Sprintf("abi: resolve free: %v", err))
		}
	})
}

// Malloc allocates n bytes on the C heap.
func Malloc(n uintptr) uintptr {
	cmemInit()
	r, _, _ := purego.SyscallN(mallocAddr, n)
	return r
}

// Calloc allocates n zeroed bytes on the C heap.
func Calloc(n uintptr) uintptr {
	cmemInit()
	r, _, _ := purego.SyscallN(callocAddr, 1, n)
	return r
}

// Free releases a C heap allocation made by the host. It must never be used
// on plugin-produced memory; that goes through the plugin's free export.
func Free(p uintptr) {
	if p == 0 {
		return
	}
	cmemInit()
	purego.SyscallN(freeAddr, p)
}

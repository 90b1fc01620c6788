package sdk

/*
#include <stdlib.h>
#include "deskulpt_plugin.h"
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// The four exports the host resolves. Panics never cross the C boundary;
// every shim recovers and reports -1 instead.

//export plugin_init
func plugin_init(cb C.deskulpt_engine_callbacks, out *C.deskulpt_plugin_info) (rc C.int32_t) {
	defer func() {
		if recover() != nil {
			rc = -1
		}
	}()
	if out == nil {
		return -1
	}

	eng := newFFIEngine(unsafe.Pointer(cb.widget_dir), unsafe.Pointer(cb.log))
	r, err := initActive(eng)
	if err != nil {
		eng.LogError(fmt.Sprintf("plugin init failed: %v", err))
		return -1
	}

	out.name = C.CString(r.name)
	out.version = C.CString(r.version)
	out.commands = nil
	out.num_commands = 0
	if n := len(r.order); n > 0 {
		arr := (**C.char)(C.malloc(C.size_t(n) * C.size_t(unsafe.Sizeof(uintptr(0)))))
		cmds := unsafe.Slice(arr, n)
		for i, name := range r.order {
			cmds[i] = C.CString(name)
		}
		out.commands = arr
		out.num_commands = C.size_t(n)
	}
	return 0
}

//export plugin_call_command
func plugin_call_command(cmd, widgetID, payload *C.char, out **C.char) (rc C.int32_t) {
	defer func() {
		if r := recover(); r != nil {
			if out != nil {
				*out = C.CString(fmt.Sprintf("command panicked: %v", r))
			}
			rc = -1
		}
	}()
	if cmd == nil || widgetID == nil || payload == nil || out == nil {
		return -1
	}

	result, err := dispatchActive(C.GoString(cmd), C.GoString(widgetID), C.GoString(payload))
	if err != nil {
		*out = C.CString(err.Error())
		return -1
	}
	*out = C.CString(result)
	return 0
}

//export plugin_destroy
func plugin_destroy() {
	defer func() { _ = recover() }()
	destroyActive()
}

//export plugin_free_string
func plugin_free_string(s *C.char) {
	C.free(unsafe.Pointer(s))
}

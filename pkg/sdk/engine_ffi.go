package sdk

/*
#include <stdlib.h>
#include "deskulpt_plugin.h"

// Function pointers received from the host cannot be called directly from
// Go, so these thin bridges do the indirect call in C.
static int32_t deskulpt_bridge_widget_dir(deskulpt_widget_dir_fn fn, const char* id, char** out) {
	return fn(id, out);
}

static void deskulpt_bridge_log(deskulpt_log_fn fn, int32_t level, const char* msg) {
	fn(level, msg);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"
)

// ffiBackend drives the host's callback table across the C boundary.
type ffiBackend struct {
	widgetDirFn unsafe.Pointer
	logFn       unsafe.Pointer
}

// newFFIEngine wraps the raw callback pointers taken from the init struct.
func newFFIEngine(widgetDirFn, logFn unsafe.Pointer) *EngineInterface {
	return &EngineInterface{backend: &ffiBackend{widgetDirFn: widgetDirFn, logFn: logFn}}
}

func (b *ffiBackend) widgetDir(widgetID string) (string, error) {
	if b.widgetDirFn == nil {
		return "", &CallbackError{Op: "widget_dir", Err: errors.New("host provided a null callback")}
	}
	if strings.IndexByte(widgetID, 0) >= 0 {
		return "", &CallbackError{Op: "widget_dir", Err: errors.New("widget id contains a NUL byte")}
	}

	cid := C.CString(widgetID)
	defer C.free(unsafe.Pointer(cid))

	var out *C.char
	rc := C.deskulpt_bridge_widget_dir(C.deskulpt_widget_dir_fn(b.widgetDirFn), cid, &out)
	if rc != 0 {
		return "", &CallbackError{Op: "widget_dir", Err: fmt.Errorf("host returned %d", int32(rc))}
	}
	if out == nil {
		return "", &CallbackError{Op: "widget_dir", Err: errors.New("host returned a null path")}
	}
	// Host strings are malloc'd by the host and owed back to libc free.
	defer C.free(unsafe.Pointer(out))
	return C.GoString(out), nil
}

func (b *ffiBackend) log(level LogLevel, message string) {
	if b.logFn == nil {
		return
	}
	// A message that cannot cross as a C string is dropped; logging never
	// fails.
	if strings.IndexByte(message, 0) >= 0 {
		return
	}
	msg := C.CString(message)
	defer C.free(unsafe.Pointer(msg))
	C.deskulpt_bridge_log(C.deskulpt_log_fn(b.logFn), C.int32_t(level), msg)
}

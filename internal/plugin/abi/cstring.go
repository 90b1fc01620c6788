package abi

import (
	"errors"
	"strings"
	"unsafe"
)

// ErrNulByte is returned when a Go string cannot be represented as a C string.
var ErrNulByte = errors.New("string contains an embedded NUL byte")

// GoString copies a null-terminated UTF-8 C string into a Go string.
// A null pointer yields the empty string.
func GoString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Pointer(ptr + uintptr(n))) != 0 {
		n++
	}
	if n == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n))
}

// CString copies s into a malloc'd, null-terminated buffer. The caller owns
// the allocation and releases it with Free (or hands it to a consumer that
// frees through the host path).
func CString(s string) (uintptr, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return 0, ErrNulByte
	}
	p := Malloc(uintptr(len(s)) + 1)
	if p == 0 {
		return 0, errors.New("malloc failed")
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(p)), len(s)+1)
	copy(buf, s)
	buf[len(s)] = 0
	return p, nil
}

// AllocPointerCell allocates a zeroed pointer-sized out-parameter cell.
func AllocPointerCell() uintptr {
	return Calloc(unsafe.Sizeof(uintptr(0)))
}

// ReadPointerCell dereferences a pointer cell previously passed as an
// out-parameter.
func ReadPointerCell(cell uintptr) uintptr {
	return *(*uintptr)(unsafe.Pointer(cell))
}

// Package abi defines the host side of the C ABI that Deskulpt plugins must
// implement, along with the helpers needed to marshal values across it.
//
// A plugin is a dynamic library exporting exactly four symbols:
//
//	plugin_init(engine_callbacks, plugin_info* out) -> int32
//	plugin_call_command(cmd*, widget_id*, payload*, char** out) -> int32
//	plugin_destroy()
//	plugin_free_string(char*)
//
// All strings crossing the boundary are null-terminated UTF-8. Ownership
// follows one rule: the producer allocates, and the consumer releases through
// the producer's designated free function, exactly once. Memory produced by
// the plugin (command results, the strings and array populated into the init
// out-slot) is released through the plugin's plugin_free_string export.
// Memory produced by the host (widget directory paths handed to callbacks)
// is allocated with libc malloc and released by the plugin with libc free.
// The two free paths must never be mixed.
//
// Borrowed inputs (command name, widget id, payload) are valid only for the
// duration of the call and must not be retained by the callee.
package abi

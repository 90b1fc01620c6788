// Package plugin loads and manages Deskulpt's native plugins.
//
// A plugin is a dynamic library implementing the C ABI described in the abi
// subpackage. The loader (Load, LoadedPlugin) handles one library: resolving
// exports, running init, marshaling command calls, and the destroy/unload
// sequence. The Manager sits above it, owning the set of resident plugins and
// the global command namespace, and is the only type the rest of the host
// talks to.
//
// Lifecycle invariants the package upholds:
//
//   - plugin_init runs exactly once per load, before any command call.
//   - plugin_destroy runs exactly once, after the last command call returns,
//     and only for plugins whose init succeeded.
//   - A load rejected for a name or command conflict leaves the existing
//     registry byte-for-byte intact.
package plugin

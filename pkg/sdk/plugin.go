package sdk

// Plugin is the root interface a native plugin implements. Name must be
// unique among the plugins a host loads; Commands is consulted once, at init.
type Plugin interface {
	Name() string
	Commands() []Command
}

// Versioner is optionally implemented by plugins that report an explicit
// version. Plugins without it report the main module version from build info.
type Versioner interface {
	Version() string
}

// Command is a single named operation a plugin exposes. Run receives the
// calling widget's id, the engine for host callbacks, and the raw JSON
// payload; it returns the JSON result. Run may be called from any thread,
// one call at a time per host dispatch.
type Command interface {
	Name() string
	Run(widgetID string, engine *EngineInterface, payload string) (string, error)
}

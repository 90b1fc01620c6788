package sdk

// LogLevel is the severity a plugin attaches to a log line. The host maps
// levels outside the defined range to info.
type LogLevel int32

const (
	LevelError LogLevel = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// engineBackend is the transport behind an EngineInterface: the FFI callback
// table inside a real host, or plain functions in tests.
type engineBackend interface {
	widgetDir(widgetID string) (string, error)
	log(level LogLevel, message string)
}

// EngineInterface is a plugin's handle to the host. It is valid from init
// until destroy and safe for concurrent use.
type EngineInterface struct {
	backend engineBackend
}

// WidgetDir resolves a widget id to its absolute directory on the host.
func (e *EngineInterface) WidgetDir(widgetID string) (string, error) {
	return e.backend.widgetDir(widgetID)
}

// Log sends a log line to the host's logging pipeline.
func (e *EngineInterface) Log(level LogLevel, message string) {
	e.backend.log(level, message)
}

func (e *EngineInterface) LogError(message string) { e.Log(LevelError, message) }
func (e *EngineInterface) LogWarn(message string)  { e.Log(LevelWarn, message) }
func (e *EngineInterface) LogInfo(message string)  { e.Log(LevelInfo, message) }
func (e *EngineInterface) LogDebug(message string) { e.Log(LevelDebug, message) }
func (e *EngineInterface) LogTrace(message string) { e.Log(LevelTrace, message) }

// funcBackend adapts plain Go functions, for in-process use.
type funcBackend struct {
	widgetDirFn func(widgetID string) (string, error)
	logFn       func(level LogLevel, message string)
}

func (b *funcBackend) widgetDir(widgetID string) (string, error) {
	if b.widgetDirFn == nil {
		return "", &CallbackError{Op: "widget_dir", Err: errNoResolver}
	}
	return b.widgetDirFn(widgetID)
}

func (b *funcBackend) log(level LogLevel, message string) {
	if b.logFn != nil {
		b.logFn(level, message)
	}
}

// NewEngine builds an EngineInterface from plain functions. It is intended
// for tests and for driving plugins in-process; either function may be nil.
func NewEngine(widgetDir func(widgetID string) (string, error), logFn func(level LogLevel, message string)) *EngineInterface {
	return &EngineInterface{backend: &funcBackend{widgetDirFn: widgetDir, logFn: logFn}}
}

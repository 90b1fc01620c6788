package sdk

// CallPlugin invokes one of p's commands entirely in-process, without the C
// boundary. It resolves p fresh on every call, so authoring errors such as
// duplicate command names surface here exactly as they would at plugin init.
// A nil engine gets a no-op engine whose widget resolution always fails.
//
// It exists for plugin unit tests.
func CallPlugin(p Plugin, command, widgetID string, engine *EngineInterface, payload string) (string, error) {
	r, err := newRegistry(p)
	if err != nil {
		return "", err
	}
	if engine == nil {
		engine = NewEngine(nil, nil)
	}
	return r.dispatch(command, widgetID, engine, payload)
}

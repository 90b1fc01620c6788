// Package sdk is the authoring kit for Deskulpt native plugins.
//
// A plugin is an ordinary Go main package built with -buildmode=c-shared.
// It implements the Plugin interface, registers itself once, and the sdk
// provides the four C exports the host expects:
//
//	type clock struct{}
//
//	func (clock) Name() string { return "clock" }
//
//	func (clock) Commands() []sdk.Command {
//		return []sdk.Command{
//			sdk.NewTyped("get_time", func(widgetID string, engine *sdk.EngineInterface, in struct{}) (string, error) {
//				return time.Now().Format(time.RFC3339), nil
//			}),
//		}
//	}
//
//	func init() { sdk.Register(clock{}) }
//
//	func main() {} // required by c-shared, never runs
//
// Commands receive the calling widget's id, an EngineInterface for host
// callbacks (widget directory resolution, logging), and a JSON payload.
// NewTyped wraps a strongly typed function with JSON marshaling on both
// sides; an empty or whitespace payload decodes as JSON null.
//
// CallPlugin drives a Plugin entirely in-process, so command logic can be
// unit tested without building a shared library.
package sdk

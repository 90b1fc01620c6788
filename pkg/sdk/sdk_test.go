package sdk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type mathPlugin struct{}

func (mathPlugin) Name() string    { return "math" }
func (mathPlugin) Version() string { return "1.0.0" }

func (mathPlugin) Commands() []Command {
	type doubleIn struct {
		Value int `json:"value"`
	}
	type doubleOut struct {
		Doubled int `json:"doubled"`
	}
	return []Command{
		NewTyped("double", func(widgetID string, engine *EngineInterface, in doubleIn) (doubleOut, error) {
			return doubleOut{Doubled: in.Value * 2}, nil
		}),
		NewTyped("whoami", func(widgetID string, engine *EngineInterface, in *struct{}) (string, error) {
			return widgetID, nil
		}),
		NewTyped("where", func(widgetID string, engine *EngineInterface, in *struct{}) (string, error) {
			return engine.WidgetDir(widgetID)
		}),
	}
}

func TestCallPluginTyped(t *testing.T) {
	out, err := CallPlugin(mathPlugin{}, "double", "w1", nil, `{"value":5}`)
	require.NoError(t, err)
	assert.Equal(t, int64(10), gjson.Get(out, "doubled").Int())
}

func TestTypedEmptyPayloadIsNull(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "empty", payload: ""},
		{name: "whitespace", payload: "  \n\t "},
		{name: "explicit null", payload: "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := CallPlugin(mathPlugin{}, "double", "w1", nil, tt.payload)
			require.NoError(t, err)
			assert.Equal(t, int64(0), gjson.Get(out, "doubled").Int(), "null decodes to the zero value")
		})
	}
}

func TestTypedBadPayload(t *testing.T) {
	_, err := CallPlugin(mathPlugin{}, "double", "w1", nil, `{"value":"five"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode payload")
}

func TestCallPluginUnknownCommand(t *testing.T) {
	_, err := CallPlugin(mathPlugin{}, "triple", "w1", nil, "null")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no command "triple"`)
}

func TestCommandSeesWidgetID(t *testing.T) {
	out, err := CallPlugin(mathPlugin{}, "whoami", "widget-42", nil, "")
	require.NoError(t, err)
	assert.Equal(t, `"widget-42"`, out)
}

func TestEngineWidgetDir(t *testing.T) {
	eng := NewEngine(func(widgetID string) (string, error) {
		if widgetID == "clock" {
			return "/widgets/clock", nil
		}
		return "", errors.New("unknown widget")
	}, nil)

	out, err := CallPlugin(mathPlugin{}, "where", "clock", eng, "")
	require.NoError(t, err)
	assert.Equal(t, `"/widgets/clock"`, out)

	_, err = CallPlugin(mathPlugin{}, "where", "ghost", eng, "")
	assert.Error(t, err)
}

func TestEngineWithoutResolver(t *testing.T) {
	_, err := CallPlugin(mathPlugin{}, "where", "clock", nil, "")
	var cbErr *CallbackError
	require.ErrorAs(t, err, &cbErr)
	assert.Equal(t, "widget_dir", cbErr.Op)
}

func TestEngineLogLevels(t *testing.T) {
	type entry struct {
		level LogLevel
		msg   string
	}
	var got []entry
	eng := NewEngine(nil, func(level LogLevel, message string) {
		got = append(got, entry{level, message})
	})

	eng.LogError("e")
	eng.LogWarn("w")
	eng.LogInfo("i")
	eng.LogDebug("d")
	eng.LogTrace("t")

	require.Len(t, got, 5)
	assert.Equal(t, entry{LevelError, "e"}, got[0])
	assert.Equal(t, entry{LevelTrace, "t"}, got[4])
}

type brokenPlugin struct {
	name     string
	commands []Command
}

func (p brokenPlugin) Name() string        { return p.name }
func (p brokenPlugin) Commands() []Command { return p.commands }

func TestRegistryRejectsBadPlugins(t *testing.T) {
	noop := NewTyped("tick", func(string, *EngineInterface, *struct{}) (*struct{}, error) {
		return nil, nil
	})

	tests := []struct {
		name    string
		plugin  Plugin
		wantErr string
	}{
		{
			name:    "empty plugin name",
			plugin:  brokenPlugin{name: "", commands: []Command{noop}},
			wantErr: "empty name",
		},
		{
			name: "duplicate command",
			plugin: brokenPlugin{name: "dupe", commands: []Command{
				NewTyped("tick", func(string, *EngineInterface, *struct{}) (int, error) { return 1, nil }),
				NewTyped("tick", func(string, *EngineInterface, *struct{}) (int, error) { return 2, nil }),
			}},
			wantErr: `command "tick" twice`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newRegistry(tt.plugin)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPluginVersion(t *testing.T) {
	assert.Equal(t, "1.0.0", pluginVersion(mathPlugin{}))
}

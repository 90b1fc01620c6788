//go:build darwin || freebsd || linux

package plugin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// newTestManager wires a Manager to a stub loader so no real libraries are
// opened.
func newTestManager(stub *stubLoader) *Manager {
	m := NewManager(noopCallbacks())
	m.loadFn = stub.load
	return m
}

func sysFake() (*fakePlugin, *LoadedPlugin) {
	fake := &fakePlugin{commands: map[string]commandFunc{
		"get_system_info": func(widgetID, payload string) (string, error) {
			return `{"hostName":"box","widget":"` + widgetID + `"}`, nil
		},
	}}
	return fake, fake.loaded("sys", "1.2.0", "/plugins/sys.so", []string{"get_system_info"})
}

func TestLoadPluginRegistersCommands(t *testing.T) {
	_, lp := sysFake()
	m := newTestManager(&stubLoader{plugins: map[string]*LoadedPlugin{"/plugins/sys.so": lp}})

	rec, err := m.LoadPlugin("/plugins/sys.so")
	require.NoError(t, err)
	assert.Equal(t, "sys", rec.Name)
	assert.Equal(t, "1.2.0", rec.Version)
	assert.Equal(t, []string{"get_system_info"}, rec.Commands)
	assert.Equal(t, "/plugins/sys.so", rec.Path)
	assert.NotEmpty(t, rec.Fingerprint)

	out, err := m.CallCommand("get_system_info", "w1", "null")
	require.NoError(t, err)
	assert.Equal(t, "box", gjson.GetBytes(out, "hostName").String())
	assert.Equal(t, "w1", gjson.GetBytes(out, "widget").String())
}

func TestLoadPluginNameConflict(t *testing.T) {
	_, first := sysFake()
	dupFake := &fakePlugin{}
	dup := dupFake.loaded("sys", "9.0.0", "/plugins/sys-copy.so", []string{"other_command"})

	m := newTestManager(&stubLoader{plugins: map[string]*LoadedPlugin{
		"/plugins/sys.so":      first,
		"/plugins/sys-copy.so": dup,
	}})

	_, err := m.LoadPlugin("/plugins/sys.so")
	require.NoError(t, err)

	_, err = m.LoadPlugin("/plugins/sys-copy.so")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "sys", conflict.Plugin)
	assert.Empty(t, conflict.Command)

	assert.True(t, dupFake.destroyed.Load(), "rejected library is destroyed")

	// Existing registration is untouched.
	rec, err := m.Plugin("sys")
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", rec.Version)
	_, err = m.CallCommand("other_command", "w1", "null")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestLoadPluginCommandConflict(t *testing.T) {
	_, first := sysFake()
	otherFake := &fakePlugin{}
	other := otherFake.loaded("sys2", "0.1.0", "/plugins/sys2.so",
		[]string{"get_uptime", "get_system_info"})

	m := newTestManager(&stubLoader{plugins: map[string]*LoadedPlugin{
		"/plugins/sys.so":  first,
		"/plugins/sys2.so": other,
	}})

	_, err := m.LoadPlugin("/plugins/sys.so")
	require.NoError(t, err)

	_, err = m.LoadPlugin("/plugins/sys2.so")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "sys2", conflict.Plugin)
	assert.Equal(t, "get_system_info", conflict.Command)
	assert.True(t, otherFake.destroyed.Load())

	// None of the rejected plugin's commands leaked into the table.
	_, err = m.CallCommand("get_uptime", "w1", "null")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestLoadPluginDuplicateCommandWithinPlugin(t *testing.T) {
	fake := &fakePlugin{}
	lp := fake.loaded("dupe", "0.1.0", "/plugins/dupe.so", []string{"tick", "tick"})
	m := newTestManager(&stubLoader{plugins: map[string]*LoadedPlugin{"/plugins/dupe.so": lp}})

	_, err := m.LoadPlugin("/plugins/dupe.so")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "tick", conflict.Command)
}

func TestCallCommandErrors(t *testing.T) {
	fake := &fakePlugin{commands: map[string]commandFunc{
		"bad_json": func(string, string) (string, error) { return "{not json", nil },
		"explode":  func(string, string) (string, error) { return "", errors.New("sensor offline") },
	}}
	lp := fake.loaded("flaky", "0.0.1", "/plugins/flaky.so", []string{"bad_json", "explode"})
	m := newTestManager(&stubLoader{plugins: map[string]*LoadedPlugin{"/plugins/flaky.so": lp}})
	_, err := m.LoadPlugin("/plugins/flaky.so")
	require.NoError(t, err)

	t.Run("unknown command", func(t *testing.T) {
		_, err := m.CallCommand("missing", "w1", "null")
		assert.ErrorIs(t, err, ErrUnknownCommand)
		var de *DispatchError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "missing", de.Command)
	})

	t.Run("invalid json result", func(t *testing.T) {
		_, err := m.CallCommand("bad_json", "w1", "null")
		var de *DispatchError
		require.ErrorAs(t, err, &de)
		assert.Contains(t, de.Error(), "not valid JSON")
	})

	t.Run("plugin failure", func(t *testing.T) {
		_, err := m.CallCommand("explode", "w1", "null")
		var de *DispatchError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "flaky", de.Plugin)
		assert.Contains(t, de.Error(), "sensor offline")
	})
}

func TestUnloadPlugin(t *testing.T) {
	fake, lp := sysFake()
	m := newTestManager(&stubLoader{plugins: map[string]*LoadedPlugin{"/plugins/sys.so": lp}})
	_, err := m.LoadPlugin("/plugins/sys.so")
	require.NoError(t, err)

	require.NoError(t, m.UnloadPlugin("sys"))
	assert.True(t, fake.destroyed.Load())

	_, err = m.CallCommand("get_system_info", "w1", "null")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	_, err = m.Plugin("sys")
	assert.ErrorIs(t, err, ErrPluginNotFound)

	assert.ErrorIs(t, m.UnloadPlugin("sys"), ErrPluginNotFound)
}

func TestReloadPlugin(t *testing.T) {
	_, lp := sysFake()
	m := newTestManager(&stubLoader{plugins: map[string]*LoadedPlugin{"/plugins/sys.so": lp}})
	_, err := m.LoadPlugin("/plugins/sys.so")
	require.NoError(t, err)

	assert.ErrorIs(t, m.ReloadPlugin("sys"), ErrReloadUnsupported)
	assert.ErrorIs(t, m.ReloadPlugin("ghost"), ErrPluginNotFound)
}

func TestIntrospection(t *testing.T) {
	sysF := &fakePlugin{}
	clockF := &fakePlugin{}
	m := newTestManager(&stubLoader{plugins: map[string]*LoadedPlugin{
		"/plugins/sys.so":   sysF.loaded("sys", "1.2.0", "/plugins/sys.so", []string{"get_system_info", "get_uptime"}),
		"/plugins/clock.so": clockF.loaded("clock", "0.3.0", "/plugins/clock.so", []string{"get_time"}),
	}})
	_, err := m.LoadPlugin("/plugins/sys.so")
	require.NoError(t, err)
	_, err = m.LoadPlugin("/plugins/clock.so")
	require.NoError(t, err)

	assert.Equal(t, 2, m.PluginCount())
	assert.Equal(t, 3, m.CommandCount())
	assert.Equal(t, []string{"clock", "sys"}, m.PluginNames())
	assert.Equal(t, []string{"get_system_info", "get_time", "get_uptime"}, m.CommandNames())

	tests := []struct {
		name       string
		hasPlugin  string
		hasCommand string
		want       bool
	}{
		{name: "resident plugin", hasPlugin: "sys", want: true},
		{name: "absent plugin", hasPlugin: "ghost", want: false},
		{name: "command is not a plugin", hasPlugin: "get_time", want: false},
		{name: "registered command", hasCommand: "get_time", want: true},
		{name: "absent command", hasCommand: "get_weather", want: false},
		{name: "plugin is not a command", hasCommand: "clock", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.hasPlugin != "" {
				assert.Equal(t, tt.want, m.HasPlugin(tt.hasPlugin))
			} else {
				assert.Equal(t, tt.want, m.HasCommand(tt.hasCommand))
			}
		})
	}

	// Unload drops the plugin's commands from every view.
	require.NoError(t, m.UnloadPlugin("sys"))
	assert.Equal(t, 1, m.PluginCount())
	assert.Equal(t, 1, m.CommandCount())
	assert.Equal(t, []string{"get_time"}, m.CommandNames())
	assert.False(t, m.HasPlugin("sys"))
	assert.False(t, m.HasCommand("get_uptime"))
}

func TestPluginsSnapshotSorted(t *testing.T) {
	zFake := &fakePlugin{}
	aFake := &fakePlugin{}
	m := newTestManager(&stubLoader{plugins: map[string]*LoadedPlugin{
		"/plugins/zeta.so":  zFake.loaded("zeta", "1.0.0", "/plugins/zeta.so", []string{"z_cmd"}),
		"/plugins/alpha.so": aFake.loaded("alpha", "1.0.0", "/plugins/alpha.so", []string{"a_cmd"}),
	}})
	_, err := m.LoadPlugin("/plugins/zeta.so")
	require.NoError(t, err)
	_, err = m.LoadPlugin("/plugins/alpha.so")
	require.NoError(t, err)

	recs := m.Plugins()
	require.Len(t, recs, 2)
	assert.Equal(t, "alpha", recs[0].Name)
	assert.Equal(t, "zeta", recs[1].Name)
}

func TestLoadPluginsFromDir(t *testing.T) {
	dir := t.TempDir()
	okPath := filepath.Join(dir, "sys.so")
	badPath := filepath.Join(dir, "broken.so")
	worsePath := filepath.Join(dir, "worse.so")
	for _, p := range []string{okPath, badPath, worsePath} {
		require.NoError(t, os.WriteFile(p, []byte("stub"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir.so"), 0o755))

	_, lp := sysFake()
	m := newTestManager(&stubLoader{
		plugins: map[string]*LoadedPlugin{okPath: lp},
		errs: map[string]error{
			badPath:   &LoadError{Path: badPath, Err: errors.New("corrupt")},
			worsePath: &LoadError{Path: worsePath, Err: errors.New("missing export")},
		},
	})

	loaded, err := m.LoadPluginsFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"sys"}, loaded, "failures are skipped, not fatal")
	assert.Equal(t, 1, m.PluginCount(), "only the good plugin is resident")
}

func TestLoadPluginsFromDirMissing(t *testing.T) {
	m := newTestManager(&stubLoader{})
	_, err := m.LoadPluginsFromDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestManagerClose(t *testing.T) {
	aFake, aLP := sysFake()
	bFake := &fakePlugin{}
	bLP := bFake.loaded("other", "0.1.0", "/plugins/other.so", []string{"noop"})
	m := newTestManager(&stubLoader{plugins: map[string]*LoadedPlugin{
		"/plugins/sys.so":   aLP,
		"/plugins/other.so": bLP,
	}})
	_, err := m.LoadPlugin("/plugins/sys.so")
	require.NoError(t, err)
	_, err = m.LoadPlugin("/plugins/other.so")
	require.NoError(t, err)

	require.NoError(t, m.Close())
	assert.True(t, aFake.destroyed.Load())
	assert.True(t, bFake.destroyed.Load())
	assert.Empty(t, m.Plugins())
}

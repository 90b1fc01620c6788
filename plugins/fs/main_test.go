package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/deskulpt-apps/deskulpt/pkg/sdk"
)

func testEngine(t *testing.T) *sdk.EngineInterface {
	t.Helper()
	root := t.TempDir()
	return sdk.NewEngine(func(widgetID string) (string, error) {
		return filepath.Join(root, widgetID), nil
	}, nil)
}

func call(t *testing.T, eng *sdk.EngineInterface, command, payload string) string {
	t.Helper()
	out, err := sdk.CallPlugin(fsPlugin{}, command, "w1", eng, payload)
	require.NoError(t, err, "%s %s", command, payload)
	return out
}

func TestWriteReadRoundTrip(t *testing.T) {
	eng := testEngine(t)

	out := call(t, eng, "write_file", `{"path":"notes/today.txt","content":"hello"}`)
	assert.True(t, gjson.Get(out, "success").Bool())

	out = call(t, eng, "read_file", `{"path":"notes/today.txt"}`)
	assert.Equal(t, "hello", gjson.Get(out, "content").String())
}

func TestAppendFile(t *testing.T) {
	eng := testEngine(t)

	call(t, eng, "append_file", `{"path":"log.txt","content":"one\n"}`)
	call(t, eng, "append_file", `{"path":"log.txt","content":"two\n"}`)

	out := call(t, eng, "read_file", `{"path":"log.txt"}`)
	assert.Equal(t, "one\ntwo\n", gjson.Get(out, "content").String())
}

func TestExistsIsDirIsFile(t *testing.T) {
	eng := testEngine(t)
	call(t, eng, "write_file", `{"path":"a/f.txt","content":"x"}`)
	call(t, eng, "create_dir", `{"path":"a/b"}`)

	cases := []struct {
		command string
		path    string
		field   string
		want    bool
	}{
		{"exists", "a/f.txt", "exists", true},
		{"exists", "a/b", "exists", true},
		{"exists", "missing", "exists", false},
		{"is_file", "a/f.txt", "is_file", true},
		{"is_file", "a/b", "is_file", false},
		{"is_file", "missing", "is_file", false},
		{"is_dir", "a/b", "is_dir", true},
		{"is_dir", "a/f.txt", "is_dir", false},
		{"is_dir", "missing", "is_dir", false},
	}
	for _, tc := range cases {
		out := call(t, eng, tc.command, fmt.Sprintf(`{"path":%q}`, tc.path))
		assert.Equal(t, tc.want, gjson.Get(out, tc.field).Bool(), "%s %s", tc.command, tc.path)
	}
}

func TestRemove(t *testing.T) {
	eng := testEngine(t)
	call(t, eng, "write_file", `{"path":"dir/f.txt","content":"x"}`)

	out := call(t, eng, "remove_file", `{"path":"dir/f.txt"}`)
	assert.True(t, gjson.Get(out, "success").Bool())
	out = call(t, eng, "exists", `{"path":"dir/f.txt"}`)
	assert.False(t, gjson.Get(out, "exists").Bool())

	// remove_dir deletes recursively.
	call(t, eng, "write_file", `{"path":"dir/nested/g.txt","content":"x"}`)
	out = call(t, eng, "remove_dir", `{"path":"dir"}`)
	assert.True(t, gjson.Get(out, "success").Bool())
	out = call(t, eng, "exists", `{"path":"dir"}`)
	assert.False(t, gjson.Get(out, "exists").Bool())
}

func TestRemoveFileErrors(t *testing.T) {
	eng := testEngine(t)

	_, err := sdk.CallPlugin(fsPlugin{}, "remove_file", "w1", eng, `{"path":"missing"}`)
	require.Error(t, err)

	_, err = sdk.CallPlugin(fsPlugin{}, "read_file", "w1", eng, `{"path":"missing"}`)
	require.Error(t, err)
	assert.ErrorContains(t, err, "read_file")
}

func TestPathsResolveInsideWidgetDir(t *testing.T) {
	root := t.TempDir()
	eng := sdk.NewEngine(func(widgetID string) (string, error) {
		return filepath.Join(root, widgetID), nil
	}, nil)

	call(t, eng, "write_file", `{"path":"f.txt","content":"mine"}`)

	data, err := os.ReadFile(filepath.Join(root, "w1", "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))
}

func TestPluginIdentity(t *testing.T) {
	p := fsPlugin{}
	assert.Equal(t, "fs", p.Name())
	assert.Equal(t, "0.2.0", p.Version())

	names := make([]string, 0, len(p.Commands()))
	for _, c := range p.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{
		"append_file", "create_dir", "exists", "is_dir", "is_file",
		"read_file", "remove_dir", "remove_file", "write_file",
	}, names)
}

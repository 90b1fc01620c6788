// The fs plugin gives widgets file system access inside their own widget
// directory. Build it with -buildmode=c-shared and drop the library into the
// plugins directory.
package main

import (
	"os"
	"path/filepath"

	"github.com/deskulpt-apps/deskulpt/pkg/sdk"
)

type fsPlugin struct{}

func (fsPlugin) Name() string    { return "fs" }
func (fsPlugin) Version() string { return "0.2.0" }

func (fsPlugin) Commands() []sdk.Command {
	return []sdk.Command{
		sdk.NewTyped("append_file", appendFile),
		sdk.NewTyped("create_dir", createDir),
		sdk.NewTyped("exists", exists),
		sdk.NewTyped("is_dir", isDir),
		sdk.NewTyped("is_file", isFile),
		sdk.NewTyped("read_file", readFile),
		sdk.NewTyped("remove_dir", removeDir),
		sdk.NewTyped("remove_file", removeFile),
		sdk.NewTyped("write_file", writeFile),
	}
}

type pathInput struct {
	Path string `json:"path"`
}

type writeInput struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type successOutput struct {
	Success bool `json:"success"`
}

// resolve joins a widget-relative path onto the widget's directory.
func resolve(widgetID string, engine *sdk.EngineInterface, rel string) (string, error) {
	dir, err := engine.WidgetDir(widgetID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, rel), nil
}

func exists(widgetID string, engine *sdk.EngineInterface, in pathInput) (struct {
	Exists bool `json:"exists"`
}, error) {
	var out struct {
		Exists bool `json:"exists"`
	}
	path, err := resolve(widgetID, engine, in.Path)
	if err != nil {
		return out, err
	}
	_, statErr := os.Stat(path)
	out.Exists = statErr == nil
	return out, nil
}

func isFile(widgetID string, engine *sdk.EngineInterface, in pathInput) (struct {
	IsFile bool `json:"is_file"`
}, error) {
	var out struct {
		IsFile bool `json:"is_file"`
	}
	path, err := resolve(widgetID, engine, in.Path)
	if err != nil {
		return out, err
	}
	if fi, statErr := os.Stat(path); statErr == nil {
		out.IsFile = fi.Mode().IsRegular()
	}
	return out, nil
}

func isDir(widgetID string, engine *sdk.EngineInterface, in pathInput) (struct {
	IsDir bool `json:"is_dir"`
}, error) {
	var out struct {
		IsDir bool `json:"is_dir"`
	}
	path, err := resolve(widgetID, engine, in.Path)
	if err != nil {
		return out, err
	}
	if fi, statErr := os.Stat(path); statErr == nil {
		out.IsDir = fi.IsDir()
	}
	return out, nil
}

func readFile(widgetID string, engine *sdk.EngineInterface, in pathInput) (struct {
	Content string `json:"content"`
}, error) {
	var out struct {
		Content string `json:"content"`
	}
	path, err := resolve(widgetID, engine, in.Path)
	if err != nil {
		return out, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return out, err
	}
	out.Content = string(data)
	return out, nil
}

func writeFile(widgetID string, engine *sdk.EngineInterface, in writeInput) (successOutput, error) {
	path, err := resolve(widgetID, engine, in.Path)
	if err != nil {
		return successOutput{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return successOutput{}, err
	}
	if err := os.WriteFile(path, []byte(in.Content), 0o644); err != nil {
		return successOutput{}, err
	}
	return successOutput{Success: true}, nil
}

func appendFile(widgetID string, engine *sdk.EngineInterface, in writeInput) (successOutput, error) {
	path, err := resolve(widgetID, engine, in.Path)
	if err != nil {
		return successOutput{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return successOutput{}, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return successOutput{}, err
	}
	defer f.Close()
	if _, err := f.WriteString(in.Content); err != nil {
		return successOutput{}, err
	}
	return successOutput{Success: true}, nil
}

func createDir(widgetID string, engine *sdk.EngineInterface, in pathInput) (successOutput, error) {
	path, err := resolve(widgetID, engine, in.Path)
	if err != nil {
		return successOutput{}, err
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return successOutput{}, err
	}
	return successOutput{Success: true}, nil
}

func removeFile(widgetID string, engine *sdk.EngineInterface, in pathInput) (successOutput, error) {
	path, err := resolve(widgetID, engine, in.Path)
	if err != nil {
		return successOutput{}, err
	}
	if err := os.Remove(path); err != nil {
		return successOutput{}, err
	}
	return successOutput{Success: true}, nil
}

func removeDir(widgetID string, engine *sdk.EngineInterface, in pathInput) (successOutput, error) {
	path, err := resolve(widgetID, engine, in.Path)
	if err != nil {
		return successOutput{}, err
	}
	if err := os.RemoveAll(path); err != nil {
		return successOutput{}, err
	}
	return successOutput{Success: true}, nil
}

func init() {
	sdk.Register(fsPlugin{})
}

// Required by -buildmode=c-shared; never runs.
func main() {}

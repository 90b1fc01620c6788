package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/tidwall/gjson"

	"github.com/deskulpt-apps/deskulpt/internal/api"
	"github.com/deskulpt-apps/deskulpt/internal/config"
	"github.com/deskulpt-apps/deskulpt/internal/log"
	"github.com/deskulpt-apps/deskulpt/internal/plugin"
	"github.com/deskulpt-apps/deskulpt/internal/plugin/abi"
	"github.com/deskulpt-apps/deskulpt/internal/settings"
	"github.com/deskulpt-apps/deskulpt/internal/widget"
)

const version = "0.2.0"

const defaultAddr = "http://127.0.0.1:8780"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "start":
		os.Exit(runStart(args))
	case "plugin":
		os.Exit(runPluginNoun(args))
	case "widget":
		os.Exit(runWidgetNoun(args))
	case "watch":
		os.Exit(runWatch(args))
	case "version":
		fmt.Printf("deskulpt version %s\n", version)
		os.Exit(0)
	case "help", "--help", "-h":
		printUsage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`deskulpt - desktop widget host with native plugins

Usage:
  deskulpt <command> [flags]

Commands:
  start             Run the host in the foreground
  plugin list       Show loaded plugins
  plugin call       Invoke a plugin command
  plugin unload     Unload a plugin by name
  widget list       Show installed widgets
  watch             Live plugin dashboard
  version           Show version information
  help              Show this help message

Use 'deskulpt <command> -h' for command-specific flags.
`)
}

// --- start ---

func runStart(args []string) int {
	fs := flag.NewFlagSet("start", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.yaml")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log.Setup(cfg.LogLevel)
	logger := log.WithComponent("host")
	logger.Info("deskulpt starting", "version", version)

	if err := os.MkdirAll(filepath.Dir(cfg.Database), 0o755); err != nil {
		logger.Error("failed to create data directory", "error", err)
		return 1
	}
	store, err := settings.Open(cfg.Database)
	if err != nil {
		logger.Error("failed to open settings store", "error", err)
		return 1
	}
	defer store.Close()

	catalog := widget.NewCatalog(cfg.WidgetsDir)
	if err := catalog.Rescan(); err != nil {
		logger.Warn("widget scan failed, starting with no widgets", "error", err)
	}

	callbacks := abi.NewEngineCallbacks(catalog.Dir, func(level int32, message string) {
		log.WithComponent("plugin").Log(context.Background(), log.PluginLevel(level), message)
	})
	mgr := plugin.NewManager(callbacks)
	defer mgr.Close()

	loaded, err := mgr.LoadPluginsFromDir(cfg.PluginsDir)
	if err != nil {
		logger.Warn("plugin scan failed, starting with no plugins", "error", err)
	} else {
		logger.Info("plugins loaded", "count", len(loaded), "plugins", strings.Join(loaded, ","))
	}

	server := api.New(api.Config{Listen: cfg.API.Listen}, mgr, mgr, catalog, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server exited", "error", err)
		return 1
	}
	logger.Info("deskulpt stopped")
	return 0
}

// loadConfig resolves the effective configuration: an explicit --config file,
// else ~/.deskulpt/config.yaml if present, else built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, ".deskulpt", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return config.Load(candidate)
		}
	}
	return config.Defaults(), nil
}

// --- plugin ---

func runPluginNoun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: deskulpt plugin <list|call|unload> [flags]")
		return 1
	}
	action := args[0]
	actionArgs := args[1:]

	switch action {
	case "list":
		return runPluginList(actionArgs)
	case "call":
		return runPluginCall(actionArgs)
	case "unload":
		return runPluginUnload(actionArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown plugin action: %s\n", action)
		return 1
	}
}

func runPluginList(args []string) int {
	fs := flag.NewFlagSet("plugin list", flag.ExitOnError)
	addr := fs.String("addr", defaultAddr, "host API address")
	fs.Parse(args)

	body, err := apiGet(*addr, "/v1/plugins")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	plugins := gjson.GetBytes(body, "plugins")
	if len(plugins.Array()) == 0 {
		fmt.Println("No plugins loaded.")
		return 0
	}
	fmt.Printf("%-16s %-10s %-8s %s\n", "NAME", "VERSION", "COMMANDS", "FINGERPRINT")
	plugins.ForEach(func(_, p gjson.Result) bool {
		fp := p.Get("fingerprint").String()
		if len(fp) > 12 {
			fp = fp[:12]
		}
		fmt.Printf("%-16s %-10s %-8d %s\n",
			p.Get("name").String(),
			p.Get("version").String(),
			len(p.Get("commands").Array()),
			fp)
		return true
	})
	return 0
}

func runPluginCall(args []string) int {
	fs := flag.NewFlagSet("plugin call", flag.ExitOnError)
	addr := fs.String("addr", defaultAddr, "host API address")
	widgetID := fs.String("widget", "", "calling widget id")
	payload := fs.String("payload", "", "JSON payload")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: deskulpt plugin call <command> [--widget id] [--payload json]")
		return 1
	}
	command := fs.Arg(0)

	req := map[string]any{"widgetId": *widgetID}
	if *payload != "" {
		req["payload"] = json.RawMessage(*payload)
	}
	reqBody, _ := json.Marshal(req)

	resp, err := http.Post(*addr+"/v1/commands/"+command, "application/json", strings.NewReader(string(reqBody)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Error: %s\n", gjson.GetBytes(body, "error").String())
		return 1
	}
	fmt.Println(gjson.GetBytes(body, "result").Raw)
	return 0
}

func runPluginUnload(args []string) int {
	fs := flag.NewFlagSet("plugin unload", flag.ExitOnError)
	addr := fs.String("addr", defaultAddr, "host API address")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: deskulpt plugin unload <name>")
		return 1
	}

	req, err := http.NewRequest(http.MethodDelete, *addr+"/v1/plugins/"+fs.Arg(0), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Error: %s\n", gjson.GetBytes(body, "error").String())
		return 1
	}
	fmt.Printf("Plugin %s unloaded.\n", fs.Arg(0))
	return 0
}

// --- widget ---

func runWidgetNoun(args []string) int {
	if len(args) < 1 || args[0] != "list" {
		fmt.Fprintln(os.Stderr, "Usage: deskulpt widget list [flags]")
		return 1
	}
	fs := flag.NewFlagSet("widget list", flag.ExitOnError)
	addr := fs.String("addr", defaultAddr, "host API address")
	fs.Parse(args[1:])

	body, err := apiGet(*addr, "/v1/widgets")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	widgets := gjson.GetBytes(body, "widgets")
	if len(widgets.Array()) == 0 {
		fmt.Println("No widgets installed.")
		return 0
	}
	fmt.Printf("%-16s %-24s %s\n", "ID", "NAME", "DIR")
	widgets.ForEach(func(_, w gjson.Result) bool {
		fmt.Printf("%-16s %-24s %s\n",
			w.Get("id").String(), w.Get("name").String(), w.Get("dir").String())
		return true
	})
	return 0
}

func apiGet(addr, path string) ([]byte, error) {
	resp, err := http.Get(addr + path)
	if err != nil {
		return nil, fmt.Errorf("is the host running? %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s", resp.Status, gjson.GetBytes(body, "error").String())
	}
	return body, nil
}

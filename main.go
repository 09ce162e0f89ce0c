package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/CrestNiraj12/terminalframes/app"
	"github.com/CrestNiraj12/terminalframes/frames"
	"github.com/CrestNiraj12/terminalframes/infra/auth"
	"github.com/CrestNiraj12/terminalframes/infra/catalog"
	"github.com/CrestNiraj12/terminalframes/infra/config"
	"github.com/CrestNiraj12/terminalframes/infra/logging"
	"github.com/CrestNiraj12/terminalframes/infra/player"
	"github.com/CrestNiraj12/terminalframes/infra/rest"
	"github.com/CrestNiraj12/terminalframes/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliImport
	cliInvalid
)

// parseCLIArgs returns the mode and, for cliImport, the file to import.
// For cliInvalid the second value is the error message.
func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	case "import":
		if len(args) != 2 || strings.TrimSpace(args[1]) == "" {
			return cliInvalid, "import needs exactly one file (use - for stdin)"
		}
		return cliImport, args[1]
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: terminalframes [--version|-version|-v] [--help|-h]\n" +
		"       terminalframes import <frames.json|->"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

// buildSource returns the page source for cfg and a closer for its resources.
func buildSource(cfg config.Config, logger log.Logger) (app.PageSource, io.Closer, error) {
	switch cfg.Source {
	case config.SourceCatalog:
		store, err := catalog.Open(cfg.CatalogPath, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		client := rest.NewClient(cfg.APIURL, auth.ProviderFor(cfg.TokenPath))
		return rest.NewPageService(client, logger), io.NopCloser(nil), nil
	}
}

func runImport(cfg config.Config, logger log.Logger, path string, stdout io.Writer) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	store, err := catalog.Open(cfg.CatalogPath, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	added, err := store.ImportJSON(context.Background(), r)
	if err != nil {
		return err
	}
	total, err := store.Count(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "imported %d new frames into %s (%d total)\n", added, cfg.CatalogPath, total)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code. Deferred cleanup has finished by the
// time it returns.
func run(args []string, stdout, stderr io.Writer) int {
	mode, arg := parseCLIArgs(args)
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Fprintf(stdout, "TerminalFrames %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return 0
	case cliHelp:
		fmt.Fprintln(stdout, usage())
		return 0
	case cliInvalid:
		fmt.Fprintf(stderr, "%s\n%s\n", arg, usage())
		return 2
	}

	// 1. Load config from environment, then remembered preferences.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	uiState, err := config.LoadUIState(cfg.UIStatePath)
	if err != nil {
		fmt.Fprintf(stderr, "ui state: %v (using defaults)\n", err)
	}
	cfg = cfg.ApplyUIState(uiState)

	// 2. Logging goes to a file; the terminal belongs to the TUI.
	logger, logCloser, err := logging.Open(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "log: %v\n", err)
		return 1
	}
	defer logCloser.Close()

	if mode == cliImport {
		if err := runImport(cfg, logger, arg, stdout); err != nil {
			fmt.Fprintf(stderr, "import: %v\n", err)
			return 1
		}
		return 0
	}

	// 3. Build infrastructure.
	source, sourceCloser, err := buildSource(cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "source: %v\n", err)
		return 1
	}
	defer sourceCloser.Close()

	screen := player.New(cfg.Autoplay, logger)
	ctrl := frames.NewController(source, screen, frames.Options{
		PageSize:  cfg.PageSize,
		Lookahead: cfg.Lookahead,
	}, logger)

	// 4. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Controller:     ctrl,
		Screen:         screen,
		ScrollInterval: cfg.ScrollInterval,
		Source:         cfg.Source,
		StatePath:      cfg.UIStatePath,
		Logger:         logger,
	})

	// 5. Run.
	log.NewHelper(logger).Infow("msg", "starting", "source", cfg.Source, "page_size", cfg.PageSize, "autoplay", cfg.Autoplay)
	p := tea.NewProgram(rootModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(stderr, "terminalframes: %v\n", err)
		return 1
	}
	return 0
}

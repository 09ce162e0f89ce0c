package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	SourceRemote  = "remote"
	SourceCatalog = "catalog"
)

// Config holds application-level configuration.
type Config struct {
	Source         string        // "remote" or "catalog"
	APIURL         string        // e.g. "https://frames.example.com"
	TokenPath      string        // Path to file containing the access token (optional)
	CatalogPath    string        // SQLite catalog used by the "catalog" source
	PageSize       int           // Items requested per page
	Lookahead      int           // Prefetch threshold in items
	ScrollInterval time.Duration // Minimum spacing of processed scroll samples
	Autoplay       bool
	LogPath        string
	LogLevel       string
	UIStatePath    string
}

// Load reads configuration from environment variables.
//
//	TERMINALFRAMES_SOURCE           "remote" (default) or "catalog"
//	TERMINALFRAMES_API_URL          Frames API base URL (https only)
//	TERMINALFRAMES_TOKEN            Path to token file (default: ~/.config/terminalframes/token)
//	TERMINALFRAMES_CATALOG          SQLite catalog path (default: ~/.config/terminalframes/catalog.db)
//	TERMINALFRAMES_PAGE_SIZE        Items per page (default: 10)
//	TERMINALFRAMES_LOOKAHEAD        Prefetch threshold (default: 3)
//	TERMINALFRAMES_SCROLL_INTERVAL  Scroll sample spacing (default: 80ms)
//	TERMINALFRAMES_AUTOPLAY         Start media when it becomes active (default: true)
//	TERMINALFRAMES_LOG              Log file (default: ~/.config/terminalframes/frames.log)
//	TERMINALFRAMES_LOG_LEVEL        debug, info, warn or error (default: info)
func Load() (Config, error) {
	dir := strings.TrimSpace(os.Getenv("TERMINALFRAMES_CONFIG_DIR"))
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config", "terminalframes")
	}

	source := strings.ToLower(strings.TrimSpace(os.Getenv("TERMINALFRAMES_SOURCE")))
	switch source {
	case "":
		source = SourceRemote
	case SourceRemote, SourceCatalog:
	default:
		return Config{}, fmt.Errorf("invalid TERMINALFRAMES_SOURCE %q: want remote or catalog", source)
	}

	apiURL, err := parseAPIURL(os.Getenv("TERMINALFRAMES_API_URL"))
	if err != nil {
		return Config{}, err
	}

	pageSize, err := positiveInt("TERMINALFRAMES_PAGE_SIZE", 10)
	if err != nil {
		return Config{}, err
	}
	lookahead, err := positiveInt("TERMINALFRAMES_LOOKAHEAD", 3)
	if err != nil {
		return Config{}, err
	}

	interval := 80 * time.Millisecond
	if raw := strings.TrimSpace(os.Getenv("TERMINALFRAMES_SCROLL_INTERVAL")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid TERMINALFRAMES_SCROLL_INTERVAL %q", raw)
		}
		interval = d
	}

	autoplay := true
	if raw := strings.TrimSpace(os.Getenv("TERMINALFRAMES_AUTOPLAY")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TERMINALFRAMES_AUTOPLAY %q", raw)
		}
		autoplay = b
	}

	logLevel := strings.ToLower(strings.TrimSpace(os.Getenv("TERMINALFRAMES_LOG_LEVEL")))
	if logLevel == "" {
		logLevel = "info"
	}

	return Config{
		Source:         source,
		APIURL:         apiURL,
		TokenPath:      envOr("TERMINALFRAMES_TOKEN", filepath.Join(dir, "token")),
		CatalogPath:    envOr("TERMINALFRAMES_CATALOG", filepath.Join(dir, "catalog.db")),
		PageSize:       pageSize,
		Lookahead:      lookahead,
		ScrollInterval: interval,
		Autoplay:       autoplay,
		LogPath:        envOr("TERMINALFRAMES_LOG", filepath.Join(dir, "frames.log")),
		LogLevel:       logLevel,
		UIStatePath:    filepath.Join(dir, "ui_state.json"),
	}, nil
}

func parseAPIURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "https://frames.example.com"
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid TERMINALFRAMES_API_URL: must be an absolute URL")
	}
	if parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid TERMINALFRAMES_API_URL: only https is allowed")
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

func positiveInt(name string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", name, raw)
	}
	return n, nil
}

func envOr(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

// UIState is the small set of preferences remembered between sessions.
type UIState struct {
	Source   string `json:"source,omitempty"`
	Autoplay string `json:"autoplay,omitempty"` // "on", "off" or empty for the config default
}

// LoadUIState reads the state file. A missing file yields an empty state.
func LoadUIState(path string) (UIState, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return UIState{}, nil
	}
	if err != nil {
		return UIState{}, fmt.Errorf("reading ui state: %w", err)
	}
	var st UIState
	if err := json.Unmarshal(data, &st); err != nil {
		return UIState{}, fmt.Errorf("parsing ui state: %w", err)
	}
	return st, nil
}

// SaveUIState writes the state file, creating its directory if needed.
func SaveUIState(path string, st UIState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ui state: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing ui state: %w", err)
	}
	return os.Rename(tmp, path)
}

// ApplyUIState overrides config defaults with remembered preferences.
func (c Config) ApplyUIState(st UIState) Config {
	switch st.Source {
	case SourceRemote, SourceCatalog:
		c.Source = st.Source
	}
	switch st.Autoplay {
	case "on":
		c.Autoplay = true
	case "off":
		c.Autoplay = false
	}
	return c
}

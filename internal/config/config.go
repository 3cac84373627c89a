package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Board   BoardConfig   `toml:"board"`
	Server  ServerConfig  `toml:"server"`
	Keys    KeyConfig     `toml:"keys"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

// DevFileConfig controls the logfmt file sink used in dev mode.
type DevFileConfig struct {
	Enabled bool `toml:"enabled"`
	// Dir is resolved against the workspace root when relative. Blank uses the
	// platform log dir.
	Dir string `toml:"dir"`
}

type BoardConfig struct {
	ShowDescription  bool   `toml:"show_description"`
	WrapDescriptions bool   `toml:"wrap_descriptions"`
	MarkdownStyle    string `toml:"markdown_style"`
}

type ServerConfig struct {
	HTTPBind        string `toml:"http_bind"`
	APIEndpoint     string `toml:"api_endpoint"`
	MCPEndpoint     string `toml:"mcp_endpoint"`
	MetricsEndpoint string `toml:"metrics_endpoint"`
}

type KeyConfig struct {
	AddItem     string `toml:"add_item"`
	Grab        string `toml:"grab"`
	CopyID      string `toml:"copy_id"`
	ActivityLog string `toml:"activity_log"`
}

var (
	logLevels      = []string{"debug", "info", "warn", "error", "fatal"}
	markdownStyles = []string{"auto", "ascii", "dark", "dracula", "light", "notty", "pink", "tokyo-night"}
)

func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     ".lanes/log",
			},
		},
		Board: BoardConfig{
			ShowDescription:  true,
			WrapDescriptions: false,
			MarkdownStyle:    "dark",
		},
		Server: ServerConfig{
			HTTPBind:        "127.0.0.1:8080",
			APIEndpoint:     "/api/v1",
			MCPEndpoint:     "/mcp",
			MetricsEndpoint: "/metrics",
		},
		Keys: KeyConfig{
			AddItem:     "n",
			Grab:        "space",
			CopyID:      "y",
			ActivityLog: "g",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	level := strings.TrimSpace(strings.ToLower(c.Logging.Level))
	if !slices.Contains(logLevels, level) {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	style := strings.TrimSpace(strings.ToLower(c.Board.MarkdownStyle))
	if style != "" && !slices.Contains(markdownStyles, style) {
		return fmt.Errorf("invalid board.markdown_style: %q", c.Board.MarkdownStyle)
	}

	endpoints := map[string]string{}
	for _, ep := range []struct{ name, value string }{
		{"server.api_endpoint", c.Server.APIEndpoint},
		{"server.mcp_endpoint", c.Server.MCPEndpoint},
		{"server.metrics_endpoint", c.Server.MetricsEndpoint},
	} {
		value := "/" + strings.Trim(strings.TrimSpace(ep.value), "/")
		if value == "/" {
			continue
		}
		if other, ok := endpoints[value]; ok {
			return fmt.Errorf("%s duplicates %s: %s", ep.name, other, value)
		}
		endpoints[value] = ep.name
	}

	seenKey := map[string]string{}
	for _, key := range []struct{ name, value string }{
		{"keys.add_item", c.Keys.AddItem},
		{"keys.grab", c.Keys.Grab},
		{"keys.copy_id", c.Keys.CopyID},
		{"keys.activity_log", c.Keys.ActivityLog},
	} {
		value := strings.TrimSpace(key.value)
		if value == "" {
			continue
		}
		if other, ok := seenKey[value]; ok {
			return fmt.Errorf("%s duplicates %s: %q", key.name, other, value)
		}
		seenKey[value] = key.name
	}

	return nil
}

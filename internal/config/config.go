package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Backends the catalog can be served from.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server" toml:"server"`
	Database DatabaseConfig `mapstructure:"database" toml:"database"`
	UI       UIConfig       `mapstructure:"ui" toml:"ui"`
	Keys     KeyConfig      `mapstructure:"keys" toml:"keys"`
	Log      LogConfig      `mapstructure:"log" toml:"log"`
}

type ServerConfig struct {
	Backend       string        `mapstructure:"backend" toml:"backend"`
	Endpoint      string        `mapstructure:"endpoint" toml:"endpoint"`
	Authorization string        `mapstructure:"authorization" toml:"authorization"`
	Timeout       time.Duration `mapstructure:"timeout" toml:"timeout"`
}

type DatabaseConfig struct {
	Path    string        `mapstructure:"path" toml:"path"`
	Timeout time.Duration `mapstructure:"timeout" toml:"timeout"`
	// Author signs comments added through the local backend.
	Author string `mapstructure:"author" toml:"author"`
}

type UIConfig struct {
	Colors           UIColors      `mapstructure:"colors" toml:"colors"`
	FilmCountPerStep int           `mapstructure:"film_count_per_step" toml:"film_count_per_step"`
	ShakeTimeout     time.Duration `mapstructure:"shake_timeout" toml:"shake_timeout"`
	WordWrap         int           `mapstructure:"word_wrap" toml:"word_wrap"`
}

type UIColors struct {
	Primary    string `mapstructure:"primary" toml:"primary"`
	Secondary  string `mapstructure:"secondary" toml:"secondary"`
	Accent     string `mapstructure:"accent" toml:"accent"`
	Background string `mapstructure:"background" toml:"background"`
	Surface    string `mapstructure:"surface" toml:"surface"`
	Text       string `mapstructure:"text" toml:"text"`
	Muted      string `mapstructure:"muted" toml:"muted"`
	Error      string `mapstructure:"error" toml:"error"`
	Success    string `mapstructure:"success" toml:"success"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier" toml:"modifier"`
	Bindings KeyBindings `mapstructure:"bindings" toml:"bindings"`
}

type KeyBindings struct {
	Quit       string `mapstructure:"quit" toml:"quit"`
	Search     string `mapstructure:"search" toml:"search"`
	Open       string `mapstructure:"open" toml:"open"`
	Watchlist  string `mapstructure:"watchlist" toml:"watchlist"`
	Watched    string `mapstructure:"watched" toml:"watched"`
	Favorite   string `mapstructure:"favorite" toml:"favorite"`
	ShowMore   string `mapstructure:"show_more" toml:"show_more"`
	NextFilter string `mapstructure:"next_filter" toml:"next_filter"`
	NextSort   string `mapstructure:"next_sort" toml:"next_sort"`
	Comment    string `mapstructure:"comment" toml:"comment"`
	Emotion    string `mapstructure:"emotion" toml:"emotion"`
	Delete     string `mapstructure:"delete" toml:"delete"`
	Back       string `mapstructure:"back" toml:"back"`
	Help       string `mapstructure:"help" toml:"help"`
}

type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
	Path  string `mapstructure:"path" toml:"path"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Server: ServerConfig{
			Backend:  BackendLocal,
			Endpoint: "https://22.objects.htmlacademy.pro/cinemaddict",
			Timeout:  10 * time.Second,
		},
		Database: DatabaseConfig{
			Path:    filepath.Join(homeDir, ".cinemaddict", "cinemaddict.db"),
			Timeout: 1 * time.Second,
			Author:  "Movie Buff",
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:    "#FFE800",
				Secondary:  "#4ECDC4",
				Accent:     "#95E1D3",
				Background: "#1A1A2E",
				Surface:    "#16213E",
				Text:       "#EAEAEA",
				Muted:      "#94A3B8",
				Error:      "#F87171",
				Success:    "#4ADE80",
			},
			FilmCountPerStep: 5,
			ShakeTimeout:     600 * time.Millisecond,
			WordWrap:         100,
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:       "q",
				Search:     "/",
				Open:       "enter",
				Watchlist:  "w",
				Watched:    "h",
				Favorite:   "f",
				ShowMore:   "m",
				NextFilter: "tab",
				NextSort:   "s",
				Comment:    "c",
				Emotion:    "e",
				Delete:     "x",
				Back:       "esc",
				Help:       "?",
			},
		},
		Log: LogConfig{
			Level: "off",
			Path:  filepath.Join(homeDir, ".cinemaddict", "cinemaddict.log"),
		},
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "cinemaddict", "config.toml")
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v, defaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CINEMADDICT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// setDefaults registers every leaf key so a file that sets part of a
// section keeps the defaults for the rest.
func setDefaults(v *viper.Viper, cfg *Config) {
	defaults := map[string]any{
		"server.backend":            cfg.Server.Backend,
		"server.endpoint":           cfg.Server.Endpoint,
		"server.authorization":      cfg.Server.Authorization,
		"server.timeout":            cfg.Server.Timeout,
		"database.path":             cfg.Database.Path,
		"database.timeout":          cfg.Database.Timeout,
		"database.author":           cfg.Database.Author,
		"ui.colors.primary":         cfg.UI.Colors.Primary,
		"ui.colors.secondary":       cfg.UI.Colors.Secondary,
		"ui.colors.accent":          cfg.UI.Colors.Accent,
		"ui.colors.background":      cfg.UI.Colors.Background,
		"ui.colors.surface":         cfg.UI.Colors.Surface,
		"ui.colors.text":            cfg.UI.Colors.Text,
		"ui.colors.muted":           cfg.UI.Colors.Muted,
		"ui.colors.error":           cfg.UI.Colors.Error,
		"ui.colors.success":         cfg.UI.Colors.Success,
		"ui.film_count_per_step":    cfg.UI.FilmCountPerStep,
		"ui.shake_timeout":          cfg.UI.ShakeTimeout,
		"ui.word_wrap":              cfg.UI.WordWrap,
		"keys.modifier":             cfg.Keys.Modifier,
		"keys.bindings.quit":        cfg.Keys.Bindings.Quit,
		"keys.bindings.search":      cfg.Keys.Bindings.Search,
		"keys.bindings.open":        cfg.Keys.Bindings.Open,
		"keys.bindings.watchlist":   cfg.Keys.Bindings.Watchlist,
		"keys.bindings.watched":     cfg.Keys.Bindings.Watched,
		"keys.bindings.favorite":    cfg.Keys.Bindings.Favorite,
		"keys.bindings.show_more":   cfg.Keys.Bindings.ShowMore,
		"keys.bindings.next_filter": cfg.Keys.Bindings.NextFilter,
		"keys.bindings.next_sort":   cfg.Keys.Bindings.NextSort,
		"keys.bindings.comment":     cfg.Keys.Bindings.Comment,
		"keys.bindings.emotion":     cfg.Keys.Bindings.Emotion,
		"keys.bindings.delete":      cfg.Keys.Bindings.Delete,
		"keys.bindings.back":        cfg.Keys.Bindings.Back,
		"keys.bindings.help":        cfg.Keys.Bindings.Help,
		"log.level":                 cfg.Log.Level,
		"log.path":                  cfg.Log.Path,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// Validate rejects settings the application cannot start with.
func (c *Config) Validate() error {
	switch c.Server.Backend {
	case BackendLocal:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the local backend")
		}
	case BackendRemote:
		if c.Server.Endpoint == "" {
			return fmt.Errorf("server.endpoint is required for the remote backend")
		}
	default:
		return fmt.Errorf("server.backend must be %q or %q, got %q", BackendLocal, BackendRemote, c.Server.Backend)
	}
	if c.UI.FilmCountPerStep <= 0 {
		return fmt.Errorf("ui.film_count_per_step must be positive, got %d", c.UI.FilmCountPerStep)
	}
	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Database.Path = expandPath(cfg.Database.Path)
	cfg.Log.Path = expandPath(cfg.Log.Path)
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations are written as strings for TOML readability
	v.Set("server", map[string]any{
		"backend":       config.Server.Backend,
		"endpoint":      config.Server.Endpoint,
		"authorization": config.Server.Authorization,
		"timeout":       config.Server.Timeout.String(),
	})
	v.Set("database", map[string]any{
		"path":    config.Database.Path,
		"timeout": config.Database.Timeout.String(),
		"author":  config.Database.Author,
	})
	v.Set("ui", map[string]any{
		"colors":              config.UI.Colors,
		"film_count_per_step": config.UI.FilmCountPerStep,
		"shake_timeout":       config.UI.ShakeTimeout.String(),
		"word_wrap":           config.UI.WordWrap,
	})
	v.Set("keys", config.Keys)
	v.Set("log", config.Log)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}

// Dump encodes the effective configuration as TOML. The authorization
// header is masked.
func Dump(config *Config) (string, error) {
	masked := *config
	if masked.Server.Authorization != "" {
		masked.Server.Authorization = "********"
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(masked); err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return buf.String(), nil
}

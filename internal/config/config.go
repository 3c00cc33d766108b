package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StoreConfig locates the numeric array store holding the embeddings.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// MetaConfig locates the JSON metadata file labelling each embedding row.
type MetaConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig sets the default output location for the generated view.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// PlotConfig adjusts the presentation of the generated scatter plot.
type PlotConfig struct {
	Title      string `yaml:"title"`
	Colorscale string `yaml:"colorscale"`
	MarkerSize int    `yaml:"marker_size"`
	ScriptURL  string `yaml:"script_url"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Store  StoreConfig  `yaml:"store"`
	Meta   MetaConfig   `yaml:"meta"`
	Output OutputConfig `yaml:"output"`
	Plot   PlotConfig   `yaml:"plot"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./embview.yaml first, then ~/.config/embview/config.yaml.
// If neither exists, it writes defaults to ~/.config/embview/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "embview.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "embview", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Store:  StoreConfig{Path: "embeddings_index.npz"},
		Meta:   MetaConfig{Path: "embeddings_meta.json"},
		Output: OutputConfig{Path: "embeddings_view.html"},
		Plot: PlotConfig{
			Title:      "Embeddings view",
			Colorscale: "Viridis",
			MarkerSize: 8,
			ScriptURL:  "https://cdn.plot.ly/plotly-2.32.0.min.js",
		},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Store.Path == "" {
		cfg.Store.Path = def.Store.Path
	}
	if cfg.Meta.Path == "" {
		cfg.Meta.Path = def.Meta.Path
	}
	if cfg.Output.Path == "" {
		cfg.Output.Path = def.Output.Path
	}
	if cfg.Plot.Title == "" {
		cfg.Plot.Title = def.Plot.Title
	}
	if cfg.Plot.Colorscale == "" {
		cfg.Plot.Colorscale = def.Plot.Colorscale
	}
	if cfg.Plot.MarkerSize == 0 {
		cfg.Plot.MarkerSize = def.Plot.MarkerSize
	}
	if cfg.Plot.ScriptURL == "" {
		cfg.Plot.ScriptURL = def.Plot.ScriptURL
	}
}

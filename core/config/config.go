package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ewhitby/pipekit/core/constants"
	"github.com/ewhitby/pipekit/core/logger"
)

// Config is the merged pipekit configuration: defaults, then the config
// file (pipekit.yaml in CWD or ~/.pipekit.yaml), then PIPEKIT_* environment
// variables, then flags.
type Config struct {
	Farm      Farm      `yaml:"farm" mapstructure:"farm"`
	Deadline  Deadline  `yaml:"deadline" mapstructure:"deadline"`
	Shelves   Shelves   `yaml:"shelves" mapstructure:"shelves"`
	Structure Structure `yaml:"structure" mapstructure:"structure"`
}

// Farm describes the shared drive render jobs are staged on.
type Farm struct {
	RenderRoot string `yaml:"render_root" mapstructure:"render_root"`
}

// Deadline describes the Deadline Web Service the submit command talks to.
type Deadline struct {
	URL      string `yaml:"url" mapstructure:"url"`
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	Pool     string `yaml:"pool" mapstructure:"pool"`
	Group    string `yaml:"group" mapstructure:"group"`
	Priority int    `yaml:"priority" mapstructure:"priority"`
}

// Shelves maps the three Maya shelf contexts to directories and carries the
// display order shelves are listed in.
type Shelves struct {
	LocalDir  string   `yaml:"local_dir" mapstructure:"local_dir"`
	PresetDir string   `yaml:"preset_dir" mapstructure:"preset_dir"`
	GlobalDir string   `yaml:"global_dir" mapstructure:"global_dir"`
	Order     []string `yaml:"order" mapstructure:"order"`
}

type Structure struct {
	Template string `yaml:"template" mapstructure:"template"`
}

func Default() *Config {
	home, _ := os.UserHomeDir()
	mayaPrefs := filepath.Join(home, "maya", "prefs")

	return &Config{
		Farm: Farm{
			RenderRoot: constants.FarmRenderRoot,
		},
		Deadline: Deadline{
			URL:      constants.DeadlineURL,
			Pool:     constants.DeadlinePool,
			Priority: constants.DeadlinePriority,
		},
		Shelves: Shelves{
			LocalDir:  filepath.Join(mayaPrefs, "shelves"),
			PresetDir: filepath.Join(mayaPrefs, "presets", "shelves"),
			GlobalDir: "//truenas/pipeline/maya/shelves",
			Order:     constants.ShelfOrder,
		},
		Structure: Structure{
			Template: constants.StructureTemplateFile,
		},
	}
}

// Load hydrates the typed config from viper's merged state. Callers are
// expected to have run the viper setup in cmd first; Load on a bare viper
// just returns the defaults.
func Load() (*Config, error) {
	cfg := Default()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("Config file found: %s", used)
	} else {
		logger.Debug("No config file found, using defaults")
	}

	return cfg, nil
}

package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Farm.RenderRoot == "" {
		t.Error("default farm render root is empty")
	}
	if cfg.Deadline.URL == "" {
		t.Error("default deadline URL is empty")
	}
	if cfg.Deadline.Priority <= 0 {
		t.Errorf("default priority = %d", cfg.Deadline.Priority)
	}
	if len(cfg.Shelves.Order) == 0 {
		t.Error("default shelf order is empty")
	}
	if cfg.Shelves.LocalDir == "" {
		t.Error("default local shelf dir is empty")
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("farm.render_root", "/mnt/farm/renders")
	viper.Set("deadline.pool", "katana")
	viper.Set("shelves.order", []string{"Custom"})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Farm.RenderRoot != "/mnt/farm/renders" {
		t.Errorf("render root = %q, want /mnt/farm/renders", cfg.Farm.RenderRoot)
	}
	if cfg.Deadline.Pool != "katana" {
		t.Errorf("pool = %q, want katana", cfg.Deadline.Pool)
	}
	if len(cfg.Shelves.Order) != 1 || cfg.Shelves.Order[0] != "Custom" {
		t.Errorf("shelf order = %v, want [Custom]", cfg.Shelves.Order)
	}

	// Untouched sections keep their defaults.
	if cfg.Deadline.URL != Default().Deadline.URL {
		t.Errorf("deadline URL = %q, want default", cfg.Deadline.URL)
	}
}

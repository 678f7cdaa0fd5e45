package orrery

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _orreryconfig{}
)

// _orreryconfig is a "hidden" struct, just use `orreryConfig`
type _orreryconfig struct {
	CatalogPaths  []string
	Location      string
	Body          string
	Width, Height float64 // degrees
}

// orreryConfig returns the orrery configuration. The configuration directory
// is named by the `ORRERY_CONFIG` environment variable and holds a conf.toml;
// when the variable is unset or the file is missing, built-in defaults are
// used instead.
func orreryConfig() _orreryconfig {
	if cfgLoaded {
		return config
	}
	cfgLoaded = true
	config = _orreryconfig{Body: "Earth", Width: 50, Height: 50}

	confPath := os.Getenv("ORRERY_CONFIG")
	if confPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			confPath = filepath.Join(home, ".orrery")
		}
	}
	if confPath == "" {
		return config
	}
	viper.SetConfigName("conf")
	viper.AddConfigPath(confPath)
	if err := viper.ReadInConfig(); err != nil {
		return config
	}

	if paths := viper.GetStringSlice("catalog.paths"); len(paths) > 0 {
		config.CatalogPaths = paths
	}
	if loc := viper.GetString("observer.location"); loc != "" {
		config.Location = loc
	}
	if body := viper.GetString("observer.body"); body != "" {
		config.Body = body
	}
	if wid := viper.GetFloat64("viewport.width"); wid > 0 {
		config.Width = wid
	}
	if hei := viper.GetFloat64("viewport.height"); hei > 0 {
		config.Height = hei
	}
	return config
}

// ConfigCatalogPaths returns the configured catalog XML files.
func ConfigCatalogPaths() []string {
	return orreryConfig().CatalogPaths
}

// ConfigLocation returns the configured default observer location, or empty.
func ConfigLocation() string {
	return orreryConfig().Location
}

// ConfigBody returns the configured default observation body.
func ConfigBody() string {
	return orreryConfig().Body
}

// ConfigViewport returns the configured viewport extent in degrees.
func ConfigViewport() (wid, hei float64) {
	conf := orreryConfig()
	return conf.Width, conf.Height
}

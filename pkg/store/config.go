package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/appoverrides/pkg/override"
	"tableflip.dev/appoverrides/pkg/setting"
)

const (
	// ConfigPathEnv points at an extra directory searched for the config file.
	ConfigPathEnv = "APPOVERRIDES_CONFIG_PATH"

	defaultBasePath = "~/.appoverrides.db"
	defaultAppsPath = "~/.appoverrides-apps.json"
)

type Config interface {
	BasePath() string
	AppsPath() string
	Defaults() override.Defaults
	// Source is the config file that was read, empty when none was found.
	Source() string
}

// LoadConfig reads .appoverrides.yaml from $APPOVERRIDES_CONFIG_PATH, the
// working directory or $HOME. Every key can also be set through the
// environment, e.g. APPOVERRIDES_DEFAULTS_CONTROLLER_STYLE.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", defaultBasePath)
	v.SetDefault("apps", defaultAppsPath)
	v.SetDefault("defaults.controller_style", string(setting.ControllerOdin))
	v.SetDefault("defaults.l2r2_style", string(setting.L2R2Analog))
	v.SetConfigName(".appoverrides") // .yaml is implicit
	v.SetEnvPrefix("APPOVERRIDES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if dir := os.Getenv(ConfigPathEnv); dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}
	return newFileConfig(v)
}

func newFileConfig(v *viper.Viper) (*fileConfig, error) {
	base, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	apps, err := homedir.Expand(v.GetString("apps"))
	if err != nil {
		return nil, fmt.Errorf("store: expand apps: %w", err)
	}
	controller, err := setting.ParseControllerStyle(v.GetString("defaults.controller_style"))
	if err != nil {
		return nil, fmt.Errorf("store: defaults: %w", err)
	}
	l2r2, err := setting.ParseL2R2Style(v.GetString("defaults.l2r2_style"))
	if err != nil {
		return nil, fmt.Errorf("store: defaults: %w", err)
	}
	defaults := override.Defaults{ControllerStyle: controller, L2R2Style: l2r2}
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("store: defaults: %w", err)
	}
	return &fileConfig{
		Path:     base,
		Apps:     apps,
		Default:  defaults,
		FileUsed: v.ConfigFileUsed(),
	}, nil
}

type fileConfig struct {
	Path     string            `json:"path"`
	Apps     string            `json:"apps"`
	Default  override.Defaults `json:"defaults"`
	FileUsed string            `json:"-"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) AppsPath() string {
	return f.Apps
}

func (f *fileConfig) Defaults() override.Defaults {
	return f.Default
}

func (f *fileConfig) Source() string {
	return f.FileUsed
}

// StaticConfig is a Config with fixed values.
type StaticConfig struct {
	Base     string
	Manifest string
	Default  override.Defaults
}

func (s StaticConfig) BasePath() string { return s.Base }

func (s StaticConfig) AppsPath() string { return s.Manifest }

func (s StaticConfig) Defaults() override.Defaults { return s.Default }

func (s StaticConfig) Source() string { return "" }

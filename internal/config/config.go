// Package config resolves settings from flags, TODO_* environment variables
// and an optional .todo.yaml in the working or home directory.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	KeyBaseURL     = "base_url"
	KeyTheme       = "theme"
	KeyNotifyDelay = "notify_delay"
	KeyDebug       = "debug"
	KeyAuthDir     = "auth_dir"
)

type Config struct {
	BaseURL     string
	Theme       string
	NotifyDelay time.Duration
	Debug       bool
	AuthDir     string
}

// New returns a viper instance with defaults and search paths set.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyBaseURL, "http://localhost:3000")
	v.SetDefault(KeyTheme, "classic")
	v.SetDefault(KeyNotifyDelay, "5s")
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyAuthDir, "~/.todo")
	v.SetConfigName(".todo") // .yaml is implicit
	v.SetEnvPrefix("TODO")
	v.AutomaticEnv()
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	return v
}

// Load reads the config file if one exists and returns the resolved settings.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	delay := v.GetDuration(KeyNotifyDelay)
	if delay <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %q", KeyNotifyDelay, v.GetString(KeyNotifyDelay))
	}
	authDir, err := homedir.Expand(v.GetString(KeyAuthDir))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeyAuthDir, err)
	}
	return Config{
		AuthDir:     authDir,
		BaseURL:     v.GetString(KeyBaseURL),
		Theme:       v.GetString(KeyTheme),
		NotifyDelay: delay,
		Debug:       v.GetBool(KeyDebug),
	}, nil
}

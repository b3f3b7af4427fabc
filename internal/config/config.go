// Package config loads viewer settings from defaults, an optional
// arviewer.yaml, a .env file and ARVIEWER_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. ARVIEWER_LOGLEVEL
const EnvPrefix = "ARVIEWER"

// Load sets default values, reads arviewer.yaml from configDir when present
// and applies .env and environment overrides. A missing config file is not
// an error.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("debug", false)

	viper.SetDefault("assets.baseUrl", "")
	viper.SetDefault("assets.cacheDir", defaultCacheDir())
	viper.SetDefault("assets.timeout", 30*time.Second)

	viper.SetDefault("catalog.dir", "")

	viper.SetDefault("viewer.width", 1400)
	viper.SetDefault("viewer.height", 900)
	viper.SetDefault("viewer.fps", 60)
	viper.SetDefault("viewer.autoRotate", false)
	viper.SetDefault("viewer.showAllLabels", false)
	viper.SetDefault("viewer.watch", true)

	viper.SetDefault("session.file", "")

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(configDir, ".env")
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return fmt.Errorf("error reading %s: %w", dotEnvPath, err)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("arviewer")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "arviewer")
	}
	return filepath.Join(os.TempDir(), "arviewer")
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a duration config value.
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

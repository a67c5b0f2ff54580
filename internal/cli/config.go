// Config loading for the shelf CLI.
package cli

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyDataDir = "data_dir"
)

// loadConfig reads config.yaml from the resolved config directory using
// Viper. A missing config.yaml is not an error: every key has a flag or
// default, and "shelf init" writes the file on first use.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

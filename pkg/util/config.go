package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ReadConfig. read ./data/config.yaml (or the directory in configDir) and let environment variables override it.
// a missing config file is not an error, defaults registered with viper.SetDefault still apply.
func ReadConfig(configDir string) error {
	if configDir == "" {
		configDir = "./data/"
	}
	viper.SetConfigName("config")
	viper.AddConfigPath(configDir)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

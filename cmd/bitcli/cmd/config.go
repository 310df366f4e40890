package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aikiriao/BitStream/config"
)

const envPrefix = "BITSTREAM"

// loadConfig fills cfg from, in increasing priority, the config file, the
// environment (BITSTREAM_LOG_LEVEL, ...) and the command line flags.
func loadConfig(cmd *cobra.Command, cfg *config.Config) error {
	vip := viper.New()

	if err := vip.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	if err := vip.BindPFlags(cmd.InheritedFlags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	vip.SetEnvPrefix(envPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()

	if err := loadConfigFile(configFile, vip); err != nil {
		return err
	}

	if err := vip.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// loadConfigFile reads the config file into vip. A missing default config
// file is not an error.
func loadConfigFile(fileLocation string, vip *viper.Viper) error {
	defaultLocation := smutil.GetCanonicalPath(config.DefaultConfigFile)
	if fileLocation == "" {
		fileLocation = defaultLocation
	}
	fileLocation = smutil.GetCanonicalPath(fileLocation)

	vip.SetConfigFile(fileLocation)
	err := vip.ReadInConfig()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist) && fileLocation == defaultLocation:
		return nil
	default:
		return fmt.Errorf("failed to read config file: %w", err)
	}
}

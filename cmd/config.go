package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	ocrypto "github.com/porthorian/pwhash/pkg/crypto"
	pwerrors "github.com/porthorian/pwhash/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "PWHASH"

const (
	keyCost       = "cost"
	keyPrefix     = "prefix"
	keyCredential = "credential"
)

type settings struct {
	Cost   int
	Prefix string
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault(keyCost, ocrypto.DefaultCost)
	v.SetDefault(keyPrefix, string(ocrypto.DefaultVariant))

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// loadConfig reads an explicit config file, or pwhash.yaml from the search
// paths when one exists, and binds the PWHASH_* environment variables.
func loadConfig(v *viper.Viper, configPath string) error {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("pwhash")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/pwhash")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	for _, key := range []string{keyCost, keyPrefix, keyCredential} {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("bind env var %q: %w", key, err)
		}
	}
	return nil
}

// mustBindPFlag panics when a flag cannot be bound. It only runs while the
// command tree is built.
func mustBindPFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %q: %v", key, err))
	}
}

func resolveSettings(v *viper.Viper) (settings, error) {
	rawCost := strings.TrimSpace(v.GetString(keyCost))
	cost, err := strconv.Atoi(rawCost)
	if err != nil {
		return settings{}, pwerrors.New(pwerrors.CodeInvalidParameter, fmt.Sprintf("invalid cost %q: expected an integer", rawCost))
	}

	return settings{
		Cost:   cost,
		Prefix: strings.TrimSpace(v.GetString(keyPrefix)),
	}, nil
}

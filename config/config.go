// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package config wires defaults, the config file and TUNEBOX_* environment
// variables into viper.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const Name = "tunebox"

// EnvKeyReplacer maps keys to environment names: player.poll-interval is
// TUNEBOX_PLAYER_POLL_INTERVAL.
var EnvKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

var ErrInvalid = errors.New("invalid configuration")

// Setup loads configFile, or tunebox.toml from the default directories when
// it is empty. Only a missing default file is tolerated.
func Setup(configFile string) error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(Name)
		viper.SetConfigType("toml")
		viper.AddConfigPath("$HOME/.config/" + Name)
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix(Name)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	viper.SetTypeByDefaultValue(true)
	for _, key := range Keys() {
		viper.MustBindEnv(key)
		viper.SetDefault(key, Default[key].Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config file: %w", err)
	}
	return nil
}

// Keys lists the known keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(Default))
	for key := range Default {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func Validate() error {
	switch backend := Backend(); backend {
	case BackendBeep, BackendMpv:
	default:
		return fmt.Errorf("%w: %s %q, want %s or %s", ErrInvalid, PlayerBackend, backend, BackendBeep, BackendMpv)
	}
	if d := PollInterval(); d <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalid, PlayerPollInterval, d)
	}
	if n := viper.GetInt(UIArtCacheSize); n < 1 {
		return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalid, UIArtCacheSize, n)
	}
	if _, err := logrus.ParseLevel(viper.GetString(LogsLevel)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, LogsLevel, err)
	}
	return nil
}

func Backend() string {
	return strings.ToLower(strings.TrimSpace(viper.GetString(PlayerBackend)))
}

func PollInterval() time.Duration {
	return viper.GetDuration(PlayerPollInterval)
}

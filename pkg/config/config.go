// Package config loads the settings of memvcs repositories.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/oneconcern/memvcs/pkg/cafs"
	"github.com/oneconcern/memvcs/pkg/dlogger"
	"github.com/oneconcern/memvcs/pkg/engine"
	"github.com/oneconcern/memvcs/pkg/errors"
	"github.com/oneconcern/memvcs/pkg/model"
)

// EnvPrefix is the prefix of environment variables overriding settings, e.g. MEMVCS_HASH
const EnvPrefix = "MEMVCS"

// ErrInvalidConfig indicates that some setting may not be used
var ErrInvalidConfig = errors.New("invalid configuration")

// Config for a repository
type Config struct {
	// bug in viper? Need to keep names of fields the same as the serialized names..
	Hash          cafs.Algorithm `mapstructure:"hash" json:"hash" yaml:"hash"`
	DefaultBranch string         `mapstructure:"branch" json:"branch" yaml:"branch"`
	LogLevel      string         `mapstructure:"loglevel" json:"loglevel" yaml:"loglevel"`
	Metrics       bool           `mapstructure:"metrics" json:"metrics" yaml:"metrics"`
}

// Default settings
func Default() Config {
	return Config{
		Hash:          cafs.Blake2b,
		DefaultBranch: model.DefaultBranch,
		LogLevel:      dlogger.LogLevelInfo,
	}
}

// SetDefaults registers default settings and environment overrides with viper
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("hash", d.Hash.String())
	v.SetDefault("branch", d.DefaultBranch)
	v.SetDefault("loglevel", d.LogLevel)
	v.SetDefault("metrics", d.Metrics)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load settings from viper, then validate them
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return Config{}, ErrInvalidConfig.Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		boolFromString,
	)
}

// boolFromString accepts "yes" and "on" as true, as set from environment
func boolFromString(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	switch strings.ToLower(strings.TrimSpace(data.(string))) {
	case "yes", "on", "y":
		return true, nil
	case "no", "off", "n", "":
		return false, nil
	default:
		return data, nil
	}
}

// Validate settings
func (c Config) Validate() error {
	if !dlogger.ValidLevel(c.LogLevel) {
		return ErrInvalidConfig.WrapMessage("unknown log level %q", c.LogLevel)
	}
	if err := model.ValidateBranchName(c.DefaultBranch); err != nil {
		return ErrInvalidConfig.Wrap(fmt.Errorf("default branch: %w", err))
	}
	switch c.Hash {
	case cafs.Blake2b, cafs.XXH3:
	default:
		return ErrInvalidConfig.WrapMessage("unsupported hash algorithm %d", c.Hash)
	}
	return nil
}

// Logger builds a logger at the configured level
func (c Config) Logger(opts ...dlogger.Option) (*zap.Logger, error) {
	return dlogger.GetLogger(c.LogLevel, opts...)
}

// EngineOptions turns settings into repository options.
//
// The registerer is used only when metrics are enabled.
func (c Config) EngineOptions(logger *zap.Logger, reg prometheus.Registerer) []engine.Option {
	opts := []engine.Option{
		engine.Algorithm(c.Hash),
		engine.Logger(logger),
	}
	if c.Metrics && reg != nil {
		opts = append(opts, engine.Metrics(reg))
	}
	return opts
}

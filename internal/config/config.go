package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DefaultAPIBase = "https://kurausuai-voice.ngrok.app"
	DefaultModel   = "zingai_1"
)

// Playback backends.
const (
	BackendCommand = "command"
	BackendSpeaker = "speaker"
	BackendNone    = "none"
)

type Config struct {
	Voice      VoiceConfig      `mapstructure:"voice"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Fallback   FallbackConfig   `mapstructure:"fallback"`
	Playback   PlaybackConfig   `mapstructure:"playback"`
}

type VoiceConfig struct {
	APIBase       string        `mapstructure:"api_base" validate:"required,url"`
	Model         string        `mapstructure:"model" validate:"required"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RetryAttempts uint          `mapstructure:"retry_attempts"`
}

type DictionaryConfig struct {
	File                 string `mapstructure:"file" validate:"required"`
	ImportCacheDirectory string `mapstructure:"import_cache_directory"`
}

type FallbackConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// TableFile replaces the embedded table when set.
	TableFile string `mapstructure:"table_file" validate:"omitempty,file"`
}

type PlaybackConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=command speaker none"`
	// Command is the player argv. Empty means detect one for the platform.
	Command       []string `mapstructure:"command" validate:"omitempty,executable"`
	TempDirectory string   `mapstructure:"temp_directory"`
	KeepFiles     int      `mapstructure:"keep_files" validate:"gte=1"`
	QueueSize     int      `mapstructure:"queue_size" validate:"gte=1"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/simplevoice")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("voice.api_base", DefaultAPIBase)
	v.SetDefault("voice.model", DefaultModel)
	v.SetDefault("voice.timeout", 30*time.Second)
	v.SetDefault("voice.retry_attempts", 2)
	v.SetDefault("dictionary.file", "custom_words.csv")
	v.SetDefault("dictionary.import_cache_directory", filepath.Join("dictionaries", "imports"))
	v.SetDefault("fallback.enabled", true)
	v.SetDefault("fallback.table_file", "")
	v.SetDefault("playback.backend", BackendCommand)
	v.SetDefault("playback.temp_directory", "")
	v.SetDefault("playback.keep_files", 10)
	v.SetDefault("playback.queue_size", 32)

	if err := v.BindEnv("voice.api_base", "VOICE_API_BASE"); err != nil {
		return nil, fmt.Errorf("failed to bind VOICE_API_BASE environment variable: %w", err)
	}
	if err := v.BindEnv("voice.model", "VOICE_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind VOICE_MODEL environment variable: %w", err)
	}
	if err := v.BindEnv("dictionary.file", "SIMPLEVOICE_DICTIONARY_FILE"); err != nil {
		return nil, fmt.Errorf("failed to bind SIMPLEVOICE_DICTIONARY_FILE environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

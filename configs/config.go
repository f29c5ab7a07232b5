package configs

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"line-webhook-gateway/pkg/validator"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ErrMissingSecret is returned by Load when a required LINE credential is not set
var ErrMissingSecret = errors.New("missing required secret")

// Config struct
type Config struct {
	App  `mapstructure:"app"`
	Line `mapstructure:"line"`

	file string
}

// File returns the config file Load read, or "" when none was found
func (c *Config) File() string {
	return c.file
}

// App struct
type App struct {
	Debug     bool   `mapstructure:"debug"`
	Env       string `mapstructure:"env"`
	Port      string `mapstructure:"port" validate:"required,numeric"`
	LogLevel  string `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=text json"`
	Tracing   bool   `mapstructure:"tracing"`
}

// Line struct
type Line struct {
	ChannelSecret      string `mapstructure:"channel_secret"`
	ChannelAccessToken string `mapstructure:"channel_access_token"`
	ReplyMode          string `mapstructure:"reply_mode" validate:"oneof=stub echo"`
	APIEndpoint        string `mapstructure:"api_endpoint" validate:"omitempty,url"`
}

var defaults = map[string]interface{}{
	"app.debug":                 false,
	"app.env":                   "development",
	"app.port":                  "8000",
	"app.log_level":             "info",
	"app.log_format":            "text",
	"app.tracing":               false,
	"line.channel_secret":       "",
	"line.channel_access_token": "",
	"line.reply_mode":           "stub",
	"line.api_endpoint":         "",
}

// Load reads the configuration once. Environment variables win over the
// optional config file, which wins over defaults. Every key is registered as
// a default so AutomaticEnv can resolve it even without a config file.
func Load(path, env string) (*Config, error) {
	v := viper.New()
	name := "config"
	if env != "" {
		name = "config_" + env
	}
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		logrus.Debugf("No config file %q in %s, using environment and defaults", name, path)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	config.file = v.ConfigFileUsed()
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Watch calls onChange for every write to file until the returned watcher is closed.
// The parent directory is watched so files replaced on save are still seen.
func Watch(file string, onChange func(fsnotify.Event)) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	target := filepath.Clean(file)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch config: %w", err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) == target && event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					onChange(event)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logrus.Errorf("Config watcher error: %v", err)
			}
		}
	}()
	return watcher, nil
}

func (c *Config) validate() error {
	if c.Line.ChannelSecret == "" {
		return fmt.Errorf("%w: specify LINE_CHANNEL_SECRET as environment variable", ErrMissingSecret)
	}
	if c.Line.ChannelAccessToken == "" {
		return fmt.Errorf("%w: specify LINE_CHANNEL_ACCESS_TOKEN as environment variable", ErrMissingSecret)
	}
	if err := validator.New().ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

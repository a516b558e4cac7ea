package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/jcdickinson/doclinks/internal/linkurl"
	"github.com/jcdickinson/doclinks/internal/toolchain"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// DefaultOutputName is the options file written under the cache dir when no
// output is configured.
const DefaultOutputName = "javadoc.options"

type LinksConfig struct {
	Default string         `mapstructure:"default"`
	Rules   []linkurl.Rule `mapstructure:"rules"`
}

type FetchConfig struct {
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	UserAgent         string  `mapstructure:"user_agent"`
}

type Config struct {
	CacheDir  string      `mapstructure:"cache_dir"`
	Output    string      `mapstructure:"output"`
	Toolchain string      `mapstructure:"toolchain"`
	Links     LinksConfig `mapstructure:"links"`
	Fetch     FetchConfig `mapstructure:"fetch"`
}

// Resolver builds the link URL resolver described by the links section.
func (c *Config) Resolver() linkurl.Resolver {
	fallback := linkurl.Default
	if c.Links.Default != "" {
		fallback = linkurl.Template(c.Links.Default)
	}
	return linkurl.Rules(c.Links.Rules, fallback)
}

// Timeout returns the per-download timeout.
func (c *Config) Timeout() time.Duration {
	if c.Fetch.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// cacheBase returns the base cache directory for doclinks.
// Checks XDG_CACHE_HOME, then ~/.cache, then /tmp/doclinks as fallback.
func cacheBase() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "doclinks")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "doclinks")
	}
	return filepath.Join(os.TempDir(), "doclinks")
}

// DefaultCacheDir returns the default root of the index cache.
func DefaultCacheDir() string {
	return filepath.Join(cacheBase(), "javadoc-links")
}

func InitializeViper() error {
	viper.Reset()
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		viper.AddConfigPath(filepath.Join(xdg, "doclinks"))
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "doclinks"))
	}

	viper.SetDefault("cache_dir", DefaultCacheDir())
	viper.SetDefault("output", "")
	viper.SetDefault("toolchain", "")
	viper.SetDefault("links.default", linkurl.DefaultTemplate)
	viper.SetDefault("fetch.timeout_seconds", 30)
	viper.SetDefault("fetch.requests_per_second", 0)
	viper.SetDefault("fetch.user_agent", "doclinks/0.1.0")

	viper.SetEnvPrefix("DOCLINKS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

// stringToRuleHookFunc lets a rule be written as a bare template, which
// then applies to every group.
func stringToRuleHookFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(linkurl.Rule{}) {
			return data, nil
		}
		if f.Kind() == reflect.String {
			return linkurl.Rule{Template: data.(string)}, nil
		}
		return data, nil
	}
}

func Load() (*Config, error) {
	if err := InitializeViper(); err != nil {
		return nil, err
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToRuleHookFunc(),
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.CacheDir = expandHome(config.CacheDir)
	config.Output = expandHome(config.Output)
	if config.Output == "" {
		config.Output = filepath.Join(config.CacheDir, DefaultOutputName)
	}
	if config.Toolchain == "" {
		config.Toolchain = detectToolchain()
	}

	return &config, nil
}

// DefaultToolchain is assumed when no toolchain is configured and JAVA_HOME
// does not name a JDK with a readable version.
const DefaultToolchain = "17"

// detectToolchain asks the JDK in JAVA_HOME for its version and assumes
// an LTS release with online linking when there is none.
func detectToolchain() string {
	raw, err := toolchain.Detect(os.Getenv("JAVA_HOME"))
	if err != nil {
		return DefaultToolchain
	}
	if _, err := toolchain.ParseMajor(raw); err != nil {
		return DefaultToolchain
	}
	return raw
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

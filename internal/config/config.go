package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"

	"github.com/forPelevin/projroot/internal/ports/adapters/afsprobe"
	"github.com/forPelevin/projroot/internal/ports/adapters/procenv"
)

// EnvPrefix prefixes every environment variable that overrides a setting,
// e.g. PROJROOT_LOG_LEVEL.
const EnvPrefix = "PROJROOT"

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type Config struct {
	OverrideEnv  string   `mapstructure:"override_env"`
	EditorEnv    []string `mapstructure:"editor_env"`
	ManifestFile string   `mapstructure:"manifest_file"`
	VCSDir       string   `mapstructure:"vcs_dir"`
	IgnoreFile   string   `mapstructure:"ignore_file"`
	LogLevel     string   `mapstructure:"log_level"`
	Format       string   `mapstructure:"format"`
}

type LoadOptions struct {
	// ConfigFile is an optional YAML file. It must exist when set.
	ConfigFile string
	// Getenv replaces os.Getenv when reading PROJROOT_* overrides.
	Getenv func(string) string
}

func Default() Config {
	return Config{
		OverrideEnv:  procenv.DefaultOverrideEnv,
		EditorEnv:    append([]string(nil), procenv.DefaultEditorEnv...),
		ManifestFile: afsprobe.DefaultManifestFile,
		VCSDir:       afsprobe.DefaultVCSDir,
		IgnoreFile:   afsprobe.DefaultIgnoreFile,
		LogLevel:     "warn",
		Format:       FormatText,
	}
}

var keys = []string{
	"override_env",
	"editor_env",
	"manifest_file",
	"vcs_dir",
	"ignore_file",
	"log_level",
	"format",
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("override_env", d.OverrideEnv)
	v.SetDefault("editor_env", d.EditorEnv)
	v.SetDefault("manifest_file", d.ManifestFile)
	v.SetDefault("vcs_dir", d.VCSDir)
	v.SetDefault("ignore_file", d.IgnoreFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("format", d.Format)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	}

	if opts.Getenv != nil {
		for _, k := range keys {
			if val := opts.Getenv(envKey(k)); val != "" {
				v.Set(k, envValue(k, val))
			}
		}
	} else {
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.EditorEnv = splitList(cfg.EditorEnv)
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	return cfg, nil
}

func envKey(k string) string {
	return EnvPrefix + "_" + strings.ToUpper(k)
}

func envValue(k, val string) any {
	if k == "editor_env" {
		return strings.Split(val, ",")
	}
	return val
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (c Config) Validate() error {
	var errs *multierror.Error
	if strings.TrimSpace(c.OverrideEnv) == "" {
		errs = multierror.Append(errs, errors.New("override_env must not be empty"))
	}
	if len(c.EditorEnv) == 0 {
		errs = multierror.Append(errs, errors.New("editor_env must list at least one variable"))
	}
	for _, f := range [][2]string{
		{"manifest_file", c.ManifestFile},
		{"vcs_dir", c.VCSDir},
		{"ignore_file", c.IgnoreFile},
	} {
		if err := validateBaseName(f[0], f[1]); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("log_level %q: %w", c.LogLevel, err))
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		errs = multierror.Append(errs, fmt.Errorf("format %q: must be one of text, json, yaml", c.Format))
	}
	return errs.ErrorOrNil()
}

func validateBaseName(key, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s must not be empty", key)
	}
	if v != filepath.Base(v) || v == "." || v == ".." {
		return fmt.Errorf("%s %q must be a plain file name", key, v)
	}
	return nil
}

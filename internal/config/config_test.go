package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func mapEnv(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoadOptions{Getenv: mapEnv(nil)})
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	cfg, err := Load(LoadOptions{Getenv: mapEnv(map[string]string{
		"PROJROOT_OVERRIDE_ENV":  "MY_ROOT",
		"PROJROOT_EDITOR_ENV":    "TERM_PROGRAM, IDE_PID",
		"PROJROOT_MANIFEST_FILE": "manifest.json",
		"PROJROOT_FORMAT":        "JSON",
		"PROJROOT_LOG_LEVEL":     "debug",
	})})
	require.NoError(t, err)
	require.Equal(t, "MY_ROOT", cfg.OverrideEnv)
	require.Equal(t, []string{"TERM_PROGRAM", "IDE_PID"}, cfg.EditorEnv)
	require.Equal(t, "manifest.json", cfg.ManifestFile)
	require.Equal(t, FormatJSON, cfg.Format)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ProcessEnv(t *testing.T) {
	t.Setenv("PROJROOT_VCS_DIR", ".hg")
	t.Setenv("PROJROOT_IGNORE_FILE", ".hgignore")
	t.Setenv("PROJROOT_EDITOR_ENV", "TERM_PROGRAM, IDE_PID")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	require.Equal(t, ".hg", cfg.VCSDir)
	require.Equal(t, ".hgignore", cfg.IgnoreFile)
	require.Equal(t, []string{"TERM_PROGRAM", "IDE_PID"}, cfg.EditorEnv)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projroot.yaml")
	body := "override_env: ROOT_DIR\neditor_env:\n  - A\n  - B\nformat: yaml\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(LoadOptions{ConfigFile: path, Getenv: mapEnv(map[string]string{
		"PROJROOT_FORMAT": "text",
	})})
	require.NoError(t, err)
	require.Equal(t, "ROOT_DIR", cfg.OverrideEnv)
	require.Equal(t, []string{"A", "B"}, cfg.EditorEnv)
	require.Equal(t, FormatText, cfg.Format, "env wins over the file")
	require.Equal(t, "package.json", cfg.ManifestFile)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "read config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "empty override env",
			mutate:  func(c *Config) { c.OverrideEnv = " " },
			wantErr: []string{"override_env must not be empty"},
		},
		{
			name:    "no editor env",
			mutate:  func(c *Config) { c.EditorEnv = nil },
			wantErr: []string{"editor_env must list at least one variable"},
		},
		{
			name:    "manifest with directory",
			mutate:  func(c *Config) { c.ManifestFile = "sub/package.json" },
			wantErr: []string{`manifest_file "sub/package.json" must be a plain file name`},
		},
		{
			name: "several problems at once",
			mutate: func(c *Config) {
				c.VCSDir = ""
				c.LogLevel = "loud"
				c.Format = "xml"
			},
			wantErr: []string{
				"vcs_dir must not be empty",
				`log_level "loud"`,
				`format "xml": must be one of text, json, yaml`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				require.Contains(t, err.Error(), want)
			}
		})
	}
}

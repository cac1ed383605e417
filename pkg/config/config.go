package config

import (
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"sitemap-reconciler/pkg/models"
)

// Config keys. Each is also read from the upper-cased environment variable,
// e.g. DIST_PATH.
const (
	KeyProjectRoot   = "project_root"
	KeyDistPath      = "dist_path"
	KeyContentPath   = "content_path"
	KeyLanguageFile  = "language_file"
	KeySettingsFile  = "settings_file"
	KeyContentAnchor = "content_anchor"
	KeyConcurrency   = "scan_concurrency"
	KeyDryRun        = "dry_run"
	KeyRouteAliases  = "route_aliases"
	KeyFixedFolders  = "fixed_exclude_folders"
	KeyLogLevel      = "log_level"
	KeyLogFormat     = "log_format"
	KeyVerbose       = "verbose"
	KeyQuiet         = "quiet"
)

// Config holds the settings of a run.
type Config struct {
	ProjectRoot   string
	DistPath      string
	ContentPath   string
	LanguageFile  string
	SettingsFile  string
	ContentAnchor string
	Concurrency   int
	DryRun        bool
	RouteAliases  []models.RouteAlias
	FixedFolders  []string

	LogLevel  string
	LogFormat string

	// ConfigFile is the config file that was read, if any.
	ConfigFile string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyProjectRoot, ".")
	v.SetDefault(KeyDistPath, "dist")
	v.SetDefault(KeyContentPath, filepath.Join("src", "content"))
	v.SetDefault(KeyLanguageFile, filepath.Join("src", "config", "language.json"))
	v.SetDefault(KeySettingsFile, filepath.Join(".astro", "config.generated.json"))
	v.SetDefault(KeyContentAnchor, "content")
	v.SetDefault(KeyConcurrency, 20)
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyLogFormat, "auto")
}

// LoadEnvFiles loads .env and .env.local when present. Variables already
// set in the environment win.
func LoadEnvFiles() {
	for _, f := range []string{".env.local", ".env"} {
		_ = godotenv.Load(f)
	}
}

// Load builds a Config from v. When configFile is empty, a
// .sitemap-reconciler.{yaml,toml,json} in the working directory is used if
// present.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(".sitemap-reconciler")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	cfg := &Config{
		ProjectRoot:   v.GetString(KeyProjectRoot),
		DistPath:      v.GetString(KeyDistPath),
		ContentPath:   v.GetString(KeyContentPath),
		LanguageFile:  v.GetString(KeyLanguageFile),
		SettingsFile:  v.GetString(KeySettingsFile),
		ContentAnchor: v.GetString(KeyContentAnchor),
		Concurrency:   v.GetInt(KeyConcurrency),
		DryRun:        v.GetBool(KeyDryRun),
		LogLevel:      logLevel(v),
		LogFormat:     v.GetString(KeyLogFormat),
		ConfigFile:    v.ConfigFileUsed(),
	}

	if v.IsSet(KeyRouteAliases) {
		if err := v.UnmarshalKey(KeyRouteAliases, &cfg.RouteAliases); err != nil {
			return nil, err
		}
	}
	if v.IsSet(KeyFixedFolders) {
		cfg.FixedFolders = v.GetStringSlice(KeyFixedFolders)
	}
	return cfg, nil
}

// logLevel: an explicit level (--log-level or LOG_LEVEL) wins over --quiet,
// which wins over --verbose.
func logLevel(v *viper.Viper) string {
	if l := v.GetString(KeyLogLevel); l != "" {
		return l
	}
	if v.GetBool(KeyQuiet) {
		return "warn"
	}
	if v.GetBool(KeyVerbose) {
		return "debug"
	}
	return "info"
}

// Path resolves p against the project root unless it is absolute.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectRoot, p)
}

// ContentKey is the forward-slash prefix used for content record keys. It
// stays relative to the project root so keys do not depend on where the
// project is checked out.
func (c *Config) ContentKey() string {
	return filepath.ToSlash(filepath.Clean(c.ContentPath))
}

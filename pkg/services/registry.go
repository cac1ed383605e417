package services

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/viper"

	"sitemap-reconciler/pkg/errors"
	"sitemap-reconciler/pkg/models"
)

// LoadLanguages reads the language registry, a JSON array of
// {languageName, languageCode, contentDir, weight}.
func LoadLanguages(path string) ([]models.LanguageEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewMissingInputError("language registry", path, "")
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var languages []models.LanguageEntry
	if err := json.Unmarshal(data, &languages); err != nil {
		return nil, errors.NewConfigError("language registry", path, "expected a JSON array of languages", err)
	}
	for i, lang := range languages {
		if strings.TrimSpace(lang.LanguageCode) == "" {
			return nil, errors.NewConfigError("language registry", path, "entry without languageCode", nil)
		}
		languages[i].ContentDir = strings.Trim(filepath.ToSlash(lang.ContentDir), "/")
	}
	return languages, nil
}

// LoadSettings reads the generated settings object. JSON is the usual
// format; TOML and YAML files of the same shape are decoded by extension.
func LoadSettings(path string) (models.SiteSettings, error) {
	var settings models.SiteSettings

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return settings, errors.NewMissingInputError("generated settings", path, "generate the site configuration first")
		}
		return settings, errors.WrapIO("stat", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "" {
		v.SetConfigType("json")
	}
	if err := v.ReadInConfig(); err != nil {
		return settings, errors.NewConfigError("generated settings", path, "cannot decode settings", err)
	}
	if err := v.Unmarshal(&settings); err != nil {
		return settings, errors.NewConfigError("generated settings", path, "unexpected settings shape", err)
	}
	return settings, nil
}

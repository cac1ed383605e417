package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitemap-reconciler/pkg/errors"
	"sitemap-reconciler/pkg/models"
)

func TestLoadLanguages(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		file := filepath.Join(dir, "language.json")
		writeFile(t, file, `[{"languageName":"English","languageCode":"en","contentDir":"/english/","weight":1}]`)

		langs, err := LoadLanguages(file)
		require.NoError(t, err)
		assert.Equal(t, []models.LanguageEntry{
			{LanguageName: "English", LanguageCode: "en", ContentDir: "english", Weight: 1},
		}, langs)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadLanguages(filepath.Join(dir, "nope.json"))
		assert.True(t, errors.IsMissingInput(err))
	})

	t.Run("not an array", func(t *testing.T) {
		file := filepath.Join(dir, "object.json")
		writeFile(t, file, `{"en": "english"}`)

		_, err := LoadLanguages(file)
		assert.ErrorIs(t, err, errors.ErrInvalidConfig)
	})

	t.Run("missing code", func(t *testing.T) {
		file := filepath.Join(dir, "nocode.json")
		writeFile(t, file, `[{"contentDir":"english"}]`)

		_, err := LoadLanguages(file)
		assert.ErrorIs(t, err, errors.ErrInvalidConfig)
	})
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		file := filepath.Join(dir, "config.generated.json")
		writeFile(t, file, `{"settings":{"multilingual":{"defaultLanguage":"fr","showDefaultLangInUrl":true}},"seo":{"sitemap":{"exclude":["tags","categories"]}}}`)

		s, err := LoadSettings(file)
		require.NoError(t, err)
		assert.Equal(t, "fr", s.Settings.Multilingual.DefaultLanguage)
		assert.True(t, s.Settings.Multilingual.ShowDefaultLangInURL)
		assert.Equal(t, []string{"tags", "categories"}, s.SEO.Sitemap.Exclude)
	})

	t.Run("toml", func(t *testing.T) {
		file := filepath.Join(dir, "settings.toml")
		writeFile(t, file, "[settings.multilingual]\ndefaultLanguage = \"en\"\n\n[seo.sitemap]\nexclude = [\"tags\"]\n")

		s, err := LoadSettings(file)
		require.NoError(t, err)
		assert.Equal(t, "en", s.Settings.Multilingual.DefaultLanguage)
		assert.False(t, s.Settings.Multilingual.ShowDefaultLangInURL)
		assert.Equal(t, []string{"tags"}, s.SEO.Sitemap.Exclude)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadSettings(filepath.Join(dir, "nope.json"))
		assert.True(t, errors.IsMissingInput(err))
	})

	t.Run("invalid", func(t *testing.T) {
		file := filepath.Join(dir, "broken.json")
		writeFile(t, file, `{"settings":`)

		_, err := LoadSettings(file)
		assert.ErrorIs(t, err, errors.ErrInvalidConfig)
	})
}

package models

// LanguageEntry is one locale of the language registry.
type LanguageEntry struct {
	LanguageName string `json:"languageName" yaml:"languageName" toml:"languageName"`
	LanguageCode string `json:"languageCode" yaml:"languageCode" toml:"languageCode"`
	ContentDir   string `json:"contentDir" yaml:"contentDir" toml:"contentDir"`
	Weight       int    `json:"weight" yaml:"weight" toml:"weight"`
}

// MultilingualSettings is the routing configuration the resolver works against.
type MultilingualSettings struct {
	DefaultLanguage      string
	ShowDefaultLangInURL bool
	Languages            []LanguageEntry
}

// SiteSettings is the subset of the generated settings object the reconciler reads.
type SiteSettings struct {
	Settings struct {
		Multilingual struct {
			DefaultLanguage      string `json:"defaultLanguage" mapstructure:"defaultLanguage"`
			ShowDefaultLangInURL bool   `json:"showDefaultLangInUrl" mapstructure:"showDefaultLangInUrl"`
		} `json:"multilingual" mapstructure:"multilingual"`
	} `json:"settings" mapstructure:"settings"`
	SEO struct {
		Sitemap struct {
			Exclude []string `json:"exclude" mapstructure:"exclude"`
		} `json:"sitemap" mapstructure:"sitemap"`
	} `json:"seo" mapstructure:"seo"`
}

// Multilingual combines the settings object with the language registry.
func (s SiteSettings) Multilingual(languages []LanguageEntry) MultilingualSettings {
	langs := make([]LanguageEntry, len(languages))
	copy(langs, languages)
	return MultilingualSettings{
		DefaultLanguage:      s.Settings.Multilingual.DefaultLanguage,
		ShowDefaultLangInURL: s.Settings.Multilingual.ShowDefaultLangInURL,
		Languages:            langs,
	}
}

// RouteAlias is a cosmetic rewrite applied to resolved URLs before they become
// exclusion fragments, e.g. a "pages" section served from the site root.
type RouteAlias struct {
	From string `json:"from" mapstructure:"from"`
	To   string `json:"to" mapstructure:"to"`
}

// DefaultRouteAliases mirror the routing conventions of the site generator.
func DefaultRouteAliases() []RouteAlias {
	return []RouteAlias{
		{From: "/pages/", To: "/"},
		{From: "/homepage", To: "/"},
	}
}

// DefaultExcludedFolders are administrative sections that are never public.
func DefaultExcludedFolders() []string {
	return []string{"widgets", "sections", "author"}
}

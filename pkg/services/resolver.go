package services

import (
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"sitemap-reconciler/pkg/models"
)

// DefaultContentAnchor is the path segment the section is taken after.
const DefaultContentAnchor = "content"

// IndexMarker is the base name of a section root page.
const IndexMarker = "-index"

var repeatedSlashes = regexp.MustCompile(`/+`)

// Resolver computes the public URL of a content file.
type Resolver struct {
	Settings models.MultilingualSettings
	// Anchor is the directory segment the section follows; DefaultContentAnchor if empty.
	Anchor string
}

// NewResolver creates a Resolver for the given settings.
func NewResolver(settings models.MultilingualSettings, anchor string) *Resolver {
	if anchor == "" {
		anchor = DefaultContentAnchor
	}
	return &Resolver{Settings: settings, Anchor: anchor}
}

// Language returns the first configured language whose content directory
// is a directory segment of p.
func (r *Resolver) Language(p string) (models.LanguageEntry, bool) {
	padded := "/" + strings.Trim(path.Dir(p), "/") + "/"
	for _, lang := range r.Settings.Languages {
		dir := strings.Trim(lang.ContentDir, "/")
		if dir == "" {
			continue
		}
		if strings.Contains(padded, "/"+dir+"/") {
			return lang, true
		}
	}
	return models.LanguageEntry{}, false
}

// Section returns the directory segment right after the last anchor segment.
func (r *Resolver) Section(p string) string {
	anchor := r.Anchor
	if anchor == "" {
		anchor = DefaultContentAnchor
	}
	parts := strings.Split(p, "/")
	dirs := parts[:len(parts)-1]
	for i := len(dirs) - 1; i >= 0; i-- {
		if dirs[i] == anchor {
			if i+1 < len(dirs) {
				return dirs[i+1]
			}
			return ""
		}
	}
	return ""
}

// Slug returns the section-relative path of p: section/slug, or the
// section alone for an index page.
func (r *Resolver) Slug(p string, rec models.ContentRecord) string {
	base := path.Base(p)
	fileName := strings.TrimSuffix(base, path.Ext(base))
	section := r.Section(p)
	if fileName == IndexMarker {
		return section
	}
	slug := rec.OriginalSlug
	if slug == "" {
		slug = fileName
	}
	return collapseSlashes(section + "/" + slug)
}

// Resolve returns the canonical URL of the file at p. The second result is
// false when the file belongs to no configured language.
func (r *Resolver) Resolve(p string, rec models.ContentRecord) (string, bool) {
	p = NormalizeKey(p)
	lang, ok := r.Language(p)
	if !ok {
		return "", false
	}

	slug := r.Slug(p, rec)
	var url string
	if lang.LanguageCode == r.Settings.DefaultLanguage && !r.Settings.ShowDefaultLangInURL {
		url = "/" + slug
	} else {
		url = "/" + lang.LanguageCode + "/" + slug
	}
	return norm.NFC.String(collapseSlashes(url)), true
}

func collapseSlashes(s string) string {
	return repeatedSlashes.ReplaceAllString(s, "/")
}

package models

// ContentRecord represents a content file discovered by the scanner.
type ContentRecord struct {
	Path               string `json:"path"` // forward-slash, unique key
	ExcludeFromSitemap bool   `json:"excludeFromSitemap"`
	Draft              bool   `json:"draft"`
	OriginalSlug       string `json:"originalSlug,omitempty"` // from the "id" metadata key
	CustomSlug         string `json:"customSlug,omitempty"`
}

// Suppressed reports whether the record must not appear in any sitemap.
func (r ContentRecord) Suppressed() bool {
	return r.Draft || r.ExcludeFromSitemap
}

// ContentMap maps a normalized path to its record.
type ContentMap map[string]ContentRecord

package models

import "strings"

// URLEntry is one <url> element of a sitemap.
type URLEntry struct {
	Loc     string // decoded <loc> text
	Raw     []byte // verbatim <url>...</url> bytes
	Leading []byte // bytes between the previous entry and this one
}

// SitemapDocument is a parsed sitemap-<N>.xml file.
type SitemapDocument struct {
	Path     string
	Prolog   []byte // everything before the first entry
	Epilogue []byte // everything after the last entry
	Entries  []URLEntry
}

// ExclusionSet holds URL fragments; a pathname is excluded when it contains any of them.
type ExclusionSet struct {
	seen      map[string]struct{}
	fragments []string
}

// NewExclusionSet creates a set holding the given fragments.
func NewExclusionSet(fragments ...string) *ExclusionSet {
	s := &ExclusionSet{seen: make(map[string]struct{})}
	for _, f := range fragments {
		s.Add(f)
	}
	return s
}

// Add inserts a fragment. Empty fragments would match every pathname and are ignored.
func (s *ExclusionSet) Add(fragment string) bool {
	if fragment == "" {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[fragment]; ok {
		return false
	}
	s.seen[fragment] = struct{}{}
	s.fragments = append(s.fragments, fragment)
	return true
}

// Len returns the number of fragments.
func (s *ExclusionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fragments)
}

// Fragments returns the fragments in insertion order.
func (s *ExclusionSet) Fragments() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.fragments))
	copy(out, s.fragments)
	return out
}

// Match returns the first fragment contained in pathname.
func (s *ExclusionSet) Match(pathname string) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, f := range s.fragments {
		if strings.Contains(pathname, f) {
			return f, true
		}
	}
	return "", false
}

// SitemapReport summarizes what happened to one sitemap file.
type SitemapReport struct {
	Path    string   `json:"path"`
	Total   int      `json:"total"`
	Kept    int      `json:"kept"`
	Removed []string `json:"removed,omitempty"`
	Skipped bool     `json:"skipped,omitempty"` // no <url> entries, left untouched
}

// RunReport summarizes a reconciliation run.
type RunReport struct {
	ContentFiles int             `json:"contentFiles"`
	Exclusions   int             `json:"exclusions"`
	DryRun       bool            `json:"dryRun"`
	Sitemaps     []SitemapReport `json:"sitemaps"`
}

// RemovedCount returns the number of entries removed across all sitemaps.
func (r RunReport) RemovedCount() int {
	n := 0
	for _, s := range r.Sitemaps {
		n += len(s.Removed)
	}
	return n
}

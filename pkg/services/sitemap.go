package services

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"sitemap-reconciler/pkg/errors"
	"sitemap-reconciler/pkg/models"
)

// SitemapFilePattern matches the generated sitemap shards. The sitemap
// index is deliberately not matched.
var SitemapFilePattern = regexp.MustCompile(`^sitemap-\d+\.xml$`)

// dummyOrigin resolves same-origin relative locations.
var dummyOrigin = &url.URL{Scheme: "https", Host: "example.com", Path: "/"}

// DiscoverSitemaps lists the sitemap shards directly under dist, sorted by name.
func DiscoverSitemaps(dist string) ([]string, error) {
	entries, err := os.ReadDir(dist)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewMissingInputError("build output directory", dist, "run the site build first")
		}
		return nil, errors.WrapIO("read", dist, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !SitemapFilePattern.MatchString(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dist, e.Name()))
	}
	return files, nil
}

// ParseSitemap splits a sitemap into its <url> entries, keeping the raw
// bytes of each entry and of the surrounding document. Any XML syntax
// error is reported as a MalformedSitemapError.
func ParseSitemap(path string, data []byte) (*models.SitemapDocument, error) {
	doc := &models.SitemapDocument{Path: path}
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		root       string
		depth      int
		inURL      bool
		inLoc      bool
		locDone    bool
		loc        strings.Builder
		entryStart int64
		prevEnd    int64 = -1
		firstStart int64 = -1
	)

	for {
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewMalformedSitemapError(path, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case depth == 1:
				root = t.Name.Local
			case depth == 2 && root == "urlset" && t.Name.Local == "url":
				inURL, locDone = true, false
				loc.Reset()
				entryStart = start
			case depth == 3 && inURL && !locDone && t.Name.Local == "loc":
				inLoc = true
			}
		case xml.EndElement:
			switch {
			case depth == 3 && inLoc:
				inLoc, locDone = false, true
			case depth == 2 && inURL:
				end := dec.InputOffset()
				entry := models.URLEntry{
					Loc: strings.TrimSpace(loc.String()),
					Raw: data[entryStart:end],
				}
				if prevEnd >= 0 {
					entry.Leading = data[prevEnd:entryStart]
				} else {
					firstStart = entryStart
				}
				doc.Entries = append(doc.Entries, entry)
				prevEnd = end
				inURL = false
			}
			depth--
		case xml.CharData:
			if inLoc {
				loc.Write(t)
			}
		}
	}

	if root == "" {
		return nil, errors.NewMalformedSitemapError(path, fmt.Errorf("no root element"))
	}
	if depth != 0 {
		return nil, errors.NewMalformedSitemapError(path, io.ErrUnexpectedEOF)
	}

	if len(doc.Entries) == 0 {
		doc.Prolog = data
		return doc, nil
	}
	doc.Prolog = data[:firstStart]
	doc.Epilogue = data[prevEnd:]
	return doc, nil
}

// Pathnames returns the escaped and the decoded pathname of a sitemap
// location. Relative locations are resolved against a dummy origin. The
// second result is false when loc cannot be parsed.
func Pathnames(loc string) ([]string, bool) {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return nil, false
	}
	u, err := url.Parse(loc)
	if err != nil {
		return nil, false
	}
	if !u.IsAbs() {
		u = dummyOrigin.ResolveReference(u)
	}

	escaped := u.EscapedPath()
	if escaped == "" {
		escaped = "/"
	}
	decoded := norm.NFC.String(u.Path)
	if decoded == "" {
		decoded = "/"
	}
	if escaped == decoded {
		return []string{escaped}, true
	}
	return []string{escaped, decoded}, true
}

// Filter decides which sitemap entries survive.
type Filter struct {
	Folders    []string
	Exclusions *models.ExclusionSet
}

// Keep reports whether an entry with the given location is retained, and
// if not, why. Locations that cannot be parsed are always retained.
func (f Filter) Keep(loc string) (bool, string) {
	paths, ok := Pathnames(loc)
	if !ok {
		return true, ""
	}
	for _, p := range paths {
		if strings.Contains(p, IndexMarker) {
			return false, "index page"
		}
		for _, folder := range f.Folders {
			if folder != "" && strings.Contains(p, folder) {
				return false, "excluded folder " + folder
			}
		}
		if frag, hit := f.Exclusions.Match(p); hit {
			return false, "draft or excluded " + frag
		}
	}
	return true, ""
}

// Apply splits the document entries into kept entries and removed locations.
// Order of the kept entries is preserved.
func (f Filter) Apply(doc *models.SitemapDocument) ([]models.URLEntry, []string) {
	kept := make([]models.URLEntry, 0, len(doc.Entries))
	var removed []string
	for _, e := range doc.Entries {
		if ok, _ := f.Keep(e.Loc); ok {
			kept = append(kept, e)
			continue
		}
		removed = append(removed, e.Loc)
	}
	return kept, removed
}

// RenderSitemap reassembles a document from its kept entries and strips
// whitespace-only text between tags.
func RenderSitemap(doc *models.SitemapDocument, kept []models.URLEntry) []byte {
	var buf bytes.Buffer
	buf.Write(doc.Prolog)
	for i, e := range kept {
		if i > 0 {
			buf.Write(e.Leading)
		}
		buf.Write(e.Raw)
	}
	buf.Write(doc.Epilogue)
	return MinifyXML(buf.Bytes())
}

// MinifyXML removes whitespace-only text nodes. Text with any other
// character, tags and attributes are copied unchanged. Input that does not
// tokenize is returned as is.
func MinifyXML(data []byte) []byte {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out bytes.Buffer
	out.Grow(len(data))

	var last int64
	for {
		start := dec.InputOffset()
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return data
		}
		if _, ok := tok.(xml.CharData); !ok {
			continue
		}
		end := dec.InputOffset()
		if len(bytes.TrimSpace(data[start:end])) == 0 {
			out.Write(data[last:start])
			last = end
		}
	}
	out.Write(data[last:])
	return out.Bytes()
}

// WriteFileAtomic replaces path with data through a temporary file in the
// same directory, keeping the original file mode.
func WriteFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", path, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("move", path, err)
	}
	return nil
}

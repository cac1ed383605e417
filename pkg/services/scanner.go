package services

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"sitemap-reconciler/pkg/errors"
	"sitemap-reconciler/pkg/models"
)

// DefaultScanConcurrency bounds parallel metadata reads.
const DefaultScanConcurrency = 20

// contentExtensions are the markdown-family extensions the scanner reads.
var contentExtensions = map[string]bool{
	".md":  true,
	".mdx": true,
}

// ContentFile is a content file found by WalkContent.
type ContentFile struct {
	FullPath string // host path used for reading
	Key      string // forward-slash, NFC key used for matching
}

// ScanOptions configures ScanContent.
type ScanOptions struct {
	// KeyPrefix is joined in front of the path relative to the content root
	// to form the record key, e.g. "src/content".
	KeyPrefix   string
	Concurrency int
	Logger      zerolog.Logger
	// ReadFile defaults to os.ReadFile.
	ReadFile func(string) ([]byte, error)
}

// IsContentFile reports whether name has a markdown-family extension.
func IsContentFile(name string) bool {
	return contentExtensions[strings.ToLower(filepath.Ext(name))]
}

// NormalizeKey turns a host path into a forward-slash NFC string.
func NormalizeKey(p string) string {
	return norm.NFC.String(filepath.ToSlash(p))
}

// WalkContent lazily yields every content file under root. Non-content
// files are skipped. A traversal error is yielded once and ends the walk.
func WalkContent(root, keyPrefix string) iter.Seq2[ContentFile, error] {
	return func(yield func(ContentFile, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				yield(ContentFile{FullPath: path}, err)
				return filepath.SkipAll
			}
			if d.IsDir() || !d.Type().IsRegular() || !IsContentFile(d.Name()) {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				rel = path
			}
			file := ContentFile{
				FullPath: path,
				Key:      NormalizeKey(filepath.Join(keyPrefix, rel)),
			}
			if !yield(file, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// ScanContent reads the metadata of every content file under root.
// A missing root yields an empty map. Files whose metadata cannot be
// parsed or read are logged and left out.
func ScanContent(ctx context.Context, root string, opts ScanOptions) (models.ContentMap, error) {
	log := opts.Logger
	content := models.ContentMap{}

	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", root).Msg("Content directory not found, no content to reconcile")
			return content, nil
		}
		return nil, errors.WrapIO("stat", root, err)
	}

	readFile := opts.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultScanConcurrency
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for file, err := range WalkContent(root, opts.KeyPrefix) {
		if err != nil {
			_ = g.Wait()
			return nil, errors.WrapIO("walk", file.FullPath, err)
		}
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			rec, err := parseContentFile(file, readFile)
			if err != nil {
				log.Warn().Err(err).Str("file", file.Key).Msg("Skipping content file")
				return nil
			}
			mu.Lock()
			content[rec.Path] = rec
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Debug().Int("files", len(content)).Str("path", root).Msg("Scanned content")
	return content, nil
}

// parseContentFile reads one file and maps its metadata onto a record.
func parseContentFile(file ContentFile, readFile func(string) ([]byte, error)) (models.ContentRecord, error) {
	data, err := readFile(file.FullPath)
	if err != nil {
		return models.ContentRecord{}, errors.WrapIO("read", file.Key, err)
	}
	fm, _, format, err := ParseFrontMatter(data)
	if err != nil {
		return models.ContentRecord{}, &errors.MalformedContentError{Path: file.Key, Format: format, Err: err}
	}
	return RecordFromFrontMatter(file.Key, fm), nil
}

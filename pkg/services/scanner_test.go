package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitemap-reconciler/pkg/logging"
	"sitemap-reconciler/pkg/models"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWalkContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "blog", "english", "a.md"), "")
	writeFile(t, filepath.Join(root, "blog", "english", "b.MDX"), "")
	writeFile(t, filepath.Join(root, "blog", "english", "notes.txt"), "")
	writeFile(t, filepath.Join(root, "docs", "french", "deep", "c.md"), "")
	writeFile(t, filepath.Join(root, "images", "logo.png"), "")

	var keys []string
	for file, err := range WalkContent(root, "src/content") {
		require.NoError(t, err)
		keys = append(keys, file.Key)
	}

	assert.ElementsMatch(t, []string{
		"src/content/blog/english/a.md",
		"src/content/blog/english/b.MDX",
		"src/content/docs/french/deep/c.md",
	}, keys)
}

func TestWalkContent_StopsEarly(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.md", "b.md", "c.md"} {
		writeFile(t, filepath.Join(root, name), "")
	}

	n := 0
	for range WalkContent(root, "") {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestScanContent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "src", "content")
	writeFile(t, filepath.Join(root, "blog", "english", "a.md"), "---\ndraft: true\nid: alpha\n---\nbody\n")
	writeFile(t, filepath.Join(root, "blog", "english", "b.mdx"), "+++\nexcludeFromSitemap = true\ncustomSlug = \"/x\"\n+++\n")
	writeFile(t, filepath.Join(root, "blog", "english", "c.md"), "no metadata at all\n")
	writeFile(t, filepath.Join(root, "blog", "english", "bad.md"), "---\ndraft: [unclosed\n---\n")
	writeFile(t, filepath.Join(root, "blog", "english", "skip.json"), "{}")

	var logs bytes.Buffer
	content, err := ScanContent(context.Background(), root, ScanOptions{
		KeyPrefix:   "src/content",
		Concurrency: 2,
		Logger:      logging.NewWriter(&logs, "debug"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.ContentMap{
		"src/content/blog/english/a.md": {
			Path:         "src/content/blog/english/a.md",
			Draft:        true,
			OriginalSlug: "alpha",
		},
		"src/content/blog/english/b.mdx": {
			Path:               "src/content/blog/english/b.mdx",
			ExcludeFromSitemap: true,
			CustomSlug:         "/x",
		},
		"src/content/blog/english/c.md": {
			Path: "src/content/blog/english/c.md",
		},
	}, content)

	assert.Contains(t, logs.String(), "src/content/blog/english/bad.md")
	assert.Contains(t, logs.String(), "Skipping content file")
}

func TestScanContent_MissingRoot(t *testing.T) {
	var logs bytes.Buffer
	content, err := ScanContent(context.Background(), filepath.Join(t.TempDir(), "nope"), ScanOptions{
		Logger: logging.NewWriter(&logs, "info"),
	})

	require.NoError(t, err)
	assert.Empty(t, content)
	assert.Contains(t, logs.String(), "Content directory not found")
}

func TestScanContent_UnreadableFileIsSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.md"), "---\ndraft: false\n---\n")
	writeFile(t, filepath.Join(root, "broken.md"), "")

	content, err := ScanContent(context.Background(), root, ScanOptions{
		KeyPrefix: "content",
		Logger:    logging.Nop,
		ReadFile: func(p string) ([]byte, error) {
			if filepath.Base(p) == "broken.md" {
				return nil, os.ErrPermission
			}
			return os.ReadFile(p)
		},
	})

	require.NoError(t, err)
	assert.Len(t, content, 1)
	assert.Contains(t, content, "content/ok.md")
}

func TestNormalizeKey(t *testing.T) {
	// NFD "é" from macOS file systems becomes NFC.
	assert.Equal(t, "content/blog/caf\u00e9.md", NormalizeKey("content/blog/cafe\u0301.md"))
	assert.Equal(t, "a/b/c.md", NormalizeKey(filepath.Join("a", "b", "c.md")))
}

func TestIsContentFile(t *testing.T) {
	assert.True(t, IsContentFile("post.md"))
	assert.True(t, IsContentFile("post.MDX"))
	assert.False(t, IsContentFile("post.markdown"))
	assert.False(t, IsContentFile("md"))
}

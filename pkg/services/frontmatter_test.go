package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontMatter(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  string
		body    string
		want    map[string]interface{}
	}{
		{
			name:    "yaml",
			content: "---\ntitle: Hello\ndraft: true\n---\n\nBody text\n",
			format:  FormatYAML,
			body:    "Body text",
			want:    map[string]interface{}{"title": "Hello", "draft": true},
		},
		{
			name:    "yaml with crlf and bom",
			content: "\xEF\xBB\xBF---\r\nid: first\r\n---\r\nBody\r\n",
			format:  FormatYAML,
			body:    "Body",
			want:    map[string]interface{}{"id": "first"},
		},
		{
			name:    "yaml value containing dashes",
			content: "---\ntitle: a --- b\n---\nrest",
			format:  FormatYAML,
			body:    "rest",
			want:    map[string]interface{}{"title": "a --- b"},
		},
		{
			name:    "empty yaml block",
			content: "---\n---\nBody",
			format:  FormatYAML,
			body:    "Body",
			want:    map[string]interface{}{},
		},
		{
			name:    "toml",
			content: "+++\ntitle = \"Hello\"\nexcludeFromSitemap = true\n+++\nBody",
			format:  FormatTOML,
			body:    "Body",
			want:    map[string]interface{}{"title": "Hello", "excludeFromSitemap": true},
		},
		{
			name:    "json",
			content: "{\n  \"draft\": false,\n  \"customSlug\": \"/x\"\n}\nBody",
			format:  FormatJSON,
			want:    map[string]interface{}{"draft": false, "customSlug": "/x"},
		},
		{
			name:    "no front matter",
			content: "# Just a heading\n",
			format:  FormatNone,
			body:    "# Just a heading",
			want:    map[string]interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, format, err := ParseFrontMatter([]byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.body, body)
			assert.Equal(t, tt.want, fm)
		})
	}
}

func TestParseFrontMatter_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  string
	}{
		{"unterminated yaml", "---\ndraft: true\nno closing delimiter\n", FormatYAML},
		{"invalid yaml", "---\ndraft: [unclosed\n---\n", FormatYAML},
		{"yaml scalar", "---\njust text\n---\n", FormatYAML},
		{"invalid toml", "+++\ndraft = \n+++\n", FormatTOML},
		{"invalid json", "{\"draft\": tru}\n", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, format, err := ParseFrontMatter([]byte(tt.content))
			assert.Error(t, err)
			assert.Equal(t, tt.format, format)
		})
	}
}

func TestRecordFromFrontMatter(t *testing.T) {
	rec := RecordFromFrontMatter("src/content/blog/english/post.md", map[string]interface{}{
		"draft":              "true",
		"excludeFromSitemap": 0,
		"id":                 "original",
		"customSlug":         "/custom",
	})

	assert.Equal(t, "src/content/blog/english/post.md", rec.Path)
	assert.True(t, rec.Draft)
	assert.False(t, rec.ExcludeFromSitemap)
	assert.Equal(t, "original", rec.OriginalSlug)
	assert.Equal(t, "/custom", rec.CustomSlug)
	assert.True(t, rec.Suppressed())
}

func TestRecordFromFrontMatter_Defaults(t *testing.T) {
	rec := RecordFromFrontMatter("a.md", map[string]interface{}{
		"id":         42,
		"customSlug": []interface{}{"/x"},
	})

	assert.False(t, rec.Draft)
	assert.False(t, rec.ExcludeFromSitemap)
	assert.Empty(t, rec.OriginalSlug)
	assert.Empty(t, rec.CustomSlug)
	assert.False(t, rec.Suppressed())
}

func TestRecordFromFrontMatter_Flags(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"yaml true", "---\ndraft: true\n---\n", true},
		{"yaml false", "---\ndraft: false\n---\n", false},
		{"quoted false", "---\ndraft: \"false\"\n---\n", false},
		{"zero", "---\ndraft: 0\n---\n", false},
		{"one", "---\ndraft: 1\n---\n", true},
		{"yes", "---\ndraft: yes\n---\n", true},
		{"quoted yes", "---\ndraft: \"yes\"\n---\n", true},
		{"on", "---\ndraft: \"on\"\n---\n", true},
		{"free text", "---\ndraft: draft\n---\n", true},
		{"empty string", "---\ndraft: \"\"\n---\n", false},
		{"null", "---\ndraft:\n---\n", false},
		{"list", "---\ndraft: [a]\n---\n", true},
		{"toml string", "+++\ndraft = \"maybe\"\n+++\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, _, _, err := ParseFrontMatter([]byte(tt.content))
			require.NoError(t, err)

			rec := RecordFromFrontMatter("a.md", fm)
			assert.Equal(t, tt.want, rec.Draft)
		})
	}
}

package services

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"sitemap-reconciler/pkg/models"
)

// Front matter formats.
const (
	FormatNone = ""
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseFrontMatter extracts the metadata block at the top of a content file.
// It returns the metadata, the remaining body and the detected format.
// A file without a metadata block yields empty metadata and FormatNone.
func ParseFrontMatter(content []byte) (map[string]interface{}, string, string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	str := strings.ReplaceAll(string(content), "\r\n", "\n")

	switch {
	case isDelimiterLine(firstLine(str), "---"):
		block, body, err := splitFrontMatter(str, "---")
		if err != nil {
			return nil, "", FormatYAML, err
		}
		fm := map[string]interface{}{}
		if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
			return nil, "", FormatYAML, err
		}
		return sanitizeFrontMatter(fm), body, FormatYAML, nil

	case isDelimiterLine(firstLine(str), "+++"):
		block, body, err := splitFrontMatter(str, "+++")
		if err != nil {
			return nil, "", FormatTOML, err
		}
		fm := map[string]interface{}{}
		if err := toml.Unmarshal([]byte(block), &fm); err != nil {
			return nil, "", FormatTOML, err
		}
		return sanitizeFrontMatter(fm), body, FormatTOML, nil

	case strings.HasPrefix(strings.TrimSpace(str), "{"):
		// JSON front matter is a single object; only the metadata is returned.
		dec := json.NewDecoder(strings.NewReader(str))
		fm := map[string]interface{}{}
		if err := dec.Decode(&fm); err != nil {
			return nil, "", FormatJSON, err
		}
		return sanitizeFrontMatter(fm), "", FormatJSON, nil
	}

	return map[string]interface{}{}, strings.TrimSpace(str), FormatNone, nil
}

// RecordFromFrontMatter maps metadata keys onto a ContentRecord.
func RecordFromFrontMatter(path string, fm map[string]interface{}) models.ContentRecord {
	rec := models.ContentRecord{
		Path:               path,
		Draft:              toBool(fm["draft"]),
		ExcludeFromSitemap: toBool(fm["excludeFromSitemap"]),
	}
	if id, ok := fm["id"].(string); ok {
		rec.OriginalSlug = id
	}
	if slug, ok := fm["customSlug"].(string); ok {
		rec.CustomSlug = slug
	}
	return rec
}

// toBool coerces loosely typed metadata. Values cast can read ("true",
// "false", 1, 0) keep their meaning; anything else counts as set when it is
// non-empty, so an unusual spelling such as "yes" still marks a page.
func toBool(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, err := cast.ToBoolE(v); err == nil {
		return b
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func isDelimiterLine(line, delim string) bool {
	return strings.TrimRight(line, " \t") == delim
}

// splitFrontMatter returns the text between the opening delimiter line and
// the next line consisting of the same delimiter, and the body after it.
func splitFrontMatter(str, delim string) (string, string, error) {
	sc := bufio.NewScanner(strings.NewReader(str))
	sc.Buffer(make([]byte, 0, 64*1024), len(str)+1)

	var block strings.Builder
	offset := 0
	first := true
	for sc.Scan() {
		line := sc.Text()
		offset += len(line) + 1
		if first {
			first = false
			continue
		}
		if isDelimiterLine(line, delim) {
			body := ""
			if offset < len(str) {
				body = str[offset:]
			}
			return block.String(), strings.TrimSpace(body), nil
		}
		block.WriteString(line)
		block.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return "", "", err
	}
	return "", "", fmt.Errorf("unterminated front matter: missing closing %q", delim)
}

func sanitizeFrontMatter(fm map[string]interface{}) map[string]interface{} {
	if fm == nil {
		return map[string]interface{}{}
	}
	sanitized := make(map[string]interface{}, len(fm))
	for k, v := range fm {
		sanitized[k] = sanitizeFrontMatterValue(v)
	}
	return sanitized
}

func sanitizeFrontMatterValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return sanitizeFrontMatter(v)
	case map[interface{}]interface{}:
		normalized := make(map[string]interface{}, len(v))
		for key, inner := range v {
			normalized[fmt.Sprint(key)] = sanitizeFrontMatterValue(inner)
		}
		return normalized
	case []interface{}:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = sanitizeFrontMatterValue(v[i])
		}
		return slice
	default:
		return v
	}
}

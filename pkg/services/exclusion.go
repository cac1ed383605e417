package services

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"sitemap-reconciler/pkg/models"
)

// ExcludedFolders unions the fixed administrative folders with the
// configured seo.sitemap.exclude list. Order is kept, blanks and
// duplicates are dropped.
func ExcludedFolders(settings models.SiteSettings, fixed []string) []string {
	all := append(slices.Clone(fixed), settings.SEO.Sitemap.Exclude...)
	all = lo.Map(all, func(f string, _ int) string { return strings.TrimSpace(f) })
	return lo.Uniq(lo.Compact(all))
}

// ApplyRouteAliases rewrites the first occurrence of each alias, in order.
func ApplyRouteAliases(url string, aliases []models.RouteAlias) string {
	for _, a := range aliases {
		if a.From == "" {
			continue
		}
		url = strings.Replace(url, a.From, a.To, 1)
	}
	return url
}

// BuildExclusionSet collects the fragments of every draft or excluded
// record. A record's customSlug is used verbatim; otherwise its resolved
// URL after route aliasing. Records that do not resolve contribute nothing.
func BuildExclusionSet(content models.ContentMap, resolver *Resolver, aliases []models.RouteAlias) *models.ExclusionSet {
	set := models.NewExclusionSet()

	keys := lo.Keys(content)
	slices.Sort(keys)

	for _, key := range keys {
		rec := content[key]
		if !rec.Suppressed() {
			continue
		}
		url, ok := resolver.Resolve(key, rec)
		if !ok {
			continue
		}
		if rec.CustomSlug != "" {
			set.Add(rec.CustomSlug)
			continue
		}
		set.Add(ApplyRouteAliases(url, aliases))
	}
	return set
}

package services

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"sitemap-reconciler/pkg/errors"
	"sitemap-reconciler/pkg/models"
)

// Options describes one reconciliation run. Paths are used as given.
type Options struct {
	DistPath      string
	ContentPath   string
	ContentKey    string // key prefix for scanned files, defaults to ContentPath
	LanguageFile  string
	SettingsFile  string
	ContentAnchor string
	FixedFolders  []string
	RouteAliases  []models.RouteAlias
	Concurrency   int
	DryRun        bool
	Logger        zerolog.Logger
}

// Plan is everything derived from the content tree and configuration,
// before any sitemap is touched.
type Plan struct {
	Content    models.ContentMap
	Resolver   *Resolver
	Folders    []string
	Exclusions *models.ExclusionSet
}

// Filter returns the sitemap filter for the plan.
func (p *Plan) Filter() Filter {
	return Filter{Folders: p.Folders, Exclusions: p.Exclusions}
}

// BuildPlan loads the registry and settings, scans the content tree and
// derives the exclusion rules.
func BuildPlan(ctx context.Context, opts Options) (*Plan, error) {
	languages, err := LoadLanguages(opts.LanguageFile)
	if err != nil {
		return nil, err
	}
	settings, err := LoadSettings(opts.SettingsFile)
	if err != nil {
		return nil, err
	}

	key := opts.ContentKey
	if key == "" {
		key = opts.ContentPath
	}
	content, err := ScanContent(ctx, opts.ContentPath, ScanOptions{
		KeyPrefix:   key,
		Concurrency: opts.Concurrency,
		Logger:      opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	fixed := opts.FixedFolders
	if fixed == nil {
		fixed = models.DefaultExcludedFolders()
	}
	aliases := opts.RouteAliases
	if aliases == nil {
		aliases = models.DefaultRouteAliases()
	}

	resolver := NewResolver(settings.Multilingual(languages), opts.ContentAnchor)
	return &Plan{
		Content:    content,
		Resolver:   resolver,
		Folders:    ExcludedFolders(settings, fixed),
		Exclusions: BuildExclusionSet(content, resolver, aliases),
	}, nil
}

// Reconcile rewrites every sitemap shard under opts.DistPath so that only
// publishable URLs remain. All shards are parsed before any is written, so
// a malformed shard leaves every file untouched.
func Reconcile(ctx context.Context, opts Options) (*models.RunReport, error) {
	log := opts.Logger

	info, err := os.Stat(opts.DistPath)
	if err != nil || !info.IsDir() {
		return nil, errors.NewMissingInputError("build output directory", opts.DistPath, "run the site build first")
	}

	plan, err := BuildPlan(ctx, opts)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("content_files", len(plan.Content)).
		Int("exclusions", plan.Exclusions.Len()).
		Strs("folders", plan.Folders).
		Msg("Built exclusion rules")

	files, err := DiscoverSitemaps(opts.DistPath)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		log.Warn().Str("path", opts.DistPath).Msg("No sitemap files found")
	}

	docs, err := parseSitemaps(ctx, files, opts.Concurrency)
	if err != nil {
		return nil, err
	}

	report := &models.RunReport{
		ContentFiles: len(plan.Content),
		Exclusions:   plan.Exclusions.Len(),
		DryRun:       opts.DryRun,
		Sitemaps:     make([]models.SitemapReport, len(docs)),
	}

	filter := plan.Filter()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limitOrDefault(opts.Concurrency))
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep, err := rewriteSitemap(doc, filter, opts.DryRun)
			if err != nil {
				return err
			}
			report.Sitemaps[i] = rep
			log.Info().
				Str("file", doc.Path).
				Int("kept", rep.Kept).
				Int("removed", len(rep.Removed)).
				Bool("dry_run", opts.DryRun).
				Msg("Processed sitemap")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Int("sitemaps", len(docs)).Int("removed", report.RemovedCount()).Msg("Sitemaps processed successfully")
	return report, nil
}

func rewriteSitemap(doc *models.SitemapDocument, filter Filter, dryRun bool) (models.SitemapReport, error) {
	rep := models.SitemapReport{Path: doc.Path, Total: len(doc.Entries)}
	if len(doc.Entries) == 0 {
		rep.Skipped = true
		return rep, nil
	}

	kept, removed := filter.Apply(doc)
	rep.Kept = len(kept)
	rep.Removed = removed
	if dryRun {
		return rep, nil
	}
	return rep, WriteFileAtomic(doc.Path, RenderSitemap(doc, kept))
}

// parseSitemaps reads and parses every file, failing on the first error.
func parseSitemaps(ctx context.Context, files []string, concurrency int) ([]*models.SitemapDocument, error) {
	docs := make([]*models.SitemapDocument, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limitOrDefault(concurrency))
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return errors.WrapIO("read", file, err)
			}
			doc, err := ParseSitemap(file, data)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func limitOrDefault(n int) int {
	if n <= 0 {
		return DefaultScanConcurrency
	}
	return n
}

package handlers

import (
	"slices"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"sitemap-reconciler/pkg/services"
)

// Resolution statuses shown by the resolve command.
const (
	statusPublished  = "published"
	statusDraft      = "draft"
	statusExcluded   = "excluded"
	statusUnresolved = "unresolved"
)

func (a *App) resolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Show the URL and sitemap status of every content file",
		Long: `Scans the content tree and prints, for each content file, the language it
belongs to, the public URL it resolves to and whether it is suppressed from
the sitemaps. Nothing is written.`,
		Args: cobra.NoArgs,
		RunE: a.runResolve,
	}
}

func (a *App) runResolve(cmd *cobra.Command, _ []string) error {
	plan, err := services.BuildPlan(cmd.Context(), a.options())
	if err != nil {
		return err
	}

	table := tablewriter.NewTable(cmd.OutOrStdout())
	table.Header("Path", "Language", "URL", "Status")

	keys := lo.Keys(plan.Content)
	slices.Sort(keys)
	for _, key := range keys {
		rec := plan.Content[key]
		lang, ok := plan.Resolver.Language(key)
		url, _ := plan.Resolver.Resolve(key, rec)

		status := statusPublished
		switch {
		case !ok:
			status = statusUnresolved
		case rec.Draft:
			status = statusDraft
		case rec.ExcludeFromSitemap:
			status = statusExcluded
		}
		if err := table.Append(key, lang.LanguageCode, url, status); err != nil {
			return err
		}
	}
	return table.Render()
}

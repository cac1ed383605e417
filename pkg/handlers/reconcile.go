package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitemap-reconciler/pkg/services"
)

func (a *App) reconcileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Rewrite the generated sitemaps (default command)",
		Args:  cobra.NoArgs,
		RunE:  a.runReconcile,
	}
}

func (a *App) runReconcile(cmd *cobra.Command, _ []string) error {
	report, err := services.Reconcile(cmd.Context(), a.options())
	if err != nil {
		return err
	}
	if report.DryRun {
		for _, s := range report.Sitemaps {
			for _, loc := range s.Removed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.Path, loc)
			}
		}
	}
	return nil
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Printing the version needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), a.version)
		},
	}
}

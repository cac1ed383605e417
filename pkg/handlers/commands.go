package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"sitemap-reconciler/pkg/config"
	"sitemap-reconciler/pkg/logging"
	"sitemap-reconciler/pkg/services"
)

// App wires configuration, logging and the commands together.
type App struct {
	version    string
	viper      *viper.Viper
	configFile string
	config     *config.Config
	logger     zerolog.Logger
	root       *cobra.Command
}

// NewApp creates the command tree.
func NewApp(version string) *App {
	a := &App{
		version: version,
		viper:   viper.New(),
		logger:  logging.New(logging.DefaultConfig()),
	}
	a.root = a.rootCommand()
	return a
}

// Logger returns the configured logger. Before a command runs it logs at
// info level to stderr.
func (a *App) Logger() *zerolog.Logger {
	return &a.logger
}

// Execute runs the command line.
func (a *App) Execute(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.root.ExecuteContext(ctx)
}

// SetOutput redirects command output, for tests.
func (a *App) SetOutput(out io.Writer) {
	a.root.SetOut(out)
	a.root.SetErr(out)
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "sitemap-reconciler",
		Short: "Remove drafts and excluded pages from generated sitemaps",
		Long: `sitemap-reconciler runs after a site build. It reads the metadata of every
content file, works out the public URL of each page under the multilingual
routing settings, and rewrites the generated sitemap-<N>.xml files so that
drafts, excluded pages, section index pages and administrative folders are
no longer listed.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runReconcile,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default is ./.sitemap-reconciler.yaml)")
	pf.BoolP("verbose", "v", false, "debug logging")
	pf.BoolP("quiet", "q", false, "only log warnings and errors")
	pf.String("log-level", "", "log level (trace, debug, info, warn, error)")
	pf.String("log-format", "auto", "log format (auto, json, console)")
	pf.String("root", ".", "project root that relative paths resolve against")
	pf.String("dist", "dist", "build output directory holding sitemap-<N>.xml")
	pf.String("content", "src/content", "content directory")
	pf.String("languages", "src/config/language.json", "language registry file")
	pf.String("settings", ".astro/config.generated.json", "generated settings file")
	pf.String("anchor", "content", "path segment the section name follows")
	pf.Int("concurrency", services.DefaultScanConcurrency, "parallel file reads")
	pf.Bool("dry-run", false, "report what would be removed without writing")

	a.bind(pf.Lookup("verbose"), config.KeyVerbose)
	a.bind(pf.Lookup("quiet"), config.KeyQuiet)
	a.bind(pf.Lookup("log-level"), config.KeyLogLevel)
	a.bind(pf.Lookup("log-format"), config.KeyLogFormat)
	a.bind(pf.Lookup("root"), config.KeyProjectRoot)
	a.bind(pf.Lookup("dist"), config.KeyDistPath)
	a.bind(pf.Lookup("content"), config.KeyContentPath)
	a.bind(pf.Lookup("languages"), config.KeyLanguageFile)
	a.bind(pf.Lookup("settings"), config.KeySettingsFile)
	a.bind(pf.Lookup("anchor"), config.KeyContentAnchor)
	a.bind(pf.Lookup("concurrency"), config.KeyConcurrency)
	a.bind(pf.Lookup("dry-run"), config.KeyDryRun)

	root.AddCommand(a.reconcileCommand(), a.resolveCommand(), a.versionCommand())
	return root
}

func (a *App) setup(cmd *cobra.Command, _ []string) error {
	config.LoadEnvFiles()
	cfg, err := config.Load(a.viper, a.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.config = cfg
	a.logger = logging.New(&logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: "stderr",
	})
	if cfg.ConfigFile != "" {
		a.logger.Debug().Str("file", cfg.ConfigFile).Msg("Using config file")
	}
	return nil
}

func (a *App) bind(flag *pflag.Flag, key string) {
	if err := a.viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("Failed to bind %s flag: %v", key, err))
	}
}

// options turns the loaded configuration into service options.
func (a *App) options() services.Options {
	cfg := a.config
	return services.Options{
		DistPath:      cfg.Path(cfg.DistPath),
		ContentPath:   cfg.Path(cfg.ContentPath),
		ContentKey:    cfg.ContentKey(),
		LanguageFile:  cfg.Path(cfg.LanguageFile),
		SettingsFile:  cfg.Path(cfg.SettingsFile),
		ContentAnchor: cfg.ContentAnchor,
		FixedFolders:  cfg.FixedFolders,
		RouteAliases:  cfg.RouteAliases,
		Concurrency:   cfg.Concurrency,
		DryRun:        cfg.DryRun,
		Logger:        a.logger,
	}
}

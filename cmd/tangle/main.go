package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gubarz/tangle/internal/config"
	"github.com/gubarz/tangle/internal/fspath"
	"github.com/gubarz/tangle/internal/tangle"
	"github.com/gubarz/tangle/internal/ui"
	"github.com/gubarz/tangle/internal/watch"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "1.0.0"

var listCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "Show the files a markdown document would write",
	Long: `Walks the document and every markdown file it links to without
writing anything, then prints each directive and its resolved target.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

var rootCmd = &cobra.Command{
	Use:   "tangle <file>",
	Short: "Copies markdown code blocks with the correct header syntax to target files",
	Long: `Copies markdown code blocks with the correct header syntax to target files.

A fenced block whose first line reads

  ` + "```" + `<lang> > <path>

is written to <path>, relative to the markdown file. Links to other
markdown files are followed and tangled the same way.`,
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: initConfig,
	RunE:              runTangle,
	SilenceUsage:      true,
}

func init() {
	rootCmd.AddCommand(listCmd)

	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Int("max-depth", 0, "Stop with an error when links nest deeper than this (0 = no limit)")
	rootCmd.PersistentFlags().Bool("skip-visited", false, "Tangle each document at most once per run")
	rootCmd.PersistentFlags().StringSlice("ext", nil, "Link target extensions treated as markdown (default .md)")
	rootCmd.Flags().BoolP("dry-run", "n", false, "Report writes without performing them")
	rootCmd.Flags().BoolP("watch", "w", false, "Re-tangle when a visited document changes")
	listCmd.Flags().StringP("output", "o", "table", "Output format: table, yaml, json")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("max_depth", rootCmd.PersistentFlags().Lookup("max-depth"))
	viper.BindPFlag("skip_visited", rootCmd.PersistentFlags().Lookup("skip-visited"))
	viper.BindPFlag("extensions", rootCmd.PersistentFlags().Lookup("ext"))
	viper.BindPFlag("dry_run", rootCmd.Flags().Lookup("dry-run"))
}

func initConfig(cmd *cobra.Command, args []string) error {
	if err := config.Init(); err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	return nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.GetLogLevel(),
	}))
}

func newSession(logger *slog.Logger, dryRun bool) *tangle.Session {
	return tangle.NewSession(fspath.NewOSFS(),
		tangle.WithLogger(logger),
		tangle.WithFormat(config.GetFormat()),
		tangle.WithExtensions(config.GetExtensions()...),
		tangle.WithMaxDepth(config.GetMaxDepth()),
		tangle.WithSkipVisited(config.GetSkipVisited()),
		tangle.WithDryRun(dryRun),
	)
}

func runTangle(cmd *cobra.Command, args []string) error {
	path := args[0]
	logger := newLogger()
	session := newSession(logger, config.GetDryRun())

	report, err := session.Tangle(path)
	if err != nil {
		return err
	}
	logger.Info("tangled",
		slog.String("entry", path),
		slog.Int("documents", len(report.Documents)),
		slog.Int("writes", len(report.Writes)),
		slog.Bool("dry_run", report.DryRun))

	if w, _ := cmd.Flags().GetBool("watch"); !w {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := watch.New(func() ([]string, []string, error) {
		r, err := session.Tangle(path)
		if err != nil {
			return nil, nil, err
		}
		return r.Documents, r.Targets(), nil
	}, logger)
	return watcher.Watch(ctx, report.Documents, report.Targets())
}

func runList(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	format, err := ui.ParseOutputFormat(output)
	if err != nil {
		return err
	}

	report, err := newSession(newLogger(), true).Tangle(args[0])
	if err != nil {
		return err
	}

	styles := ui.DefaultStyles()
	styles.LoadFromConfig()
	return ui.Render(cmd.OutOrStdout(), report, format, styles)
}

func main() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main provides the polyglot binary entry point.
// Polyglot serves multilingual content and negotiates the language each
// visitor sees.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/polyglot"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
	"github.com/dmitrymomot/polyglot/pkg/langurl"
	"github.com/dmitrymomot/polyglot/pkg/logger"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "polyglot"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Multilingual content server",
		Long: `Polyglot serves content published in several languages and picks the
language each visitor sees.

Available languages are the supported languages that have content in the
store. Each request gets its language from the URL prefix, the
Accept-Language header, platform locale hints or the default, in that order.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		serveCmd(flags),
		languagesCmd(flags),
		resolveCmd(flags),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("watch") {
				cfg.Content.Watch = watch
			}

			ctx := cmd.Context()
			site, err := polyglot.NewSite(ctx, cfg)
			if err != nil {
				return err
			}
			return site.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Rescan languages when content files change")

	return cmd
}

func languagesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "languages [path]",
		Short: "List the languages content is available in",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			site, err := openSite(ctx, flags)
			if err != nil {
				return err
			}
			defer site.Close()

			page := "/"
			if len(args) == 1 {
				page = args[0]
			}

			n := site.Negotiator()
			available := n.Available(ctx)
			options := i18n.Options(available, n.Default(), func(lang string) string {
				return langurl.Build(lang, page)
			})

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, opt := range options {
				marker := ""
				if opt.Active {
					marker = "default"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", opt.Code, opt.Name, opt.URL, marker)
			}
			return w.Flush()
		},
	}
}

func resolveCmd(flags *globalFlags) *cobra.Command {
	var hints []string

	cmd := &cobra.Command{
		Use:   "resolve [accept-language]",
		Short: "Show which language a client would get",
		Example: `  polyglot resolve "de-DE,uk;q=0.8,en;q=0.5"
  polyglot resolve --hint es-MX --hint en`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			site, err := openSite(ctx, flags)
			if err != nil {
				return err
			}
			defer site.Close()

			signalValue := ""
			if len(args) == 1 {
				signalValue = args[0]
			}

			res := site.Negotiator().Negotiate(ctx, signalValue, hints)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", res.Language, res.Source)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&hints, "hint", nil, "Platform locale hint, most preferred first (repeatable)")

	return cmd
}

func loadConfig(flags *globalFlags) (polyglot.Config, error) {
	cfg, err := polyglot.LoadConfig(flags.configPath)
	if err != nil {
		return polyglot.Config{}, fmt.Errorf("load config: %w", err)
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return polyglot.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func openSite(ctx context.Context, flags *globalFlags) (*polyglot.Site, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	// Keep stdout for command output.
	log := logger.NewWithWriter(os.Stderr, cfg.Log)
	return polyglot.NewSite(ctx, cfg, polyglot.WithSiteLogger(log))
}

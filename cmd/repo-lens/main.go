package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/kevinmichaelchen/repo-lens/internal/api"
	"github.com/kevinmichaelchen/repo-lens/internal/api/analyze"
	"github.com/kevinmichaelchen/repo-lens/internal/config"
	"github.com/kevinmichaelchen/repo-lens/internal/logger"
	"github.com/kevinmichaelchen/repo-lens/internal/models"
	"github.com/kevinmichaelchen/repo-lens/internal/pipeline"
)

func main() {
	root := &cobra.Command{
		Use:   "repo-lens",
		Short: "Describe a GitHub repository and the services it uses",
	}

	root.AddCommand(serveCmd(), analyzeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			app := fx.New(
				fx.Supply(cfg),
				fx.Provide(
					logger.New,
					pipeline.FromConfig,
					func(p *pipeline.Pipeline) analyze.Runner { return p },
				),
				fx.Invoke(api.Run),
				fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
					return &fxevent.ZapLogger{Logger: l}
				}),
			)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}

func analyzeCmd() *cobra.Command {
	var (
		asJSON      bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "analyze owner/repo [owner/repo...]",
		Short: "Analyze one or more repositories and print the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs := make([]models.RepositoryRef, 0, len(args))
			for _, arg := range args {
				ref, err := models.ParseRef(arg)
				if err != nil {
					return err
				}
				refs = append(refs, ref)
			}

			cfg := config.Load()
			l := logger.New(cfg)
			defer func() { _ = l.Sync() }()

			results, err := pipeline.FromConfig(cfg, l).RunAll(context.Background(), refs, concurrency)
			if err != nil {
				return err
			}

			if asJSON {
				out := make([]analyze.Response, len(results))
				for i, res := range results {
					out[i] = analyze.NewResponse(res)
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			for i, res := range results {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				printResult(cmd, res)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 3, "Repositories analyzed at once")
	return cmd
}

func printResult(cmd *cobra.Command, res *models.AnalysisResult) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "== %s (%s)\n", res.Repo.FullName(), res.Status)
	fmt.Fprintln(w, strings.TrimSpace(res.Description))
	if len(res.Services) > 0 {
		fmt.Fprintf(w, "\nServices: %s\n", strings.Join(res.Services, ", "))
	}
}

package pipeline

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kevinmichaelchen/repo-lens/internal/config"
	"github.com/kevinmichaelchen/repo-lens/internal/github"
	"github.com/kevinmichaelchen/repo-lens/internal/llm"
	"github.com/kevinmichaelchen/repo-lens/internal/models"
	"github.com/kevinmichaelchen/repo-lens/internal/services"
)

type Collector interface {
	Collect(ctx context.Context, ref models.RepositoryRef) models.ContentBundle
}

type Analyzer interface {
	Analyze(ctx context.Context, repoText string) models.Analysis
}

// Pipeline runs collection, analysis and service extraction for one
// repository at a time. It holds no per-request state and is safe for
// concurrent use.
type Pipeline struct {
	collector Collector
	analyzer  Analyzer
	l         *zap.Logger
}

func New(collector Collector, analyzer Analyzer, l *zap.Logger) *Pipeline {
	return &Pipeline{collector: collector, analyzer: analyzer, l: l}
}

// FromConfig wires the GitHub collector and the OpenAI analyzer.
func FromConfig(cfg *config.Config, l *zap.Logger) *Pipeline {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	gh := github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken, httpClient)
	analyzer := llm.NewClient(llm.Options{
		BaseURL:    cfg.LLMBaseURL,
		APIKey:     cfg.LLMAPIKey,
		Model:      cfg.LLMModel,
		MaxTokens:  cfg.LLMMaxTokens,
		HTTPClient: httpClient,
	}, l)

	return New(github.NewCollector(gh, l), analyzer, l)
}

// Run analyzes one repository. Collection and analysis failures degrade the
// result (see models.Status) instead of returning an error; only missing
// input or a cancelled context does.
func (p *Pipeline) Run(ctx context.Context, ref models.RepositoryRef) (*models.AnalysisResult, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	l := p.l.With(zap.String("repo", ref.FullName()))
	l.Info("analyzing repository")

	bundle := p.collector.Collect(ctx, ref)
	analysis := p.analyzer.Analyze(ctx, bundle.Text)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", ref.FullName(), err)
	}

	var found []string
	if analysis.Status != models.StatusOK {
		found = []string{llm.ErrorServicesEntry}
	} else {
		var stage string
		found, stage = services.ParseStage(analysis.Text)
		l.Debug("services extracted", zap.String("stage", stage), zap.Int("count", len(found)))
		if len(found) == 0 {
			l.Info("no services listed, scanning for known technologies")
			found = services.DetectKnown(analysis.Text)
		}
	}

	result := &models.AnalysisResult{
		Repo:        ref,
		Description: analysis.Text,
		Services:    found,
		Status:      bundle.Status.Worst(analysis.Status),
	}

	l.Info("analysis complete",
		zap.Stringer("status", result.Status),
		zap.Int("files", len(bundle.Files)),
		zap.Strings("services", result.Services),
	)
	return result, nil
}

// RunAll analyzes several repositories with at most limit in flight.
// Results are returned in the order of refs.
func (p *Pipeline) RunAll(ctx context.Context, refs []models.RepositoryRef, limit int) ([]*models.AnalysisResult, error) {
	results := make([]*models.AnalysisResult, len(refs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for i, ref := range refs {
		g.Go(func() error {
			res, err := p.Run(gCtx, ref)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

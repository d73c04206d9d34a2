package github

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/kevinmichaelchen/repo-lens/internal/models"
)

// CollectionErrorMarker prefixes the bundle text when the root listing fails.
const CollectionErrorMarker = "Error fetching repository content"

var (
	importantSuffixes = []string{
		".md", ".yml", ".yaml", ".py", ".json", ".txt", ".env",
		"Dockerfile", "package.json", "requirements.txt", "pom.xml", "build.gradle",
		"composer.json", "Gemfile", "Cargo.toml", "go.mod", "package-lock.json", "yarn.lock",
	}
	importantNames = []string{
		"README", "README.md", "README.txt", "LICENSE", "Dockerfile", "docker-compose.yml",
		"package.json", "requirements.txt", "pom.xml", "build.gradle", "composer.json",
		"Gemfile", "Cargo.toml", "go.mod", "Makefile", ".gitignore", ".env.example",
	}

	// Only these root directories are descended into, one level deep.
	sourceDirs = []string{"src", "app", "backend", "frontend", "api", "lib", "utils"}
)

// IsImportantFile reports whether a file name is worth sending to the model.
func IsImportantFile(name string) bool {
	for _, suffix := range importantSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return slices.Contains(importantNames, name)
}

// Collector gathers the text of a repository's notable files.
type Collector struct {
	gh *Client
	l  *zap.Logger
}

func NewCollector(gh *Client, l *zap.Logger) *Collector {
	return &Collector{gh: gh, l: l}
}

// Collect never fails: if the root listing cannot be fetched, the bundle
// holds the header plus an inline error message and is marked degraded.
// Files that fail to download and subdirectories that fail to list are
// skipped with a log line, so a partial bundle is still StatusOK.
func (c *Collector) Collect(ctx context.Context, ref models.RepositoryRef) models.ContentBundle {
	l := c.l.With(zap.String("repo", ref.FullName()))
	header := "Repository: " + ref.FullName()

	l.Info("fetching repository files")
	root, err := c.gh.ListContents(ctx, ref.Owner, ref.Name, "")
	if err != nil {
		l.Error("collecting repository content", zap.Error(err))
		return models.ContentBundle{
			Repo:   ref,
			Text:   fmt.Sprintf("%s\n%s: %v", header, CollectionErrorMarker, err),
			Files:  []models.FileRecord{},
			Status: models.StatusDegraded,
			Err:    err,
		}
	}

	files := c.fetchImportant(ctx, l, root)

	for _, entry := range root {
		if !entry.IsDir() || !slices.Contains(sourceDirs, entry.Name) {
			continue
		}
		sub, err := c.gh.ListContents(ctx, ref.Owner, ref.Name, entry.displayPath())
		if err != nil {
			l.Warn("skipping subdirectory", zap.String("dir", entry.displayPath()), zap.Error(err))
			continue
		}
		files = append(files, c.fetchImportant(ctx, l, sub)...)
	}

	blocks := make([]string, len(files))
	for i, f := range files {
		blocks[i] = f.Block()
	}

	l.Info("collected repository files", zap.Int("files", len(files)))
	return models.ContentBundle{
		Repo:   ref,
		Text:   header + "\n\n" + strings.Join(blocks, "\n"),
		Files:  files,
		Status: models.StatusOK,
	}
}

func (c *Collector) fetchImportant(ctx context.Context, l *zap.Logger, entries []Entry) []models.FileRecord {
	files := []models.FileRecord{}
	for _, entry := range entries {
		if !entry.IsFile() || !IsImportantFile(entry.Name) || entry.DownloadURL == "" {
			continue
		}

		l.Debug("fetching file", zap.String("path", entry.displayPath()))
		content, err := c.gh.FetchRaw(ctx, entry.DownloadURL)
		if err != nil {
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				l.Debug("skipping file", zap.String("path", entry.displayPath()), zap.Int("status", statusErr.StatusCode))
			} else {
				l.Warn("skipping file", zap.String("path", entry.displayPath()), zap.Error(err))
			}
			continue
		}
		files = append(files, models.FileRecord{Path: entry.displayPath(), Content: content})
	}
	return files
}

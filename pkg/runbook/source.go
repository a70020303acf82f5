package runbook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Source enumerates and fetches runbook documents from one storage
// container, keyed by the cloud.provider configuration value.
type Source interface {
	ProviderType() string
	List(ctx context.Context) ([]string, error)
	Fetch(ctx context.Context, path string) (string, error)
}

// LocalSource reads runbooks from a directory on the local filesystem.
type LocalSource struct {
	dir string
}

func NewLocalSource(dir string) *LocalSource { return &LocalSource{dir: dir} }

func (s *LocalSource) ProviderType() string { return "local" }

func (s *LocalSource) List(ctx context.Context) ([]string, error) {
	var paths []string
	err := filepath.Walk(s.dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(p), ".md") {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("runbook: walk local source %s: %w", s.dir, err)
	}
	return paths, nil
}

func (s *LocalSource) Fetch(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("runbook: read local runbook %s: %w", path, err)
	}
	return string(content), nil
}

// GitHubSource lists and fetches runbook markdown files out of a GitHub
// repository directory, caching both the directory listing and individual
// file fetches for cacheTTL.
type GitHubSource struct {
	fetcher        *githubFetcher
	listings       *ttlCache[[]string]
	content        *ttlCache[string]
	repoURL        string
	allowedDomains []string
}

// NewGitHubSource builds a source over repoURL (a github.com tree URL).
// allowedDomains restricts which hosts Fetch will follow a blob URL to; a
// nil/empty list allows any http(s) host.
func NewGitHubSource(repoURL, token string, cacheTTL time.Duration, allowedDomains []string) *GitHubSource {
	return &GitHubSource{
		fetcher:        newGitHubFetcher(token),
		listings:       newTTLCache[[]string](cacheTTL),
		content:        newTTLCache[string](cacheTTL),
		repoURL:        repoURL,
		allowedDomains: allowedDomains,
	}
}

func (s *GitHubSource) ProviderType() string { return "github" }

func (s *GitHubSource) List(ctx context.Context) ([]string, error) {
	if cached, ok := s.listings.Get(s.repoURL); ok {
		return cached, nil
	}
	files, err := s.fetcher.listMarkdown(ctx, s.repoURL)
	if err != nil {
		return nil, fmt.Errorf("runbook: list github runbooks from %s: %w", s.repoURL, err)
	}
	s.listings.Set(s.repoURL, files)
	return files, nil
}

func (s *GitHubSource) Fetch(ctx context.Context, path string) (string, error) {
	if err := validateFetchURL(path, s.allowedDomains); err != nil {
		return "", err
	}
	normalized := toRawContentURL(path)
	if content, ok := s.content.Get(normalized); ok {
		return content, nil
	}
	content, err := s.fetcher.download(ctx, path)
	if err != nil {
		return "", err
	}
	s.content.Set(normalized, content)
	return content, nil
}

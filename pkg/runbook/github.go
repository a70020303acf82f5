package runbook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// githubFetcher talks to the GitHub REST API to enumerate and download
// runbook markdown files out of one repository directory.
type githubFetcher struct {
	httpClient *http.Client
	token      string
	logger     *slog.Logger
}

// newGitHubFetcher builds a fetcher. token may be empty (public repos only,
// lower rate limits).
func newGitHubFetcher(token string) *githubFetcher {
	return &githubFetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		token:      token,
		logger:     slog.Default().With("component", "runbook.github"),
	}
}

// download fetches raw content from a GitHub URL, converting a blob URL to
// its raw.githubusercontent.com form first.
func (f *githubFetcher) download(ctx context.Context, rawURL string) (string, error) {
	downloadURL := toRawContentURL(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	f.authorize(req)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch runbook from %s: %w", downloadURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GitHub returned HTTP %d for %s", resp.StatusCode, downloadURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	return string(body), nil
}

// githubContentEntry is one item in a GitHub Contents API directory listing.
type githubContentEntry struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Type    string `json:"type"` // "file" or "dir"
	HTMLURL string `json:"html_url"`
}

// listMarkdown returns every .md file's blob URL under repoURL, walking the
// Contents API recursively.
func (f *githubFetcher) listMarkdown(ctx context.Context, repoURL string) ([]string, error) {
	ref, err := parseGitHubTreeURL(repoURL)
	if err != nil {
		return nil, fmt.Errorf("parse repo URL: %w", err)
	}
	return f.listMarkdownUnder(ctx, ref.owner, ref.repo, ref.ref, ref.path)
}

// listMarkdownUnder recurses one directory at a time, bailing out early if
// ctx is cancelled mid-walk rather than finishing a tree nobody will use.
func (f *githubFetcher) listMarkdownUnder(ctx context.Context, owner, repo, ref, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	apiURL := fmt.Sprintf("https://api.github.com/repos/%s/%s/contents/%s?ref=%s", owner, repo, path, ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	f.authorize(req)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list contents at %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned HTTP %d for path %q", resp.StatusCode, path)
	}

	var entries []githubContentEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode contents response: %w", err)
	}

	var markdown []string
	for _, entry := range entries {
		switch entry.Type {
		case "file":
			if strings.HasSuffix(strings.ToLower(entry.Name), ".md") {
				markdown = append(markdown, entry.HTMLURL)
			}
		case "dir":
			sub, err := f.listMarkdownUnder(ctx, owner, repo, ref, entry.Path)
			if err != nil {
				f.logger.Warn("failed to list subdirectory", "path", entry.Path, "error", err)
				continue
			}
			markdown = append(markdown, sub...)
		}
	}
	return markdown, nil
}

func (f *githubFetcher) authorize(req *http.Request) {
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
}

package runbook

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// githubTreeRef names the owner/repo/ref/path parsed out of a GitHub
// blob or tree URL: https://github.com/{owner}/{repo}/{blob|tree}/{ref}/{path...}
type githubTreeRef struct {
	owner string
	repo  string
	ref   string
	path  string
}

// githubTreePattern matches the path component of a GitHub blob or tree URL.
var githubTreePattern = regexp.MustCompile(`^/([^/]+)/([^/]+)/(blob|tree)/([^/]+)(?:/(.*))?$`)

func isGitHubHost(host string) bool {
	return host == "github.com" || host == "www.github.com"
}

func parseGitHubTreeRef(path string) (githubTreeRef, bool) {
	m := githubTreePattern.FindStringSubmatch(path)
	if m == nil {
		return githubTreeRef{}, false
	}
	// m[3] is the literal "blob" or "tree" and isn't needed past matching.
	return githubTreeRef{owner: m[1], repo: m[2], ref: m[4], path: m[5]}, true
}

// toRawContentURL rewrites a github.com blob/tree URL to its
// raw.githubusercontent.com equivalent. Any other URL, or one that already
// points at raw.githubusercontent.com, passes through unchanged.
func toRawContentURL(githubURL string) string {
	parsed, err := url.Parse(githubURL)
	if err != nil {
		return githubURL
	}
	if parsed.Host == "raw.githubusercontent.com" {
		return githubURL
	}
	if !isGitHubHost(parsed.Host) {
		return githubURL
	}
	ref, ok := parseGitHubTreeRef(parsed.Path)
	if !ok {
		return githubURL
	}
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/refs/heads/%s/%s", ref.owner, ref.repo, ref.ref, ref.path)
}

// parseGitHubTreeURL parses a github.com blob/tree URL
// (https://github.com/{owner}/{repo}/tree/{ref}/{path}) into its components.
func parseGitHubTreeURL(rawURL string) (githubTreeRef, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return githubTreeRef{}, fmt.Errorf("malformed URL: %w", err)
	}
	if !isGitHubHost(parsed.Host) {
		return githubTreeRef{}, fmt.Errorf("not a GitHub URL: %s", parsed.Host)
	}
	ref, ok := parseGitHubTreeRef(parsed.Path)
	if !ok {
		return githubTreeRef{}, fmt.Errorf("URL does not match GitHub blob/tree pattern: %s", parsed.Path)
	}
	return ref, nil
}

// validateFetchURL rejects any scheme other than http/https and, when
// allowedDomains is non-empty, any host outside that allowlist.
func validateFetchURL(rawURL string, allowedDomains []string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("malformed URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid scheme %q: only http and https allowed", parsed.Scheme)
	}
	if len(allowedDomains) == 0 {
		return nil
	}
	host := strings.ToLower(parsed.Hostname())
	for _, domain := range allowedDomains {
		if host == domain || host == "www."+domain {
			return nil
		}
	}
	return fmt.Errorf("domain %q not in allowed list", host)
}

package extension

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Prefix is the file-name prefix every extension binary carries. The
// pattern just-<repository-name><platform-suffix> is a convention shared
// with the rest of the just ecosystem; tooling that lists or locates
// extensions depends on it exactly.
const Prefix = "just-"

// supportedHost is the only source-hosting provider extensions may be
// installed from.
const supportedHost = "github.com"

// Sentinel errors for URL resolution. Callers match them with errors.Is;
// the wrapped messages carry the offending input.
var (
	ErrInvalidURL            = errors.New("invalid extension URL")
	ErrUnsupportedProvider   = errors.New("only github.com is supported for just extensions")
	ErrMissingRepositoryName = errors.New("no repository name in URL path")
)

// Canonicalize prepends the just- prefix unless the name already carries
// it. Idempotent: canonicalizing a canonical name is a no-op.
func Canonicalize(name string) string {
	if strings.HasPrefix(name, Prefix) {
		return name
	}
	return Prefix + name
}

// ExecutableName returns the canonical binary file name for an extension,
// including the platform executable suffix (".exe" on Windows, empty
// elsewhere).
func ExecutableName(name string) string {
	return Canonicalize(name) + exeSuffix
}

// Suffix returns the executable suffix for the current platform.
func Suffix() string {
	return exeSuffix
}

// ParseRepositoryName extracts the repository name from a source URL such
// as https://github.com/owner/repo. The checks run in a fixed order: a
// malformed URL is reported as such before the host is inspected, and the
// host is validated before the path segments are, so a bad URL is never
// misreported as an unsupported provider.
func ParseRepositoryName(rawURL string) (string, error) {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidURL, rawURL, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %q: missing host", ErrInvalidURL, rawURL)
	}

	if u.Hostname() != supportedHost {
		return "", fmt.Errorf("%w (got %q)", ErrUnsupportedProvider, u.Hostname())
	}

	// Path layout is /<owner>/<repo>[/...]; the repo is the second segment.
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[1] == "" {
		return "", fmt.Errorf("%w: %q", ErrMissingRepositoryName, rawURL)
	}

	return segments[1], nil
}

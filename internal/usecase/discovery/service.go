// Package discovery turns search dorks into deduplicated candidate
// usernames.
package discovery

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/hireloop/talentscout/internal/domain"
	"github.com/hireloop/talentscout/internal/metrics"
)

// Service discovers candidate usernames through a search oracle.
type Service struct {
	search SearchOracle
	logger *zap.Logger
}

// New creates a discovery service.
func New(search SearchOracle, logger *zap.Logger) *Service {
	return &Service{search: search, logger: logger}
}

// DorkQuery builds the profile search dork for a role and location.
func DorkQuery(role, location string) string {
	return fmt.Sprintf(`site:linkedin.com/in/ "%s" "%s" -jobs -careers`, role, location)
}

// Discover runs the query and extracts usernames from profile-shaped
// result URLs. Non-matching URLs are skipped, duplicates collapse to the
// first occurrence, and oracle order is preserved. At most maxResults
// usernames are returned.
func (s *Service) Discover(ctx context.Context, query string, maxResults int) ([]string, error) {
	urls, err := s.search.URLs(ctx, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("search oracle: %w: %w", domain.ErrDiscoveryFailed, err)
	}

	seen := make(map[string]struct{})
	usernames := make([]string, 0, len(urls))
	for _, raw := range urls {
		username, ok := extractUsername(raw)
		if !ok {
			s.logger.Debug("skipping non-profile url", zap.String("url", raw))
			metrics.DiscoveryResultsTotal.WithLabelValues("rejected").Inc()
			continue
		}
		if _, dup := seen[username]; dup {
			metrics.DiscoveryResultsTotal.WithLabelValues("duplicate").Inc()
			continue
		}
		seen[username] = struct{}{}
		usernames = append(usernames, username)
		metrics.DiscoveryResultsTotal.WithLabelValues("accepted").Inc()

		if len(usernames) == maxResults {
			break
		}
	}

	s.logger.Info("discovery finished",
		zap.Int("urls", len(urls)),
		zap.Int("usernames", len(usernames)),
	)
	return usernames, nil
}

// extractUsername pulls the username out of a profile URL. The path must
// start with the "in" segment followed by a non-empty username segment.
func extractUsername(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] != "in" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

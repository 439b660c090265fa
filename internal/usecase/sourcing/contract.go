package sourcing

import (
	"context"

	"github.com/hireloop/talentscout/internal/domain"
	"github.com/hireloop/talentscout/internal/transport/rapidapi"
)

// Discoverer finds candidate usernames for a search query.
type Discoverer interface {
	Discover(ctx context.Context, query string, maxResults int) ([]string, error)
}

// ProfileOracle fetches one raw profile by username.
type ProfileOracle interface {
	FetchProfile(ctx context.Context, username string) (*rapidapi.ProfileResponse, error)
}

// ProfileWriter persists sourced profiles to a table.
type ProfileWriter interface {
	Write(records []domain.Profile, path string) error
}

package discovery

import "context"

// SearchOracle returns result links for a web search query.
type SearchOracle interface {
	URLs(ctx context.Context, query string, max int) ([]string, error)
}

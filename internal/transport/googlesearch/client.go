// Package googlesearch wraps the Google Programmable Search Engine API
// for candidate discovery queries.
package googlesearch

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// The API caps each page at 10 results and 1-based start offsets.
const pageSize = 10

// Client executes web searches against a configured search engine.
type Client struct {
	svc      *customsearch.Service
	engineID string
}

// NewClient creates a search client. Extra options are passed through to
// the underlying service, which lets tests point it at a local server.
func NewClient(ctx context.Context, apiKey, engineID string, opts ...option.ClientOption) (*Client, error) {
	if engineID == "" {
		return nil, fmt.Errorf("search engine id is required")
	}

	svcOpts := make([]option.ClientOption, 0, len(opts)+1)
	if apiKey != "" {
		svcOpts = append(svcOpts, option.WithAPIKey(apiKey))
	}
	svcOpts = append(svcOpts, opts...)

	svc, err := customsearch.NewService(ctx, svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("create search service: %w", err)
	}

	return &Client{svc: svc, engineID: engineID}, nil
}

// URLs runs the query and returns up to max result links, paging through
// the API as needed. Fewer results than max is not an error.
func (c *Client) URLs(ctx context.Context, query string, max int) ([]string, error) {
	if max <= 0 {
		return nil, nil
	}

	urls := make([]string, 0, max)
	for start := int64(1); len(urls) < max; {
		num := int64(max - len(urls))
		if num > pageSize {
			num = pageSize
		}

		resp, err := c.svc.Cse.List().
			Q(query).
			Cx(c.engineID).
			Num(num).
			Start(start).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", query, err)
		}

		if len(resp.Items) == 0 {
			break
		}
		for _, item := range resp.Items {
			urls = append(urls, item.Link)
			if len(urls) == max {
				break
			}
		}
		if int64(len(resp.Items)) < num {
			break
		}
		start += int64(len(resp.Items))
	}

	return urls, nil
}

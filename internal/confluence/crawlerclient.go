package confluence

import (
	"context"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/crawler"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/entity"
)

// CrawlerClient adapts Client to crawler.DescendantsFetcher, translating
// between the crawler's HTTP-free RootType and the client's
// DescendantRootType.
type CrawlerClient struct {
	Client *Client
}

// GetDescendants implements crawler.DescendantsFetcher. The crawler
// always wants the full frontier below a root, so no MaxItems bound is
// passed; the crawl-wide cap is crawler.Options.Limit.
func (c CrawlerClient) GetDescendants(ctx context.Context, rootID string, rootType crawler.RootType) ([]entity.Node, error) {
	var t DescendantRootType
	switch rootType {
	case crawler.RootTypePage:
		t = RootTypePage
	case crawler.RootTypeFolder:
		t = RootTypeFolder
	}
	return c.Client.GetDescendants(ctx, rootID, t, DescendantsOptions{})
}

var _ crawler.DescendantsFetcher = CrawlerClient{}

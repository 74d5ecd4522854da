package confluence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/markdown"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/pipeline"
)

// PipelineClient adapts Client to pipeline.SpaceResolver and
// pipeline.BodyFetcher.
type PipelineClient struct {
	Client *Client
}

// ResolveSpace implements pipeline.SpaceResolver.
func (c PipelineClient) ResolveSpace(ctx context.Context, spaceKey string) (string, string, error) {
	space, err := c.Client.GetSpaceByKey(ctx, spaceKey)
	if err != nil {
		return "", "", err
	}
	if space.HomepageID == "" {
		return "", "", fmt.Errorf("space %s has no homepage", spaceKey)
	}
	return space.ID, space.HomepageID, nil
}

// FetchBodies implements pipeline.BodyFetcher.
func (c PipelineClient) FetchBodies(ctx context.Context, ids []string) ([]pipeline.PageBody, error) {
	pages, err := c.Client.GetPagesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	bodies := make([]pipeline.PageBody, 0, len(pages))
	for _, page := range pages {
		webURL := ""
		if page.Links != nil {
			webURL = "https://" + c.Client.Hostname() + "/wiki" + page.Links.WebUI
		}

		var doc markdown.ADF
		if page.Body != nil && page.Body.AtlasDocFormat != nil && page.Body.AtlasDocFormat.Value != "" {
			if err := json.Unmarshal([]byte(page.Body.AtlasDocFormat.Value), &doc); err != nil {
				return nil, fmt.Errorf("parse atlas_doc_format for %s: %w", page.ID, err)
			}
		}

		bodies = append(bodies, pipeline.PageBody{ID: page.ID, ConfluenceURL: webURL, Doc: &doc})
	}
	return bodies, nil
}

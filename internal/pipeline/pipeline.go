// Package pipeline glues the crawler, selector, markdown converter, and
// exporter into the end-to-end "export a space" operation: resolve the
// space's homepage, crawl its full hierarchy, filter it with a
// selector, fetch page bodies, render markdown, and write documents to
// disk.
package pipeline

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/crawler"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/docerrors"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/entity"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/exporter"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/markdown"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/selector"
)

// SpaceResolver finds a space's id and homepage id from its key.
type SpaceResolver interface {
	ResolveSpace(ctx context.Context, spaceKey string) (spaceID, homepageID string, err error)
}

// PageBody is one fetched page body: the page's id, its webui URL, and
// the parsed Atlas Doc Format document.
type PageBody struct {
	ID            string
	ConfluenceURL string
	Doc           *markdown.ADF
}

// BodyFetcher batch-fetches page bodies for a set of ids. The returned
// slice may be smaller than ids if the server silently omits pages the
// caller can no longer see; Run treats that as an integrity failure.
type BodyFetcher interface {
	FetchBodies(ctx context.Context, ids []string) ([]PageBody, error)
}

// Options configures a full export run.
type Options struct {
	SpaceKey       string
	Include        []string
	Exclude        []string
	OutDir         string
	AllInOnePath   string // if non-empty, also write a concatenated file here
	IgnoreMarkdown bool   // ignore markdown conversion errors per page
	BreadcrumbType exporter.BreadcrumbType
	WantedFields   []exporter.Field
	Concurrency    int // per-root fetch fan-out within one crawl iteration
	Logger         *log.Logger
}

// Run executes the full pipeline and returns the number of documents
// exported.
func Run(ctx context.Context, fetcher crawler.DescendantsFetcher, resolver SpaceResolver, bodies BodyFetcher, opts Options) (int, error) {
	_, homepageID, err := resolver.ResolveSpace(ctx, opts.SpaceKey)
	if err != nil {
		return 0, fmt.Errorf("resolve space %s: %w", opts.SpaceKey, err)
	}

	entities, err := crawler.Crawl(ctx, fetcher, homepageID, crawler.RootTypePage, crawler.Options{Logger: opts.Logger, Concurrency: opts.Concurrency})
	if err != nil {
		return 0, fmt.Errorf("crawl space %s: %w", opts.SpaceKey, err)
	}

	var pagesOnly []entity.Entity
	for _, e := range entities {
		if e.Node().Type == entity.NodeTypePage {
			pagesOnly = append(pagesOnly, e) // only pages carry content to export
		}
	}

	selected, err := selector.FilterPages(pagesOnly, opts.Include, opts.Exclude)
	if err != nil {
		return 0, err
	}

	ids := make([]string, len(selected))
	for i, e := range selected {
		ids[i] = e.Node().ID
	}

	fetched, err := bodies.FetchBodies(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("fetch page bodies: %w", err)
	}
	if len(fetched) != len(selected) {
		return 0, &docerrors.IntegrityError{Stage: "fetch bodies", Expected: len(selected), Actual: len(fetched)}
	}
	byID := make(map[string]PageBody, len(fetched))
	for _, b := range fetched {
		byID[b.ID] = b
	}

	docs := make([]exporter.Document, 0, len(selected))
	for _, e := range selected {
		body, ok := byID[e.Node().ID]
		if !ok {
			return 0, &docerrors.IntegrityError{Stage: "match bodies", Expected: len(selected), Actual: len(byID)}
		}
		md, err := markdown.FromAtlasDoc(body.Doc, e.Node().ID, opts.IgnoreMarkdown)
		if err != nil {
			return 0, err
		}
		docs = append(docs, exporter.Document{
			Entity:          e,
			ConfluenceURL:   body.ConfluenceURL,
			MarkdownContent: md,
		})
	}

	if err := exporter.Export(opts.OutDir, docs, opts.BreadcrumbType, opts.WantedFields); err != nil {
		return 0, err
	}
	if opts.AllInOnePath != "" {
		if err := exporter.ConcatenateToOne(opts.AllInOnePath, docs, opts.WantedFields); err != nil {
			return 0, err
		}
	}

	return len(docs), nil
}

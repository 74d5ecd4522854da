// Package crawler implements the Parent Clustering Crawl Algorithm
// (PCCA): reconstructing a Confluence space's full, arbitrarily deep
// page/folder hierarchy despite a descendants API capped at depth 5.
//
// The server fetches only five levels below whatever id you hand it.
// To go deeper, the algorithm re-roots: it walks every node that hit the
// depth cap (a "boundary" node) back up to its nearest in-pool page
// ancestor, fetches descendants from there, and repeats until no
// boundary nodes remain. Node identity is deduplicated globally by id
// across every iteration's fetch.
package crawler

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/docerrors"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/entity"
)

// DescendantsFetcher is the one capability the crawler needs from the
// Confluence client. It is an interface so the PCCA can be exercised
// against a synthetic in-memory hierarchy in tests without an HTTP
// client at all.
type DescendantsFetcher interface {
	GetDescendants(ctx context.Context, rootID string, rootType RootType) ([]entity.Node, error)
}

// RootType mirrors confluence.DescendantRootType without importing the
// confluence package, keeping internal/crawler free of any HTTP
// dependency.
type RootType string

const (
	RootTypePage   RootType = "page"
	RootTypeFolder RootType = "folder"
)

// MaxDepth is the server-side cap the algorithm works around.
const MaxDepth = 5

// maxLineageHops bounds the ancestor walk so a corrupted parentId chain
// (an accidental cycle) can never hang the crawl.
const maxLineageHops = 1024

// Options configures a crawl.
type Options struct {
	// Logger receives one line per PCCA iteration. Defaults to a
	// discard logger if nil.
	Logger *log.Logger

	// Limit stops the crawl from issuing further iterations once node_pool
	// holds at least this many entities, even if boundary nodes remain
	// unresolved. The iteration that reaches the limit is kept whole, so
	// the crawl can return more than Limit entities. Zero or negative
	// means unlimited, the default.
	Limit int

	// Concurrency caps how many per-root descendant fetches run at once
	// within a single iteration. The fetches of one iteration are
	// independent of each other, so their order doesn't matter; the node
	// pool is only touched by the calling goroutine after all fetches
	// land. Zero or one means sequential, the default.
	Concurrency int
}

// rootFetch carries one root's fetch result back to the pool owner.
type rootFetch struct {
	root  string
	nodes []entity.Node
	err   error
}

// Crawl runs the Parent Clustering Crawl Algorithm starting at rootID,
// returning every discovered entity sorted into global depth-first
// (position_path) order.
func Crawl(ctx context.Context, fetcher DescendantsFetcher, rootID string, rootType RootType, opts Options) ([]entity.Entity, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	nodePool := map[string]entity.Node{}
	currentRoots := []string{rootID}
	currentRootTypes := map[string]RootType{rootID: rootType}
	iteration := 0

	for len(currentRoots) > 0 {
		iteration++

		fetches := fetchRoots(ctx, fetcher, currentRoots, currentRootTypes, opts.Concurrency)

		boundary := map[string]entity.Node{}
		for _, res := range fetches {
			if res.err != nil {
				if docerrors.IsNotFound(res.err) {
					// The re-root target was deleted between iterations.
					// Tolerate it: the cluster continues with whatever
					// other roots this iteration still has.
					logger.Warnf("crawl iteration %d: root %s not found, skipping", iteration, res.root)
					continue
				}
				return nil, fmt.Errorf("crawl iteration %d: fetch descendants of %s: %w", iteration, res.root, res.err)
			}
			for _, n := range res.nodes {
				if _, seen := nodePool[n.ID]; seen {
					continue // deduplication: already discovered by an earlier root
				}
				nodePool[n.ID] = n
				if n.Depth == MaxDepth {
					boundary[n.ID] = n
				}
			}
		}

		logger.Infof("crawl iteration %d: %d root(s), %d node(s) in pool, %d boundary node(s)",
			iteration, len(currentRoots), len(nodePool), len(boundary))

		if len(boundary) == 0 {
			break
		}
		if opts.Limit > 0 && len(nodePool) >= opts.Limit {
			logger.Infof("crawl stopping early: reached limit of %d entities", opts.Limit)
			break
		}

		nextRoots := map[string]RootType{}
		for _, boundaryNode := range boundary {
			clusterRoot, clusterType := nearestPageAncestor(nodePool, boundaryNode, rootID, rootType)
			nextRoots[clusterRoot] = clusterType
		}

		currentRoots = currentRoots[:0]
		currentRootTypes = map[string]RootType{}
		for id, t := range nextRoots {
			currentRoots = append(currentRoots, id)
			currentRootTypes[id] = t
		}
	}

	entities := buildEntities(nodePool)
	sort.Slice(entities, func(i, j int) bool {
		return entity.ComparePositionPath(entities[i], entities[j]) < 0
	})
	return entities, nil
}

// fetchRoots runs one iteration's per-root descendant fetches, at most
// concurrency at a time, and returns every result once all have landed.
// Workers only fetch; they never touch the node pool, which stays owned
// by the caller.
func fetchRoots(ctx context.Context, fetcher DescendantsFetcher, roots []string, rootTypes map[string]RootType, concurrency int) []rootFetch {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]rootFetch, len(roots))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for i, root := range roots {
		wg.Add(1)
		go func(i int, root string, rt RootType) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			nodes, err := fetcher.GetDescendants(ctx, root, rt)
			results[i] = rootFetch{root: root, nodes: nodes, err: err}
		}(i, root, rootTypes[root])
	}
	wg.Wait()
	return results
}

// nearestPageAncestor walks up from the boundary node's parent, through
// the pool, looking for the nearest page (folders cannot be re-fetch
// roots since the descendants endpoint the re-root needs only accepts
// pages). The walk starts at the parent, not the boundary node itself,
// so a boundary node that happens to be a page is never re-queried from
// itself. If no page ancestor is found in-pool before the chain runs
// out, it falls back to the original crawl root, which is always a
// valid re-fetch target.
func nearestPageAncestor(pool map[string]entity.Node, boundaryNode entity.Node, fallbackRoot string, fallbackType RootType) (string, RootType) {
	currentID := boundaryNode.ParentID
	for hops := 0; hops < maxLineageHops; hops++ {
		node, ok := pool[currentID]
		if !ok {
			break
		}
		if node.Type == entity.NodeTypePage {
			return node.ID, RootTypePage
		}
		if node.ParentID == "" {
			break
		}
		currentID = node.ParentID
	}
	return fallbackRoot, fallbackType
}

// buildEntities walks every node's lineage through the pool and
// produces one Entity per node, in no particular order (the caller
// sorts by PositionPath).
func buildEntities(pool map[string]entity.Node) []entity.Entity {
	entities := make([]entity.Entity, 0, len(pool))
	for _, node := range pool {
		lineage := make([]entity.Node, 0, 8)
		current := node
		for hops := 0; hops < maxLineageHops; hops++ {
			lineage = append(lineage, current)
			parent, ok := pool[current.ParentID]
			if !ok {
				break
			}
			current = parent
		}
		entities = append(entities, entity.Entity{Lineage: lineage})
	}
	return entities
}

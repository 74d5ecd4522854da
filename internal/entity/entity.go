// Package entity defines the Node and Entity types the crawler produces:
// a node's full lineage from itself up to the topmost ancestor the crawl
// ever observed, plus the derived id/title/position paths used to order
// and address crawled pages and folders.
package entity

import "strings"

// NodeType distinguishes a Confluence page from a folder. Folders can
// only appear as intermediate structure; only pages carry content.
type NodeType string

const (
	NodeTypePage   NodeType = "page"
	NodeTypeFolder NodeType = "folder"
)

// Node is a single Confluence content node as returned by the
// descendants or get-by-id APIs.
type Node struct {
	ID            string
	Title         string
	Type          NodeType
	ParentID      string
	Depth         int // depth relative to the fetch root that discovered it
	ChildPosition int // position among siblings, as returned by the API
}

// Entity is a discovered node plus its lineage: self first, then parent,
// grandparent, and so on up to the topmost ancestor the crawl observed.
// Lineage is never empty; lineage[0] is always the node itself.
type Entity struct {
	Lineage []Node
}

// Node returns the entity's own node (lineage[0]).
func (e Entity) Node() Node {
	return e.Lineage[0]
}

// IDPath returns the id path from root ancestor to self.
func (e Entity) IDPath() []string {
	return reverseMap(e.Lineage, func(n Node) string { return n.ID })
}

// TitlePath returns the title path from root ancestor to self.
func (e Entity) TitlePath() []string {
	return reverseMap(e.Lineage, func(n Node) string { return n.Title })
}

// PositionPath returns the child-position path from root ancestor to
// self. It is the sort key that establishes global depth-first order
// among all entities in a crawl.
func (e Entity) PositionPath() []int {
	return reverseMap(e.Lineage, func(n Node) int { return n.ChildPosition })
}

// IDBreadcrumbPath joins IDPath with "~".
func (e Entity) IDBreadcrumbPath() string {
	return strings.Join(e.IDPath(), "~")
}

// TitleBreadcrumbPath joins TitlePath with "~".
func (e Entity) TitleBreadcrumbPath() string {
	return strings.Join(e.TitlePath(), "~")
}

func reverseMap[T any](lineage []Node, f func(Node) T) []T {
	out := make([]T, len(lineage))
	n := len(lineage)
	for i, node := range lineage {
		out[n-1-i] = f(node)
	}
	return out
}

// ComparePositionPath implements the lexicographic tuple compare used to
// establish the crawl's final depth-first preorder, tie-broken by id
// when two position paths are identical (child_position is not
// guaranteed unique by the API).
func ComparePositionPath(a, b Entity) int {
	pa, pb := a.PositionPath(), b.PositionPath()
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			if pa[i] < pb[i] {
				return -1
			}
			return 1
		}
	}
	if len(pa) != len(pb) {
		if len(pa) < len(pb) {
			return -1
		}
		return 1
	}
	ai, bi := a.Node().ID, b.Node().ID
	switch {
	case ai < bi:
		return -1
	case ai > bi:
		return 1
	default:
		return 0
	}
}

package crawler

import (
	"context"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/entity"
)

// fixtureHomepageID is the synthetic id of the space homepage: the
// implicit root of fixtureNodes, never itself returned by a descendants
// call (matching how a real homepage is never its own descendant).
const fixtureHomepageID = "0"

// fixtureNodes is a 77-node, 12-level-deep hierarchy across three
// branches, with folder clusters ranging from a single folder up to a
// run of four. Every node's title encodes its type (p/f), sequence
// number, and absolute level (e.g. "f08-L8" is the folder at absolute
// depth 8 with sequence number 8).
var fixtureNodes = []entity.Node{
	{ID: "1", Title: "p01-L1", Type: entity.NodeTypePage, ParentID: "0", ChildPosition: 0},
	{ID: "2", Title: "p02-L2", Type: entity.NodeTypePage, ParentID: "1", ChildPosition: 0},
	{ID: "3", Title: "p03-L3", Type: entity.NodeTypePage, ParentID: "2", ChildPosition: 0},
	{ID: "4", Title: "f04-L4", Type: entity.NodeTypeFolder, ParentID: "3", ChildPosition: 0},
	{ID: "5", Title: "p05-L5", Type: entity.NodeTypePage, ParentID: "4", ChildPosition: 0},
	{ID: "6", Title: "p06-L6", Type: entity.NodeTypePage, ParentID: "5", ChildPosition: 0},
	{ID: "7", Title: "p07-L7", Type: entity.NodeTypePage, ParentID: "6", ChildPosition: 0},
	{ID: "8", Title: "f08-L8", Type: entity.NodeTypeFolder, ParentID: "7", ChildPosition: 0},
	{ID: "9", Title: "p09-L9", Type: entity.NodeTypePage, ParentID: "8", ChildPosition: 0},
	{ID: "10", Title: "p10-L10", Type: entity.NodeTypePage, ParentID: "9", ChildPosition: 0},
	{ID: "11", Title: "p11-L11", Type: entity.NodeTypePage, ParentID: "10", ChildPosition: 0},
	{ID: "12", Title: "p12-L12", Type: entity.NodeTypePage, ParentID: "11", ChildPosition: 0},
	{ID: "13", Title: "p13-L9", Type: entity.NodeTypePage, ParentID: "8", ChildPosition: 1},
	{ID: "14", Title: "f14-L9", Type: entity.NodeTypeFolder, ParentID: "8", ChildPosition: 2},
	{ID: "15", Title: "f15-L9", Type: entity.NodeTypeFolder, ParentID: "8", ChildPosition: 3},
	{ID: "16", Title: "p16-L5", Type: entity.NodeTypePage, ParentID: "4", ChildPosition: 1},
	{ID: "17", Title: "f17-L5", Type: entity.NodeTypeFolder, ParentID: "4", ChildPosition: 2},
	{ID: "18", Title: "p18-L5", Type: entity.NodeTypePage, ParentID: "4", ChildPosition: 3},
	{ID: "19", Title: "f19-L5", Type: entity.NodeTypeFolder, ParentID: "4", ChildPosition: 4},
	{ID: "20", Title: "p20-L5", Type: entity.NodeTypePage, ParentID: "4", ChildPosition: 5},
	{ID: "21", Title: "f21-L4", Type: entity.NodeTypeFolder, ParentID: "3", ChildPosition: 1},
	{ID: "22", Title: "p22-L5", Type: entity.NodeTypePage, ParentID: "21", ChildPosition: 0},
	{ID: "23", Title: "f23-L6", Type: entity.NodeTypeFolder, ParentID: "22", ChildPosition: 0},
	{ID: "24", Title: "p24-L7", Type: entity.NodeTypePage, ParentID: "23", ChildPosition: 0},
	{ID: "25", Title: "f25-L8", Type: entity.NodeTypeFolder, ParentID: "24", ChildPosition: 0},
	{ID: "26", Title: "p26-L9", Type: entity.NodeTypePage, ParentID: "25", ChildPosition: 0},
	{ID: "27", Title: "f27-L10", Type: entity.NodeTypeFolder, ParentID: "26", ChildPosition: 0},
	{ID: "28", Title: "p28-L11", Type: entity.NodeTypePage, ParentID: "27", ChildPosition: 0},
	{ID: "29", Title: "f29-L12", Type: entity.NodeTypeFolder, ParentID: "28", ChildPosition: 0},
	{ID: "30", Title: "f30-L9", Type: entity.NodeTypeFolder, ParentID: "25", ChildPosition: 1},
	{ID: "31", Title: "p31-L9", Type: entity.NodeTypePage, ParentID: "25", ChildPosition: 2},
	{ID: "32", Title: "f32-L9", Type: entity.NodeTypeFolder, ParentID: "25", ChildPosition: 3},
	{ID: "33", Title: "f33-L5", Type: entity.NodeTypeFolder, ParentID: "21", ChildPosition: 1},
	{ID: "34", Title: "p34-L5", Type: entity.NodeTypePage, ParentID: "21", ChildPosition: 2},
	{ID: "35", Title: "f35-L5", Type: entity.NodeTypeFolder, ParentID: "21", ChildPosition: 3},
	{ID: "36", Title: "p36-L5", Type: entity.NodeTypePage, ParentID: "21", ChildPosition: 4},
	{ID: "37", Title: "f37-L3", Type: entity.NodeTypeFolder, ParentID: "2", ChildPosition: 1},
	{ID: "38", Title: "p38-L4", Type: entity.NodeTypePage, ParentID: "37", ChildPosition: 0},
	{ID: "39", Title: "p39-L5", Type: entity.NodeTypePage, ParentID: "38", ChildPosition: 0},
	{ID: "40", Title: "f40-L6", Type: entity.NodeTypeFolder, ParentID: "39", ChildPosition: 0},
	{ID: "41", Title: "p41-L7", Type: entity.NodeTypePage, ParentID: "40", ChildPosition: 0},
	{ID: "42", Title: "p42-L8", Type: entity.NodeTypePage, ParentID: "41", ChildPosition: 0},
	{ID: "43", Title: "f43-L9", Type: entity.NodeTypeFolder, ParentID: "42", ChildPosition: 0},
	{ID: "44", Title: "p44-L10", Type: entity.NodeTypePage, ParentID: "43", ChildPosition: 0},
	{ID: "45", Title: "f45-L11", Type: entity.NodeTypeFolder, ParentID: "44", ChildPosition: 0},
	{ID: "46", Title: "p46-L12", Type: entity.NodeTypePage, ParentID: "45", ChildPosition: 0},
	{ID: "47", Title: "p47-L9", Type: entity.NodeTypePage, ParentID: "42", ChildPosition: 1},
	{ID: "48", Title: "f48-L9", Type: entity.NodeTypeFolder, ParentID: "42", ChildPosition: 2},
	{ID: "49", Title: "p49-L9", Type: entity.NodeTypePage, ParentID: "42", ChildPosition: 3},
	{ID: "50", Title: "f50-L5", Type: entity.NodeTypeFolder, ParentID: "38", ChildPosition: 1},
	{ID: "51", Title: "p51-L5", Type: entity.NodeTypePage, ParentID: "38", ChildPosition: 2},
	{ID: "52", Title: "f52-L5", Type: entity.NodeTypeFolder, ParentID: "38", ChildPosition: 3},
	{ID: "53", Title: "p53-L5", Type: entity.NodeTypePage, ParentID: "38", ChildPosition: 4},
	{ID: "54", Title: "f54-L5", Type: entity.NodeTypeFolder, ParentID: "38", ChildPosition: 5},
	{ID: "55", Title: "f55-L2", Type: entity.NodeTypeFolder, ParentID: "1", ChildPosition: 1},
	{ID: "56", Title: "p56-L3", Type: entity.NodeTypePage, ParentID: "55", ChildPosition: 0},
	{ID: "57", Title: "f57-L4", Type: entity.NodeTypeFolder, ParentID: "56", ChildPosition: 0},
	{ID: "58", Title: "p58-L5", Type: entity.NodeTypePage, ParentID: "57", ChildPosition: 0},
	{ID: "59", Title: "f59-L6", Type: entity.NodeTypeFolder, ParentID: "58", ChildPosition: 0},
	{ID: "60", Title: "p60-L7", Type: entity.NodeTypePage, ParentID: "59", ChildPosition: 0},
	{ID: "61", Title: "f61-L8", Type: entity.NodeTypeFolder, ParentID: "60", ChildPosition: 0},
	{ID: "62", Title: "p62-L9", Type: entity.NodeTypePage, ParentID: "61", ChildPosition: 0},
	{ID: "63", Title: "f63-L10", Type: entity.NodeTypeFolder, ParentID: "62", ChildPosition: 0},
	{ID: "64", Title: "p64-L11", Type: entity.NodeTypePage, ParentID: "63", ChildPosition: 0},
	{ID: "65", Title: "f65-L12", Type: entity.NodeTypeFolder, ParentID: "64", ChildPosition: 0},
	{ID: "66", Title: "f66-L1", Type: entity.NodeTypeFolder, ParentID: "0", ChildPosition: 1},
	{ID: "67", Title: "p67-L2", Type: entity.NodeTypePage, ParentID: "66", ChildPosition: 0},
	{ID: "68", Title: "f68-L3", Type: entity.NodeTypeFolder, ParentID: "67", ChildPosition: 0},
	{ID: "69", Title: "p69-L4", Type: entity.NodeTypePage, ParentID: "68", ChildPosition: 0},
	{ID: "70", Title: "f70-L5", Type: entity.NodeTypeFolder, ParentID: "69", ChildPosition: 0},
	{ID: "71", Title: "p71-L6", Type: entity.NodeTypePage, ParentID: "70", ChildPosition: 0},
	{ID: "72", Title: "f72-L7", Type: entity.NodeTypeFolder, ParentID: "71", ChildPosition: 0},
	{ID: "73", Title: "p73-L8", Type: entity.NodeTypePage, ParentID: "72", ChildPosition: 0},
	{ID: "74", Title: "f74-L9", Type: entity.NodeTypeFolder, ParentID: "73", ChildPosition: 0},
	{ID: "75", Title: "p75-L10", Type: entity.NodeTypePage, ParentID: "74", ChildPosition: 0},
	{ID: "76", Title: "f76-L11", Type: entity.NodeTypeFolder, ParentID: "75", ChildPosition: 0},
	{ID: "77", Title: "p77-L12", Type: entity.NodeTypePage, ParentID: "76", ChildPosition: 0},
}

// fixtureFetcher simulates a Confluence descendants endpoint: querying
// any node in the fixture returns every descendant within MaxDepth
// relative hops, tagged with its depth relative to the query root. It
// never returns a node further away than MaxDepth regardless of the
// node's absolute position, exactly like the real depth-capped API.
type fixtureFetcher struct {
	byID     map[string]entity.Node
	children map[string][]string
}

func newFixtureFetcher() *fixtureFetcher {
	f := &fixtureFetcher{
		byID:     make(map[string]entity.Node, len(fixtureNodes)),
		children: make(map[string][]string),
	}
	for _, n := range fixtureNodes {
		f.byID[n.ID] = n
		f.children[n.ParentID] = append(f.children[n.ParentID], n.ID)
	}
	return f
}

func (f *fixtureFetcher) GetDescendants(_ context.Context, rootID string, _ RootType) ([]entity.Node, error) {
	type queued struct {
		id    string
		depth int
	}
	var result []entity.Node
	queue := []queued{{id: rootID, depth: 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= MaxDepth {
			continue
		}
		for _, childID := range f.children[cur.id] {
			child := f.byID[childID]
			tagged := child
			tagged.Depth = cur.depth + 1
			result = append(result, tagged)
			queue = append(queue, queued{id: childID, depth: cur.depth + 1})
		}
	}
	return result, nil
}

// Package markdown converts Atlas Document Format (ADF) JSON, the body
// format Confluence returns for body-format=atlas_doc_format, into
// Markdown text. The rendering itself is delegated to the jira-cli adf
// library's Markdown translator; this package only bridges the
// JSON-unmarshaled document shape into the library's node types.
package markdown

import (
	"fmt"
	"strings"

	"github.com/jcstorino/jira-cli/pkg/adf"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/docerrors"
)

// ADF is the root "doc" node of an Atlas Document Format document.
type ADF struct {
	Type    string       `json:"type"`
	Version int          `json:"version"`
	Content []ADFContent `json:"content"`
}

// ADFContent is a single ADF node: a block (paragraph, heading, list,
// table, ...) or an inline text run. Attrs and Marks carry formatting;
// Content nests child nodes for block types.
type ADFContent struct {
	Type    string                 `json:"type"`
	Text    string                 `json:"text,omitempty"`
	Content []ADFContent           `json:"content,omitempty"`
	Attrs   map[string]interface{} `json:"attrs,omitempty"`
	Marks   []ADFMark              `json:"marks,omitempty"`
}

// ADFMark is an inline formatting mark (strong, em, strike, code, link).
type ADFMark struct {
	Type  string                 `json:"type"`
	Attrs map[string]interface{} `json:"attrs,omitempty"`
}

// knownNodeTypes is the set of ADF node types the conversion accepts.
// Anything outside it is a conversion failure unless ignoreError is set.
var knownNodeTypes = map[string]bool{
	"paragraph":    true,
	"heading":      true,
	"text":         true,
	"hardBreak":    true,
	"bulletList":   true,
	"orderedList":  true,
	"listItem":     true,
	"codeBlock":    true,
	"blockquote":   true,
	"rule":         true,
	"table":        true,
	"tableRow":     true,
	"tableHeader":  true,
	"tableCell":    true,
	"panel":        true,
	"expand":       true,
	"nestedExpand": true,
	"media":        true,
	"mediaSingle":  true,
	"mediaGroup":   true,
	"mention":      true,
	"emoji":        true,
	"inlineCard":   true,
	"status":       true,
	"date":         true,
}

// FromAtlasDoc converts an Atlas Doc Format JSON document into Markdown
// using the adf library's Markdown translator. ignoreError controls
// whether a node type this converter doesn't recognize aborts the
// conversion (false) or is dropped from the output (true).
func FromAtlasDoc(doc *ADF, pageID string, ignoreError bool) (text string, err error) {
	if doc == nil {
		return "", nil
	}

	defer func() {
		if r := recover(); r != nil {
			if ignoreError {
				text, err = "", nil
				return
			}
			err = &docerrors.MarkdownConversionError{PageID: pageID, Err: fmt.Errorf("%v", r)}
		}
	}()

	libDoc := &adf.ADF{
		Version: doc.Version,
		DocType: doc.Type,
		Content: toNodes(doc.Content, ignoreError),
	}
	if len(libDoc.Content) == 0 {
		return "", nil
	}

	translator := adf.NewTranslator(libDoc, adf.NewMarkdownTranslator())
	out := strings.TrimSpace(translator.Translate())
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}

// toNodes converts a slice of JSON-shaped ADF nodes to the library's
// node type, dropping nodes toNode rejects.
func toNodes(content []ADFContent, ignoreError bool) []*adf.Node {
	if len(content) == 0 {
		return nil
	}
	nodes := make([]*adf.Node, 0, len(content))
	for _, c := range content {
		if n := toNode(c, ignoreError); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// toNode converts one node. Media nodes become a text placeholder since
// an exported Markdown file has nowhere to put the binary attachment.
func toNode(c ADFContent, ignoreError bool) *adf.Node {
	if !knownNodeTypes[c.Type] {
		if ignoreError {
			return nil
		}
		panic(fmt.Sprintf("unsupported ADF node type %q", c.Type))
	}

	if c.Type == "media" {
		altText := "[Embedded image]"
		if alt, ok := c.Attrs["alt"].(string); ok && alt != "" {
			altText = fmt.Sprintf("[Image: %s]", alt)
		}
		return &adf.Node{
			NodeType:  adf.NodeType("text"),
			NodeValue: adf.NodeValue{Text: altText},
		}
	}

	node := &adf.Node{
		NodeType: adf.NodeType(c.Type),
		Content:  toNodes(c.Content, ignoreError),
		NodeValue: adf.NodeValue{
			Text:  c.Text,
			Marks: toMarks(c.Marks),
		},
	}
	if len(c.Attrs) > 0 {
		node.Attributes = c.Attrs
	}
	return node
}

func toMarks(marks []ADFMark) []adf.MarkNode {
	if len(marks) == 0 {
		return nil
	}
	out := make([]adf.MarkNode, 0, len(marks))
	for _, m := range marks {
		mn := adf.MarkNode{MarkType: adf.NodeType(m.Type)}
		if len(m.Attrs) > 0 {
			mn.Attributes = m.Attrs
		}
		out = append(out, mn)
	}
	return out
}

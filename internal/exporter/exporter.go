// Package exporter renders crawled Entity+Page pairs into the XML
// document form and writes one file per entity under an output
// directory, named by the entity's breadcrumb path.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/entity"
)

const tab = "  "

// BreadcrumbType selects which path the exporter names files after.
type BreadcrumbType int

const (
	// BreadcrumbTitle names files after the title breadcrumb (the
	// default — human-readable).
	BreadcrumbTitle BreadcrumbType = iota
	// BreadcrumbID names files after the id breadcrumb (stable across
	// title renames).
	BreadcrumbID
)

// Field names one of the XML document's tags, for use with WantedFields.
type Field string

const (
	FieldSourceType      Field = "source_type"
	FieldConfluenceURL   Field = "confluence_url"
	FieldTitle           Field = "title"
	FieldMarkdownContent Field = "markdown_content"
)

// defaultFields is the full tag set, in the fixed order the XML document
// form requires.
var defaultFields = []Field{FieldSourceType, FieldConfluenceURL, FieldTitle, FieldMarkdownContent}

// Document is everything the exporter needs to render one entity: its
// crawled identity plus the fetched body, already converted to markdown.
type Document struct {
	Entity          entity.Entity
	ConfluenceURL   string // the page's webui URL
	MarkdownContent string
}

// RenderXML renders a Document into the XML document form, writing only
// the fields in wantedFields (in the fixed source_type/confluence_url/
// title/markdown_content order); a nil or empty wantedFields renders
// every field. The markdown_content body is prefixed with a "# {title}"
// heading, matching the on-disk document form.
func RenderXML(doc Document, wantedFields []Field) string {
	node := doc.Entity.Node()
	fields := wantedFields
	if len(fields) == 0 {
		fields = defaultFields
	}
	wanted := make(map[Field]bool, len(fields))
	for _, f := range fields {
		wanted[f] = true
	}

	var b strings.Builder
	b.WriteString("<document>\n")
	if wanted[FieldSourceType] {
		writeTag(&b, 1, "source_type", "Confluence Page")
	}
	if wanted[FieldConfluenceURL] {
		writeTag(&b, 1, "confluence_url", doc.ConfluenceURL)
	}
	if wanted[FieldTitle] {
		writeTag(&b, 1, "title", node.Title)
	}
	if wanted[FieldMarkdownContent] {
		writeTag(&b, 1, "markdown_content", "# "+node.Title+"\n\n"+doc.MarkdownContent)
	}
	b.WriteString("</document>\n")
	return b.String()
}

func writeTag(b *strings.Builder, depth int, tag, value string) {
	indent := strings.Repeat(tab, depth)
	b.WriteString(indent)
	b.WriteString("<")
	b.WriteString(tag)
	b.WriteString(">")
	if strings.Contains(value, "\n") {
		b.WriteString("\n")
		for _, line := range strings.Split(value, "\n") {
			b.WriteString(strings.Repeat(tab, depth+1))
			b.WriteString(escape(line))
			b.WriteString("\n")
		}
		b.WriteString(indent)
	} else {
		b.WriteString(escape(value))
	}
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">\n")
}

func escape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	return r.Replace(s)
}

// breadcrumbPath picks the id or title breadcrumb for an entity, per
// breadcrumbType.
func breadcrumbPath(e entity.Entity, breadcrumbType BreadcrumbType) string {
	if breadcrumbType == BreadcrumbID {
		return e.IDBreadcrumbPath()
	}
	return e.TitleBreadcrumbPath()
}

// Export writes one XML file per document under dirOut, named by the
// entity's id or title breadcrumb path (per breadcrumbType), creating
// parent directories as needed. A nil or empty wantedFields renders
// every XML tag.
func Export(dirOut string, docs []Document, breadcrumbType BreadcrumbType, wantedFields []Field) error {
	for _, doc := range docs {
		relPath := breadcrumbPath(doc.Entity, breadcrumbType) + ".xml"
		fullPath := filepath.Join(dirOut, sanitizePathSegments(relPath))
		if err := safeWrite(fullPath, []byte(RenderXML(doc, wantedFields))); err != nil {
			return fmt.Errorf("export %s: %w", doc.Entity.Node().ID, err)
		}
	}
	return nil
}

// ConcatenateToOne writes every rendered document into a single file, in
// the order docs is given (the caller is expected to have already
// sorted it), separated by a blank line, mirroring
// concatenate_files_in_folder_to_one.
func ConcatenateToOne(pathOut string, docs []Document, wantedFields []Field) error {
	var b strings.Builder
	for _, doc := range docs {
		b.WriteString(RenderXML(doc, wantedFields))
		b.WriteString("\n")
	}
	return safeWrite(pathOut, []byte(b.String()))
}

func safeWrite(path string, content []byte) error {
	if err := os.WriteFile(path, content, 0o644); err != nil {
		if os.IsNotExist(err) {
			if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
				return mkErr
			}
			return os.WriteFile(path, content, 0o644)
		}
		return err
	}
	return nil
}

// sanitizePathSegments replaces path separators embedded in breadcrumb
// titles so a "/" in a page title can't escape dirOut.
func sanitizePathSegments(relPath string) string {
	return strings.ReplaceAll(relPath, string(filepath.Separator), "_")
}

package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/entity"
)

func pageDoc(id, title, parentID string, position int, body string) Document {
	return Document{
		Entity: entity.Entity{
			Lineage: []entity.Node{
				{ID: id, Title: title, Type: entity.NodeTypePage, ParentID: parentID, ChildPosition: position},
			},
		},
		ConfluenceURL:   "https://example.atlassian.net/wiki/spaces/DOCS/pages/" + id,
		MarkdownContent: body,
	}
}

func TestRenderXML_TagOrderAndHeading(t *testing.T) {
	doc := pageDoc("1", "Hello World", "", 0, "some body text")
	xml := RenderXML(doc, nil)

	wantOrder := []string{"<source_type>", "<confluence_url>", "<title>", "<markdown_content>"}
	lastIdx := -1
	for _, tag := range wantOrder {
		idx := strings.Index(xml, tag)
		if idx < 0 {
			t.Fatalf("RenderXML output missing %s: %s", tag, xml)
		}
		if idx <= lastIdx {
			t.Fatalf("tag %s is out of order in:\n%s", tag, xml)
		}
		lastIdx = idx
	}

	if !strings.Contains(xml, "# Hello World") {
		t.Errorf("expected markdown_content to be prefixed with a title heading, got:\n%s", xml)
	}
	if !strings.Contains(xml, "some body text") {
		t.Errorf("expected markdown_content to contain the body, got:\n%s", xml)
	}
	if !strings.HasPrefix(xml, "<document>\n") || !strings.HasSuffix(xml, "</document>\n") {
		t.Errorf("expected document to be wrapped in <document>...</document>, got:\n%s", xml)
	}
}

func TestRenderXML_WantedFieldsSubset(t *testing.T) {
	doc := pageDoc("1", "Title", "", 0, "body")
	xml := RenderXML(doc, []Field{FieldTitle})

	if !strings.Contains(xml, "<title>") {
		t.Error("expected <title> tag to be present")
	}
	for _, absent := range []string{"<source_type>", "<confluence_url>", "<markdown_content>"} {
		if strings.Contains(xml, absent) {
			t.Errorf("expected %s to be omitted when not in wantedFields, got:\n%s", absent, xml)
		}
	}
}

func TestRenderXML_EscapesSpecialCharacters(t *testing.T) {
	doc := pageDoc("1", "A & B <tag>", "", 0, "body")
	xml := RenderXML(doc, []Field{FieldTitle})
	if strings.Contains(xml, "A & B <tag>") {
		t.Errorf("expected title to be escaped, got:\n%s", xml)
	}
	if !strings.Contains(xml, "A &amp; B &lt;tag&gt;") {
		t.Errorf("expected escaped title, got:\n%s", xml)
	}
}

func TestExport_WritesOneFilePerDocumentByTitleBreadcrumb(t *testing.T) {
	dir := t.TempDir()
	docs := []Document{
		pageDoc("1", "Root", "", 0, "root body"),
	}
	docs[0].Entity = entity.Entity{Lineage: []entity.Node{
		{ID: "2", Title: "Child", Type: entity.NodeTypePage, ParentID: "1", ChildPosition: 0},
		{ID: "1", Title: "Root", Type: entity.NodeTypePage, ChildPosition: 0},
	}}

	if err := Export(dir, docs, BreadcrumbTitle, nil); err != nil {
		t.Fatalf("Export: %v", err)
	}

	wantPath := filepath.Join(dir, "Root~Child.xml")
	if _, err := os.Stat(wantPath); err != nil {
		t.Fatalf("expected %s to exist: %v", wantPath, err)
	}
}

func TestExport_IDBreadcrumb(t *testing.T) {
	dir := t.TempDir()
	doc := pageDoc("1", "Root", "", 0, "body")
	if err := Export(dir, []Document{doc}, BreadcrumbID, nil); err != nil {
		t.Fatalf("Export: %v", err)
	}
	wantPath := filepath.Join(dir, "1.xml")
	if _, err := os.Stat(wantPath); err != nil {
		t.Fatalf("expected %s to exist: %v", wantPath, err)
	}
}

func TestExport_SanitizesPathSeparatorsInTitle(t *testing.T) {
	dir := t.TempDir()
	doc := pageDoc("1", "A/B", "", 0, "body")
	if err := Export(dir, []Document{doc}, BreadcrumbTitle, nil); err != nil {
		t.Fatalf("Export: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one file directly under dir (no escaped subdirectory), got %d", len(entries))
	}
}

func TestConcatenateToOne_PreservesGivenOrder(t *testing.T) {
	dir := t.TempDir()
	docs := []Document{
		pageDoc("1", "First", "", 0, "first body"),
		pageDoc("2", "Second", "", 1, "second body"),
	}
	out := filepath.Join(dir, "all_in_one.txt")
	if err := ConcatenateToOne(out, docs, nil); err != nil {
		t.Fatalf("ConcatenateToOne: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	firstIdx := strings.Index(content, "first body")
	secondIdx := strings.Index(content, "second body")
	if firstIdx < 0 || secondIdx < 0 || firstIdx > secondIdx {
		t.Errorf("expected documents concatenated in given order, got:\n%s", content)
	}
}

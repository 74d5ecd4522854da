package markdown

import (
	"strings"
	"testing"
)

func textNode(s string) ADFContent { return ADFContent{Type: "text", Text: s} }

func paragraph(children ...ADFContent) ADFContent {
	return ADFContent{Type: "paragraph", Content: children}
}

func TestFromAtlasDoc_Paragraph(t *testing.T) {
	doc := &ADF{Type: "doc", Version: 1, Content: []ADFContent{
		paragraph(textNode("hello world")),
	}}
	got, err := FromAtlasDoc(doc, "1", false)
	if err != nil {
		t.Fatalf("FromAtlasDoc: %v", err)
	}
	if !strings.Contains(got, "hello world") {
		t.Errorf("got %q, want it to contain %q", got, "hello world")
	}
}

func TestFromAtlasDoc_Heading(t *testing.T) {
	doc := &ADF{Content: []ADFContent{
		{Type: "heading", Attrs: map[string]interface{}{"level": float64(2)}, Content: []ADFContent{textNode("Section")}},
	}}
	got, err := FromAtlasDoc(doc, "1", false)
	if err != nil {
		t.Fatalf("FromAtlasDoc: %v", err)
	}
	if !strings.Contains(got, "## Section") {
		t.Errorf("got %q, want it to contain %q", got, "## Section")
	}
}

func TestFromAtlasDoc_BulletList(t *testing.T) {
	doc := &ADF{Content: []ADFContent{
		{Type: "bulletList", Content: []ADFContent{
			{Type: "listItem", Content: []ADFContent{paragraph(textNode("first"))}},
			{Type: "listItem", Content: []ADFContent{paragraph(textNode("second"))}},
		}},
	}}
	got, err := FromAtlasDoc(doc, "1", false)
	if err != nil {
		t.Fatalf("FromAtlasDoc: %v", err)
	}
	if !strings.Contains(got, "- first") || !strings.Contains(got, "- second") {
		t.Errorf("got %q, want bullet items for first and second", got)
	}
}

func TestFromAtlasDoc_CodeBlock(t *testing.T) {
	doc := &ADF{Content: []ADFContent{
		{Type: "codeBlock", Attrs: map[string]interface{}{"language": "go"}, Content: []ADFContent{textNode("fmt.Println(1)")}},
	}}
	got, err := FromAtlasDoc(doc, "1", false)
	if err != nil {
		t.Fatalf("FromAtlasDoc: %v", err)
	}
	if !strings.Contains(got, "```go") || !strings.Contains(got, "fmt.Println(1)") {
		t.Errorf("got %q, want a fenced go code block", got)
	}
}

func TestFromAtlasDoc_TextMarks(t *testing.T) {
	doc := &ADF{Content: []ADFContent{
		paragraph(ADFContent{Type: "text", Text: "bold", Marks: []ADFMark{{Type: "strong"}}}),
	}}
	got, err := FromAtlasDoc(doc, "1", false)
	if err != nil {
		t.Fatalf("FromAtlasDoc: %v", err)
	}
	if !strings.Contains(got, "**bold**") {
		t.Errorf("got %q, want bold marks rendered as **bold**", got)
	}
}

func TestFromAtlasDoc_Link(t *testing.T) {
	doc := &ADF{Content: []ADFContent{
		paragraph(ADFContent{Type: "text", Text: "docs", Marks: []ADFMark{{Type: "link", Attrs: map[string]interface{}{"href": "https://example.com"}}}}),
	}}
	got, err := FromAtlasDoc(doc, "1", false)
	if err != nil {
		t.Fatalf("FromAtlasDoc: %v", err)
	}
	if !strings.Contains(got, "docs") || !strings.Contains(got, "https://example.com") {
		t.Errorf("got %q, want the link text and target rendered", got)
	}
}

func TestFromAtlasDoc_Rule(t *testing.T) {
	doc := &ADF{Content: []ADFContent{{Type: "rule"}}}
	got, err := FromAtlasDoc(doc, "1", false)
	if err != nil {
		t.Fatalf("FromAtlasDoc: %v", err)
	}
	if !strings.Contains(got, "---") {
		t.Errorf("got %q, want a horizontal rule", got)
	}
}

func TestFromAtlasDoc_Table(t *testing.T) {
	doc := &ADF{Content: []ADFContent{
		{Type: "table", Content: []ADFContent{
			{Type: "tableRow", Content: []ADFContent{
				{Type: "tableHeader", Content: []ADFContent{paragraph(textNode("Name"))}},
				{Type: "tableHeader", Content: []ADFContent{paragraph(textNode("Value"))}},
			}},
			{Type: "tableRow", Content: []ADFContent{
				{Type: "tableCell", Content: []ADFContent{paragraph(textNode("a"))}},
				{Type: "tableCell", Content: []ADFContent{paragraph(textNode("1"))}},
			}},
		}},
	}}
	got, err := FromAtlasDoc(doc, "1", false)
	if err != nil {
		t.Fatalf("FromAtlasDoc: %v", err)
	}
	for _, cell := range []string{"Name", "Value", "a", "1"} {
		if !strings.Contains(got, cell) {
			t.Errorf("got %q, want table cell %q rendered", got, cell)
		}
	}
	if !strings.Contains(got, "|") {
		t.Errorf("got %q, want pipe-delimited table rows", got)
	}
}

func TestFromAtlasDoc_NilDoc(t *testing.T) {
	got, err := FromAtlasDoc(nil, "1", false)
	if err != nil {
		t.Fatalf("FromAtlasDoc(nil): %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty string for a nil doc", got)
	}
}

func TestFromAtlasDoc_UnknownNodeType_IgnoreErrorTrue(t *testing.T) {
	doc := &ADF{Content: []ADFContent{
		{Type: "totallyUnknownNodeType"},
	}}
	got, err := FromAtlasDoc(doc, "1", true)
	if err != nil {
		t.Fatalf("FromAtlasDoc with ignoreError=true should not fail, got %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty output for an unrecognized node when ignoring errors", got)
	}
}

func TestFromAtlasDoc_UnknownNodeType_IgnoreErrorFalse(t *testing.T) {
	doc := &ADF{Content: []ADFContent{
		{Type: "totallyUnknownNodeType"},
	}}
	_, err := FromAtlasDoc(doc, "42", false)
	if err == nil {
		t.Fatal("expected a MarkdownConversionError for an unrecognized node type")
	}
	if !strings.Contains(err.Error(), "42") {
		t.Errorf("expected the error to reference the page id, got %v", err)
	}
}

package selector

import (
	"testing"
)

func TestParsePattern_BareID(t *testing.T) {
	cases := []struct {
		raw      string
		wantID   string
		wantMode MatchMode
	}{
		{"123456", "123456", Self},
		{"123456/*", "123456", Descendants},
		{"123456/**", "123456", Recursive},
	}
	for _, c := range cases {
		p, err := ParsePattern(c.raw)
		if err != nil {
			t.Fatalf("ParsePattern(%q): %v", c.raw, err)
		}
		if p.ID != c.wantID || p.Mode != c.wantMode {
			t.Errorf("ParsePattern(%q) = %+v, want id=%q mode=%v", c.raw, p, c.wantID, c.wantMode)
		}
	}
}

func TestParsePattern_PageURL(t *testing.T) {
	cases := []struct {
		raw      string
		wantID   string
		wantMode MatchMode
	}{
		{"https://example.atlassian.net/wiki/spaces/DOCS/pages/123456", "123456", Self},
		{"https://example.atlassian.net/wiki/spaces/DOCS/pages/123456/Some-Title", "123456", Self},
		{"https://example.atlassian.net/wiki/spaces/DOCS/pages/123456/Some-Title/*", "123456", Descendants},
		{"https://example.atlassian.net/wiki/spaces/DOCS/pages/123456/**", "123456", Recursive},
	}
	for _, c := range cases {
		p, err := ParsePattern(c.raw)
		if err != nil {
			t.Fatalf("ParsePattern(%q): %v", c.raw, err)
		}
		if p.ID != c.wantID || p.Mode != c.wantMode {
			t.Errorf("ParsePattern(%q) = %+v, want id=%q mode=%v", c.raw, p, c.wantID, c.wantMode)
		}
	}
}

func TestParsePattern_FolderURL(t *testing.T) {
	cases := []struct {
		raw      string
		wantID   string
		wantMode MatchMode
	}{
		{"https://example.atlassian.net/wiki/spaces/DOCS/folder/987654", "987654", Self},
		{"https://example.atlassian.net/wiki/spaces/DOCS/folder/987654?foo=bar", "987654", Self},
		{"https://example.atlassian.net/wiki/spaces/DOCS/folder/987654/*", "987654", Descendants},
		{"https://example.atlassian.net/wiki/spaces/DOCS/folder/987654/**", "987654", Recursive},
	}
	for _, c := range cases {
		p, err := ParsePattern(c.raw)
		if err != nil {
			t.Fatalf("ParsePattern(%q): %v", c.raw, err)
		}
		if p.ID != c.wantID || p.Mode != c.wantMode {
			t.Errorf("ParsePattern(%q) = %+v, want id=%q mode=%v", c.raw, p, c.wantID, c.wantMode)
		}
	}
}

func TestParsePattern_Invalid(t *testing.T) {
	cases := []string{
		"",
		"not-a-url-or-id",
		"https://example.atlassian.net/wiki/spaces/DOCS/whiteboard/123",
		"ftp://example.com/wiki/spaces/DOCS/pages/123456",
	}
	for _, raw := range cases {
		if _, err := ParsePattern(raw); err == nil {
			t.Errorf("ParsePattern(%q): expected error, got nil", raw)
		}
	}
}

func TestPattern_IsMatch(t *testing.T) {
	path := []string{"1", "2", "3"}

	self := Pattern{ID: "3", Mode: Self}
	if !self.IsMatch(path) {
		t.Error("SELF pattern on leaf id should match")
	}
	if (Pattern{ID: "2", Mode: Self}).IsMatch(path) {
		t.Error("SELF pattern on ancestor id should not match")
	}

	desc := Pattern{ID: "2", Mode: Descendants}
	if !desc.IsMatch(path) {
		t.Error("DESCENDANTS pattern on strict ancestor should match")
	}
	if (Pattern{ID: "3", Mode: Descendants}).IsMatch(path) {
		t.Error("DESCENDANTS pattern on the node itself should not match")
	}

	rec := Pattern{ID: "2", Mode: Recursive}
	if !rec.IsMatch(path) {
		t.Error("RECURSIVE pattern on ancestor should match")
	}
	if !(Pattern{ID: "3", Mode: Recursive}).IsMatch(path) {
		t.Error("RECURSIVE pattern on self should match")
	}
	if (Pattern{ID: "99", Mode: Recursive}).IsMatch(path) {
		t.Error("RECURSIVE pattern on unrelated id should not match")
	}
}

// TestPattern_RecursiveIsSelfOrDescendants verifies that a Recursive
// match is exactly a Self match or a Descendants match, across a spread
// of paths and ids.
func TestPattern_RecursiveIsSelfOrDescendants(t *testing.T) {
	paths := [][]string{
		{"1"},
		{"1", "2"},
		{"1", "2", "3"},
		{"5", "6", "7", "8"},
	}
	ids := []string{"1", "2", "3", "6", "99"}

	for _, path := range paths {
		for _, id := range ids {
			rec := Pattern{ID: id, Mode: Recursive}.IsMatch(path)
			self := Pattern{ID: id, Mode: Self}.IsMatch(path)
			desc := Pattern{ID: id, Mode: Descendants}.IsMatch(path)
			if rec != (self || desc) {
				t.Errorf("path=%v id=%s: RECURSIVE=%v, SELF=%v, DESCENDANTS=%v — law violated", path, id, rec, self, desc)
			}
		}
	}
}

func TestSelector_EmptyAdmitsEverything(t *testing.T) {
	s := Selector{}
	paths := [][]string{{"1"}, {"1", "2"}, {"42", "7", "99"}}
	for _, p := range paths {
		if !s.ShouldInclude(p) {
			t.Errorf("empty selector should admit %v", p)
		}
	}
}

func TestSelector_ExcludeDominatesInclude(t *testing.T) {
	s, err := New([]string{"1/**"}, []string{"3"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.ShouldInclude([]string{"1", "2", "3"}) {
		t.Error("exclude should override a matching include")
	}
	if !s.ShouldInclude([]string{"1", "2"}) {
		t.Error("non-excluded descendant of an included pattern should still be included")
	}
}

func TestSelector_IncludeDescendantsOnly(t *testing.T) {
	s, err := New([]string{"4/*"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.ShouldInclude([]string{"1", "4"}) {
		t.Error("node 4 itself should not be included by a DESCENDANTS-only include pattern")
	}
	if !s.ShouldInclude([]string{"1", "4", "5"}) {
		t.Error("a descendant of node 4 should be included")
	}
	if s.ShouldInclude([]string{"1", "9"}) {
		t.Error("an unrelated node should not be included")
	}
}

type fakeIDPathed struct {
	id   string
	path []string
}

func (f fakeIDPathed) IDPath() []string { return f.path }

func TestFilterPages(t *testing.T) {
	items := []fakeIDPathed{
		{id: "a", path: []string{"1"}},
		{id: "b", path: []string{"1", "2"}},
		{id: "c", path: []string{"1", "3"}},
	}
	got, err := FilterPages(items, []string{"1/*"}, []string{"3"})
	if err != nil {
		t.Fatalf("FilterPages: %v", err)
	}
	want := []string{"b"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want ids %v", got, want)
	}
	for i, g := range got {
		if g.id != want[i] {
			t.Errorf("got[%d].id = %q, want %q", i, g.id, want[i])
		}
	}
}

func TestFilterPages_InvalidPattern(t *testing.T) {
	if _, err := FilterPages([]fakeIDPathed{}, []string{"not-a-pattern"}, nil); err == nil {
		t.Error("expected an error for an invalid include pattern")
	}
}

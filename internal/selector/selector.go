// Package selector parses Confluence page/folder URLs (or bare ids) into
// match patterns and applies include/exclude rules to a crawled id path.
package selector

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/docerrors"
)

// MatchMode controls which elements of an id path a pattern matches
// against.
type MatchMode int

const (
	// Self matches only the last element of the id path (the node itself).
	Self MatchMode = iota
	// Descendants matches any element except the last.
	Descendants
	// Recursive matches the node itself and all of its descendants.
	Recursive
)

func (m MatchMode) String() string {
	switch m {
	case Self:
		return ""
	case Descendants:
		return "/*"
	case Recursive:
		return "/**"
	default:
		return "?"
	}
}

// Pattern is a single include/exclude rule: an id plus the match mode
// derived from its URL suffix.
type Pattern struct {
	ID   string
	Mode MatchMode
}

func (p Pattern) String() string {
	return fmt.Sprintf("Pattern(%q%s)", p.ID, p.Mode)
}

var (
	pageURLRe   = regexp.MustCompile(`^https?://[^/]+/wiki/spaces/[^/]+/pages/(\d+)(?:/[^/?]*)?$`)
	folderURLRe = regexp.MustCompile(`^https?://[^/]+/wiki/spaces/[^/]+/folder/(\d+)(?:[/?].*)?$`)
	bareIDRe    = regexp.MustCompile(`^\d+$`)
)

// ParsePattern parses a Confluence page URL, folder URL, or bare decimal
// id into a Pattern. A trailing "/*" requests Descendants mode, a
// trailing "/**" requests Recursive mode; absent, the mode is Self.
func ParsePattern(raw string) (Pattern, error) {
	if raw == "" {
		return Pattern{}, &docerrors.InvalidPatternError{Input: raw, Err: fmt.Errorf("empty pattern")}
	}

	input, mode := raw, Self
	switch {
	case strings.HasSuffix(input, "/**"):
		mode = Recursive
		input = strings.TrimSuffix(input, "/**")
	case strings.HasSuffix(input, "/*"):
		mode = Descendants
		input = strings.TrimSuffix(input, "/*")
	}

	if bareIDRe.MatchString(input) {
		return Pattern{ID: input, Mode: mode}, nil
	}

	if m := pageURLRe.FindStringSubmatch(input); m != nil {
		return Pattern{ID: m[1], Mode: mode}, nil
	}
	if m := folderURLRe.FindStringSubmatch(input); m != nil {
		return Pattern{ID: m[1], Mode: mode}, nil
	}

	return Pattern{}, &docerrors.InvalidPatternError{Input: raw, Err: fmt.Errorf("Invalid Confluence URL format")}
}

// IsMatch reports whether p matches idPath (root-to-leaf order, the last
// element being the node under test).
func (p Pattern) IsMatch(idPath []string) bool {
	if len(idPath) == 0 {
		return false
	}
	last := len(idPath) - 1
	switch p.Mode {
	case Self:
		return idPath[last] == p.ID
	case Descendants:
		for i := 0; i < last; i++ {
			if idPath[i] == p.ID {
				return true
			}
		}
		return false
	case Recursive:
		for _, id := range idPath {
			if id == p.ID {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Selector holds the include/exclude pattern lists for a crawl. An empty
// Include list admits everything that is not excluded; exclude always
// dominates include when both match the same node.
type Selector struct {
	Include []Pattern
	Exclude []Pattern
}

// New parses include and exclude pattern strings into a Selector.
func New(include, exclude []string) (Selector, error) {
	s := Selector{}
	for _, raw := range include {
		p, err := ParsePattern(raw)
		if err != nil {
			return Selector{}, err
		}
		s.Include = append(s.Include, p)
	}
	for _, raw := range exclude {
		p, err := ParsePattern(raw)
		if err != nil {
			return Selector{}, err
		}
		s.Exclude = append(s.Exclude, p)
	}
	return s, nil
}

// ShouldInclude reports whether idPath survives this selector: excluded
// if any exclude pattern matches, otherwise included if Include is
// empty or any include pattern matches.
func (s Selector) ShouldInclude(idPath []string) bool {
	for _, p := range s.Exclude {
		if p.IsMatch(idPath) {
			return false
		}
	}
	if len(s.Include) == 0 {
		return true
	}
	for _, p := range s.Include {
		if p.IsMatch(idPath) {
			return true
		}
	}
	return false
}

// IDPathed is anything a Selector can filter: a value paired with the
// lineage id path ShouldInclude matches against.
type IDPathed interface {
	IDPath() []string
}

// Select filters items down to the ones s.ShouldInclude admits,
// preserving order.
func Select[T IDPathed](s Selector, items []T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if s.ShouldInclude(item.IDPath()) {
			out = append(out, item)
		}
	}
	return out
}

// FilterPages parses include/exclude pattern strings into a Selector and
// applies it to items in one step.
func FilterPages[T IDPathed](items []T, include, exclude []string) ([]T, error) {
	s, err := New(include, exclude)
	if err != nil {
		return nil, err
	}
	return Select(s, items), nil
}

package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color styles for CLI output using lipgloss. Colors follow common
// conventions: green for success, blue for in-progress/info, yellow for
// warnings, red for errors, gray for faint/low-signal text.
var (
	// NodeType colors distinguish pages from folders in crawl/select output.
	NodeTypePage   = lipgloss.NewStyle().Foreground(lipgloss.Color("35")) // Green
	NodeTypeFolder = lipgloss.NewStyle().Foreground(lipgloss.Color("33")) // Blue

	// Cache outcome colors for "cache" subcommand output.
	CacheHit  = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))  // Green
	CacheMiss = lipgloss.NewStyle().Foreground(lipgloss.Color("245")) // Gray

	// General styles
	Bold      = lipgloss.NewStyle().Bold(true)
	Faint     = lipgloss.NewStyle().Faint(true)
	Success   = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))  // Green
	Warning   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")) // Yellow
	Error     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // Red
	Info      = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))  // Blue
	Cyan      = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))  // Cyan
	Highlight = lipgloss.NewStyle().Foreground(lipgloss.Color("141")) // Purple

	// Link style
	Link = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true)
)

// StyleNodeType returns nodeType ("page" or "folder") styled by kind, for
// the ID/TYPE/TITLE PATH table the crawl and select commands print.
// Unknown kinds return the value unchanged.
func StyleNodeType(nodeType string) string {
	switch nodeType {
	case "page":
		return NodeTypePage.Render(nodeType)
	case "folder":
		return NodeTypeFolder.Render(nodeType)
	default:
		return nodeType
	}
}

// StyleCacheOutcome styles a cache lookup outcome ("hit" or "miss") for the
// cache subcommand's diagnostic output. Unknown outcomes are unchanged.
func StyleCacheOutcome(outcome string) string {
	switch outcome {
	case "hit":
		return CacheHit.Render(outcome)
	case "miss":
		return CacheMiss.Render(outcome)
	default:
		return outcome
	}
}

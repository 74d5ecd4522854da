package confluence

import (
	"github.com/spf13/cobra"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/cmd/confluence/crawl"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/cmd/confluence/page"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/cmd/confluence/space"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/iostreams"
)

// NewCmdConfluence creates the confluence command group.
func NewCmdConfluence(ios *iostreams.IOStreams) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "confluence",
		Aliases: []string{"conf", "c"},
		Short:   "Work with Confluence",
		Long:    `Read and manage Confluence pages and spaces, and crawl, select, export, and cache a space's page hierarchy.`,
	}

	cmd.AddCommand(page.NewCmdPage(ios))
	cmd.AddCommand(space.NewCmdSpace(ios))
	cmd.AddCommand(crawl.NewCmdCrawl(ios))
	cmd.AddCommand(crawl.NewCmdSelect(ios))
	cmd.AddCommand(crawl.NewCmdExport(ios))
	cmd.AddCommand(crawl.NewCmdCache(ios))

	return cmd
}

package page

import (
	"github.com/spf13/cobra"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/iostreams"
)

// NewCmdPage creates the page command group.
func NewCmdPage(ios *iostreams.IOStreams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Work with Confluence pages",
		Long:  `List, view, create, and delete Confluence pages.`,
	}

	cmd.AddCommand(NewCmdList(ios))
	cmd.AddCommand(NewCmdGet(ios))
	cmd.AddCommand(NewCmdCreate(ios))
	cmd.AddCommand(NewCmdDelete(ios))

	return cmd
}

package space

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/confluence"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/iostreams"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/output"
)

// GetOptions holds the options for the get command.
type GetOptions struct {
	IO       *iostreams.IOStreams
	SpaceKey string
	JSON     bool
}

// NewCmdGet creates the get command.
func NewCmdGet(ios *iostreams.IOStreams) *cobra.Command {
	opts := &GetOptions{
		IO: ios,
	}

	cmd := &cobra.Command{
		Use:   "get <space-key>",
		Short: "Show a Confluence space",
		Long:  `Show a single Confluence space, including its homepage id.`,
		Example: `  # Show a space
  docpack confluence space get DOCS

  # Output as JSON
  docpack confluence space get DOCS --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SpaceKey = args[0]
			return runGet(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.JSON, "json", "j", false, "Output as JSON")

	return cmd
}

func runGet(ctx context.Context, opts *GetOptions) error {
	client, err := confluence.NewClientFromConfig()
	if err != nil {
		return err
	}

	space, err := client.GetSpaceByKey(ctx, opts.SpaceKey)
	if err != nil {
		return fmt.Errorf("failed to get space: %w", err)
	}

	if opts.JSON {
		return output.JSON(opts.IO.Out, space)
	}

	fmt.Fprintf(opts.IO.Out, "Key:      %s\n", space.Key)
	fmt.Fprintf(opts.IO.Out, "Name:     %s\n", space.Name)
	fmt.Fprintf(opts.IO.Out, "ID:       %s\n", space.ID)
	fmt.Fprintf(opts.IO.Out, "Type:     %s\n", space.Type)
	fmt.Fprintf(opts.IO.Out, "Status:   %s\n", space.Status)
	if space.HomepageID != "" {
		fmt.Fprintf(opts.IO.Out, "Homepage: %s\n", space.HomepageID)
	}

	return nil
}

package page

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
	IO     *iostreams.IOStreams
	PageID string
	JSON   bool
	Body   bool
}

// NewCmdGet creates the get command.
func NewCmdGet(ios *iostreams.IOStreams) *cobra.Command {
	opts := &GetOptions{
		IO: ios,
	}

	cmd := &cobra.Command{
		Use:   "get <page-id>",
		Short: "Show a Confluence page",
		Long:  `Show a single Confluence page's metadata, and optionally its body.`,
		Example: `  # Show a page
  docpack confluence page get 123456

  # Include the raw Atlas Doc Format body
  docpack confluence page get 123456 --body

  # Output as JSON
  docpack confluence page get 123456 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.PageID = args[0]
			return runGet(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.JSON, "json", "j", false, "Output as JSON")
	cmd.Flags().BoolVar(&opts.Body, "body", false, "Also print the page body (Atlas Doc Format JSON)")

	return cmd
}

func runGet(ctx context.Context, opts *GetOptions) error {
	client, err := confluence.NewClientFromConfig()
	if err != nil {
		return err
	}

	page, err := client.GetPage(ctx, opts.PageID)
	if err != nil {
		return fmt.Errorf("failed to get page: %w", err)
	}

	if opts.JSON {
		return output.JSON(opts.IO.Out, page)
	}

	fmt.Fprintf(opts.IO.Out, "ID:     %s\n", page.ID)
	fmt.Fprintf(opts.IO.Out, "Title:  %s\n", page.Title)
	fmt.Fprintf(opts.IO.Out, "Status: %s\n", page.Status)
	if page.ParentID != "" {
		fmt.Fprintf(opts.IO.Out, "Parent: %s\n", page.ParentID)
	}
	if page.Version != nil {
		fmt.Fprintf(opts.IO.Out, "Version: %d\n", page.Version.Number)
	}
	if page.Links != nil && page.Links.WebUI != "" {
		fmt.Fprintf(opts.IO.Out, "Link:   https://%s/wiki%s\n", client.Hostname(), page.Links.WebUI)
	}
	if opts.Body && page.Body != nil && page.Body.AtlasDocFormat != nil {
		fmt.Fprintln(opts.IO.Out, "")
		fmt.Fprintln(opts.IO.Out, page.Body.AtlasDocFormat.Value)
	}

	return nil
}

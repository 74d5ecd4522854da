package page

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/confluence"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/iostreams"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/output"
)

// emptyADFBody is the smallest valid Atlas Doc Format document, used
// when no body file is supplied.
const emptyADFBody = `{"type":"doc","version":1,"content":[]}`

// CreateOptions holds the options for the create command.
type CreateOptions struct {
	IO       *iostreams.IOStreams
	Space    string
	Title    string
	ParentID string
	BodyFile string
	JSON     bool
}

// NewCmdCreate creates the create command.
func NewCmdCreate(ios *iostreams.IOStreams) *cobra.Command {
	opts := &CreateOptions{
		IO: ios,
	}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a Confluence page",
		Long: `Create a new Confluence page in a space.

The body, if given, must be a file containing Atlas Doc Format JSON.`,
		Example: `  # Create an empty page at the top of a space
  docpack confluence page create --space DOCS --title "Release Notes"

  # Create a child page with a body
  docpack confluence page create --space DOCS --title "v2.0" --parent 123456 --body-file notes.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Space == "" {
				return fmt.Errorf("--space flag is required")
			}
			if opts.Title == "" {
				return fmt.Errorf("--title flag is required")
			}
			return runCreate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Space, "space", "s", "", "Space key (required)")
	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "Page title (required)")
	cmd.Flags().StringVar(&opts.ParentID, "parent", "", "Parent page or folder id")
	cmd.Flags().StringVar(&opts.BodyFile, "body-file", "", "File containing the body as Atlas Doc Format JSON")
	cmd.Flags().BoolVarP(&opts.JSON, "json", "j", false, "Output as JSON")

	return cmd
}

func runCreate(ctx context.Context, opts *CreateOptions) error {
	client, err := confluence.NewClientFromConfig()
	if err != nil {
		return err
	}

	space, err := client.GetSpaceByKey(ctx, opts.Space)
	if err != nil {
		return fmt.Errorf("failed to get space: %w", err)
	}

	bodyValue := emptyADFBody
	if opts.BodyFile != "" {
		data, err := os.ReadFile(opts.BodyFile)
		if err != nil {
			return fmt.Errorf("failed to read body file: %w", err)
		}
		bodyValue = string(data)
	}

	page, err := client.CreatePage(ctx, &confluence.CreatePageRequest{
		SpaceID:  space.ID,
		Status:   "current",
		Title:    opts.Title,
		ParentID: opts.ParentID,
		Body: &confluence.BodyContent{
			Value:          bodyValue,
			Representation: "atlas_doc_format",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}

	if opts.JSON {
		return output.JSON(opts.IO.Out, page)
	}

	fmt.Fprintf(opts.IO.Out, "Created page %s: %s\n", page.ID, page.Title)
	return nil
}

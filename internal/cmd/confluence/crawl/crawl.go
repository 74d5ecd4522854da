// Package crawl implements the confluence crawl/select/export/cache
// subcommands: the CLI surface over internal/crawler, internal/selector,
// and internal/pipeline.
package crawl

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/cache"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/confluence"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/crawler"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/entity"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/exporter"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/iostreams"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/output"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/pipeline"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/selector"
)

func newLogger(ios *iostreams.IOStreams, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(ios.ErrOut, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func buildCache(dir string) (cache.Cache, error) {
	if dir == "" {
		return cache.NullCache{}, nil
	}
	return cache.NewFileCache(dir)
}

// crawlParams collects the flag values shared by the crawl and select
// commands.
type crawlParams struct {
	verbose      bool
	cacheDir     string
	ttl          int
	forceRefresh bool
	limit        int
	concurrency  int
}

func crawlEntity(ctx context.Context, ios *iostreams.IOStreams, rootID string, p crawlParams) ([]entity.Entity, error) {
	client, err := confluence.NewClientFromConfig()
	if err != nil {
		return nil, err
	}

	c, err := buildCache(p.cacheDir)
	if err != nil {
		return nil, err
	}

	return crawler.CrawlWithCache(
		ctx,
		confluence.CrawlerClient{Client: client},
		rootID,
		crawler.RootTypePage,
		crawler.Options{Logger: newLogger(ios, p.verbose), Limit: p.limit, Concurrency: p.concurrency},
		crawler.CacheOptions{Cache: c, TTLSeconds: p.ttl, ForceRefresh: p.forceRefresh},
	)
}

// NewCmdCrawl creates the "crawl" command.
func NewCmdCrawl(ios *iostreams.IOStreams) *cobra.Command {
	var (
		jsonOut bool
		params  crawlParams
	)

	cmd := &cobra.Command{
		Use:   "crawl <root-page-id>",
		Short: "Crawl a Confluence page's full descendant hierarchy",
		Long: `Reconstruct the complete, arbitrarily deep descendant hierarchy below
a root page, working around the server's depth-5 descendants cap by
iterating: re-fetching from the nearest page ancestor of every node that
hit the cap, until none remain.`,
		Example: `  # Crawl starting at a page id
  docpack confluence crawl 123456

  # Crawl with verbose progress logging
  docpack confluence crawl 123456 --verbose

  # Crawl through a file cache, refreshing stale results after an hour
  docpack confluence crawl 123456 --cache-dir ~/.cache/docpack --ttl 3600`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entities, err := crawlEntity(cmd.Context(), ios, args[0], params)
			if err != nil {
				return err
			}
			return renderEntities(ios, entities, jsonOut)
		},
	}

	cmd.Flags().BoolVarP(&params.verbose, "verbose", "v", false, "Log one line per crawl iteration")
	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "Output as JSON")
	cmd.Flags().StringVar(&params.cacheDir, "cache-dir", "", "Cache crawl results under this directory")
	cmd.Flags().IntVar(&params.ttl, "ttl", 3600, "Cache entry time-to-live in seconds")
	cmd.Flags().BoolVar(&params.forceRefresh, "force-refresh", false, "Bypass the cache and re-crawl")
	cmd.Flags().IntVar(&params.limit, "limit", 0, "Stop once this many entities have been discovered (0 means unlimited)")
	cmd.Flags().IntVar(&params.concurrency, "concurrency", 1, "Concurrent descendant fetches within one crawl iteration")

	return cmd
}

type entityRow struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Type         string `json:"type"`
	TitlePath    string `json:"title_path"`
	PositionPath []int  `json:"position_path"`
}

func renderEntities(ios *iostreams.IOStreams, entities []entity.Entity, jsonOut bool) error {
	if jsonOut {
		rows := make([]entityRow, len(entities))
		for i, e := range entities {
			rows[i] = entityRow{
				ID:           e.Node().ID,
				Title:        e.Node().Title,
				Type:         string(e.Node().Type),
				TitlePath:    e.TitleBreadcrumbPath(),
				PositionPath: e.PositionPath(),
			}
		}
		return output.JSON(ios.Out, rows)
	}

	if len(entities) == 0 {
		fmt.Fprintln(ios.Out, "No entities found.")
		return nil
	}

	headers := []string{"ID", "TYPE", "TITLE PATH"}
	rows := make([][]string, 0, len(entities))
	for _, e := range entities {
		rows = append(rows, []string{e.Node().ID, output.StyleNodeType(string(e.Node().Type)), e.TitleBreadcrumbPath()})
	}
	output.SimpleTable(ios.Out, headers, rows)
	fmt.Fprintf(ios.Out, "\n%d node(s)\n", len(entities))
	return nil
}

// NewCmdSelect creates the "select" command.
func NewCmdSelect(ios *iostreams.IOStreams) *cobra.Command {
	var (
		jsonOut bool
		include []string
		exclude []string
		params  crawlParams
	)
	params.ttl = 3600

	cmd := &cobra.Command{
		Use:   "select <root-page-id>",
		Short: "Crawl and preview an include/exclude selection",
		Long: `Crawl a page's hierarchy, then preview which entities an
include/exclude selector would keep, without fetching or exporting
any page bodies.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entities, err := crawlEntity(cmd.Context(), ios, args[0], params)
			if err != nil {
				return err
			}

			selected, err := selector.FilterPages(entities, include, exclude)
			if err != nil {
				return err
			}

			return renderEntities(ios, selected, jsonOut)
		},
	}

	cmd.Flags().BoolVarP(&params.verbose, "verbose", "v", false, "Log one line per crawl iteration")
	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "Output as JSON")
	cmd.Flags().StringArrayVar(&include, "include", nil, "Include pattern (URL or id, repeatable)")
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "Exclude pattern (URL or id, repeatable)")
	cmd.Flags().StringVar(&params.cacheDir, "cache-dir", "", "Cache crawl results under this directory")
	cmd.Flags().IntVar(&params.concurrency, "concurrency", 1, "Concurrent descendant fetches within one crawl iteration")

	return cmd
}

// NewCmdExport creates the "export" command.
func NewCmdExport(ios *iostreams.IOStreams) *cobra.Command {
	var (
		verbose        bool
		include        []string
		exclude        []string
		outDir         string
		allInOne       string
		ignoreMarkdown bool
		breadcrumbBy   string
		concurrency    int
	)

	cmd := &cobra.Command{
		Use:   "export <space-key>",
		Short: "Crawl, select, and export a space's pages to Markdown-in-XML documents",
		Long: `Run the full pipeline: resolve the space's homepage, crawl its
complete hierarchy, apply the include/exclude selection, fetch each
selected page's body, convert it to Markdown, and write one XML document
per page under --out.`,
		Example: `  # Export an entire space
  docpack confluence export DOCS --out ./export

  # Export only a subtree, skipping an archived folder
  docpack confluence export DOCS --out ./export --include 123456/** --exclude 789012/**`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := confluence.NewClientFromConfig()
			if err != nil {
				return err
			}

			breadcrumbType := exporter.BreadcrumbTitle
			if breadcrumbBy == "id" {
				breadcrumbType = exporter.BreadcrumbID
			} else if breadcrumbBy != "title" {
				return fmt.Errorf("--breadcrumb-by must be \"id\" or \"title\", got %q", breadcrumbBy)
			}

			n, err := pipeline.Run(cmd.Context(), confluence.CrawlerClient{Client: client}, confluence.PipelineClient{Client: client}, confluence.PipelineClient{Client: client}, pipeline.Options{
				SpaceKey:       args[0],
				Include:        include,
				Exclude:        exclude,
				OutDir:         outDir,
				AllInOnePath:   allInOne,
				IgnoreMarkdown: ignoreMarkdown,
				BreadcrumbType: breadcrumbType,
				Concurrency:    concurrency,
				Logger:         newLogger(ios, verbose),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(ios.Out, "Exported %d document(s) to %s\n", n, outDir)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log one line per crawl iteration")
	cmd.Flags().StringArrayVar(&include, "include", nil, "Include pattern (URL or id, repeatable)")
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "Exclude pattern (URL or id, repeatable)")
	cmd.Flags().StringVar(&outDir, "out", "./export", "Output directory for exported documents")
	cmd.Flags().StringVar(&allInOne, "all-in-one", "", "Also write a single concatenated file at this path")
	cmd.Flags().BoolVar(&ignoreMarkdown, "ignore-markdown-errors", false, "Render unsupported ADF nodes as empty instead of failing")
	cmd.Flags().StringVar(&breadcrumbBy, "breadcrumb-by", "title", `Name exported files by "id" or "title" breadcrumb`)
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "Concurrent descendant fetches within one crawl iteration")

	return cmd
}

// NewCmdCache creates the "cache" command group for direct façade access.
func NewCmdCache(ios *iostreams.IOStreams) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the crawl result cache",
	}
	cmd.PersistentFlags().StringVar(&dir, "cache-dir", "", "Cache directory (required)")

	var setTTL int
	setCmd := &cobra.Command{
		Use:   "set <key> <file>",
		Short: "Store a file's contents under a cache key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				return fmt.Errorf("--cache-dir is required")
			}
			c, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			return c.Set(cmd.Context(), args[0], data, setTTL)
		},
	}
	setCmd.Flags().IntVar(&setTTL, "ttl", 3600, "Entry time-to-live in seconds (0 means never expires)")
	cmd.AddCommand(setCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Look up a cache entry and report hit or miss",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				return fmt.Errorf("--cache-dir is required")
			}
			c, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			data, ok, err := c.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(ios.Out, "%s  %s\n", output.StyleCacheOutcome("miss"), args[0])
				return nil
			}
			fmt.Fprintf(ios.Out, "%s  %s  %d byte(s)\n", output.StyleCacheOutcome("hit"), args[0], len(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a cache entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				return fmt.Errorf("--cache-dir is required")
			}
			c, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			return c.Delete(cmd.Context(), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every entry under --cache-dir",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				return fmt.Errorf("--cache-dir is required")
			}
			return os.RemoveAll(dir)
		},
	})

	return cmd
}

package confluence

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/docerrors"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/entity"
)

// Space represents a Confluence space.
type Space struct {
	ID         string `json:"id"`
	Key        string `json:"key"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	HomepageID string `json:"homepageId,omitempty"`
}

// Page represents a Confluence page or folder body fetch result.
type Page struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	SpaceID  string       `json:"spaceId,omitempty"`
	Status   string       `json:"status"`
	ParentID string       `json:"parentId,omitempty"`
	Version  *PageVersion `json:"version,omitempty"`
	Body     *PageBody    `json:"body,omitempty"`
	Links    *PageLinks   `json:"_links,omitempty"`
}

type PageVersion struct {
	Number int `json:"number"`
}

type PageBody struct {
	AtlasDocFormat *BodyContent `json:"atlas_doc_format,omitempty"`
}

type BodyContent struct {
	Value          string `json:"value"`
	Representation string `json:"representation"`
}

type PageLinks struct {
	WebUI string `json:"webui,omitempty"`
}

// DescendantResult is a single row of a descendants response: enough to
// build an entity.Node plus the depth the server assigned it relative to
// the fetch root.
type DescendantResult struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	ParentID string `json:"parentId"`
	Depth    int    `json:"depth"`
	Position int    `json:"childPosition"`
}

func (r DescendantResult) toNode() entity.Node {
	t := entity.NodeTypePage
	if r.Type == "folder" {
		t = entity.NodeTypeFolder
	}
	return entity.Node{
		ID:            r.ID,
		Title:         r.Title,
		Type:          t,
		ParentID:      r.ParentID,
		Depth:         r.Depth,
		ChildPosition: r.Position,
	}
}

type spacesResponse struct {
	Results []*Space        `json:"results"`
	Links   *paginationLink `json:"_links,omitempty"`
}

type pagesResponse struct {
	Results []*Page         `json:"results"`
	Links   *paginationLink `json:"_links,omitempty"`
}

type descendantsResponse struct {
	Results []DescendantResult `json:"results"`
	Links   *paginationLink    `json:"_links,omitempty"`
}

type paginationLink struct {
	Next string `json:"next,omitempty"`
}

// MaxDescendantDepth is the server's hard cap on the depth parameter of
// the descendants endpoint; this is precisely the constraint the Parent
// Clustering Crawl Algorithm exists to work around.
const MaxDescendantDepth = 5

// DescendantsPageSize is the page size used for every paginated fetch.
const DescendantsPageSize = 250

// GetSpaceByKey fetches a space by its key.
func (c *Client) GetSpaceByKey(ctx context.Context, key string) (*Space, error) {
	path := JoinPath(c.baseURL, "spaces") + BuildQueryString(map[string]string{
		"keys":  key,
		"limit": "1",
	})

	var result spacesResponse
	if err := c.Get(ctx, path, &result); err != nil {
		return nil, err
	}
	if len(result.Results) == 0 {
		return nil, &docerrors.NotFoundError{Kind: "space", ID: key}
	}
	return result.Results[0], nil
}

// SpacesPage is one page of a GetSpaces listing, including the cursor for
// the next page if any remain.
type SpacesPage struct {
	Results    []*Space
	NextCursor string
}

// GetSpaces fetches one page of spaces, optionally continuing from a
// previous cursor.
func (c *Client) GetSpaces(ctx context.Context, limit int, cursor string) (*SpacesPage, error) {
	params := map[string]string{"limit": strconv.Itoa(limit)}
	if cursor != "" {
		params["cursor"] = cursor
	}
	path := JoinPath(c.baseURL, "spaces") + BuildQueryString(params)

	var result spacesResponse
	if err := c.Get(ctx, path, &result); err != nil {
		return nil, err
	}

	page := &SpacesPage{Results: result.Results}
	if result.Links != nil && result.Links.Next != "" {
		page.NextCursor = extractCursor(result.Links.Next)
	}
	return page, nil
}

// GetSpacesAll fetches every space, following cursor pagination until
// exhausted.
func (c *Client) GetSpacesAll(ctx context.Context) ([]*Space, error) {
	var all []*Space
	cursor := ""
	for {
		page, err := c.GetSpaces(ctx, DescendantsPageSize, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		if page.NextCursor == "" || page.NextCursor == cursor {
			break
		}
		cursor = page.NextCursor
	}
	return all, nil
}

// PagesPage is one page of a GetPages listing, including the cursor for
// the next page if any remain.
type PagesPage struct {
	Results    []*Page
	NextCursor string
}

// GetPages fetches one page of a space's pages, optionally continuing
// from a previous cursor and filtering by status.
func (c *Client) GetPages(ctx context.Context, spaceID string, limit int, cursor, status string) (*PagesPage, error) {
	params := map[string]string{
		"space-id": spaceID,
		"limit":    strconv.Itoa(limit),
	}
	if cursor != "" {
		params["cursor"] = cursor
	}
	if status != "" {
		params["status"] = status
	}
	path := JoinPath(c.baseURL, "pages") + BuildQueryString(params)

	var result pagesResponse
	if err := c.Get(ctx, path, &result); err != nil {
		return nil, err
	}

	page := &PagesPage{Results: result.Results}
	if result.Links != nil && result.Links.Next != "" {
		page.NextCursor = extractCursor(result.Links.Next)
	}
	return page, nil
}

// GetPagesAll fetches every page in a space, following cursor pagination
// until exhausted.
func (c *Client) GetPagesAll(ctx context.Context, spaceID, status string) ([]*Page, error) {
	var all []*Page
	cursor := ""
	for {
		page, err := c.GetPages(ctx, spaceID, DescendantsPageSize, cursor, status)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		if page.NextCursor == "" || page.NextCursor == cursor {
			break
		}
		cursor = page.NextCursor
	}
	return all, nil
}

// GetSpace fetches a space by id.
func (c *Client) GetSpace(ctx context.Context, id string) (*Space, error) {
	var space Space
	if err := c.Get(ctx, JoinPath(c.baseURL, "spaces", id), &space); err != nil {
		return nil, err
	}
	return &space, nil
}

// GetPagesByIDs fetches the bodies for a batch of page ids, one request
// per id (the v2 API has no bulk-by-id endpoint for arbitrary id sets).
func (c *Client) GetPagesByIDs(ctx context.Context, ids []string) ([]*Page, error) {
	pages := make([]*Page, 0, len(ids))
	for _, id := range ids {
		page, err := c.GetPage(ctx, id)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// GetPage fetches a single page body in Atlas Doc Format.
func (c *Client) GetPage(ctx context.Context, id string) (*Page, error) {
	path := JoinPath(c.baseURL, "pages", id) + BuildQueryString(map[string]string{
		"body-format": "atlas_doc_format",
	})

	var page Page
	if err := c.Get(ctx, path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreatePageRequest is the body for CreatePage, mirroring the v2 pages
// endpoint's create shape.
type CreatePageRequest struct {
	SpaceID  string       `json:"spaceId"`
	Status   string       `json:"status"`
	Title    string       `json:"title"`
	ParentID string       `json:"parentId,omitempty"`
	Body     *BodyContent `json:"body"`
}

// CreatePage creates a new page: post the request straight through and
// decode the created page back out.
func (c *Client) CreatePage(ctx context.Context, req *CreatePageRequest) (*Page, error) {
	var page Page
	if err := c.Post(ctx, JoinPath(c.baseURL, "pages"), req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Folder represents a Confluence folder.
type Folder struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	SpaceID  string `json:"spaceId,omitempty"`
	ParentID string `json:"parentId,omitempty"`
}

// CreateFolderRequest is the body for CreateFolder.
type CreateFolderRequest struct {
	SpaceID  string `json:"spaceId"`
	Title    string `json:"title"`
	ParentID string `json:"parentId,omitempty"`
}

// CreateFolder creates a new folder.
func (c *Client) CreateFolder(ctx context.Context, req *CreateFolderRequest) (*Folder, error) {
	var folder Folder
	if err := c.Post(ctx, JoinPath(c.baseURL, "folders"), req, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// DeletePage deletes a page by id.
func (c *Client) DeletePage(ctx context.Context, id string) error {
	return c.Delete(ctx, JoinPath(c.baseURL, "pages", id))
}

// DeleteFolder deletes a folder by id.
func (c *Client) DeleteFolder(ctx context.Context, id string) error {
	return c.Delete(ctx, JoinPath(c.baseURL, "folders", id))
}

// DescendantRootType distinguishes whether the crawl's current root is a
// page or a folder; the two have distinct descendants endpoints.
type DescendantRootType string

const (
	RootTypePage   DescendantRootType = "page"
	RootTypeFolder DescendantRootType = "folder"
)

// DescendantsOptions bounds a GetDescendants call. MaxItems stops the
// pagination once that many nodes have been collected; zero or negative
// means paginate until the server is exhausted.
type DescendantsOptions struct {
	MaxItems int
}

// GetDescendants fetches every descendant of rootID up to
// MaxDescendantDepth, following cursor pagination until exhausted or
// opts.MaxItems is reached. It always passes depth=5&limit=250; the
// crawler layer is the only thing that knows how to go deeper.
func (c *Client) GetDescendants(ctx context.Context, rootID string, rootType DescendantRootType, opts DescendantsOptions) ([]entity.Node, error) {
	var resource string
	switch rootType {
	case RootTypePage:
		resource = "pages"
	case RootTypeFolder:
		resource = "folders"
	default:
		return nil, fmt.Errorf("unknown descendant root type %q", rootType)
	}

	var nodes []entity.Node
	cursor := ""
	for {
		path := JoinPath(c.baseURL, resource, rootID, "descendants") + BuildQueryString(map[string]string{
			"depth":  strconv.Itoa(MaxDescendantDepth),
			"limit":  strconv.Itoa(DescendantsPageSize),
			"cursor": cursor,
		})

		var result descendantsResponse
		if err := c.Get(ctx, path, &result); err != nil {
			if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode == 404 {
				return nil, &docerrors.NotFoundError{Kind: string(rootType), ID: rootID}
			}
			return nil, err
		}
		for _, r := range result.Results {
			nodes = append(nodes, r.toNode())
			if opts.MaxItems > 0 && len(nodes) >= opts.MaxItems {
				return nodes, nil
			}
		}

		if result.Links == nil || result.Links.Next == "" {
			break
		}
		next := extractCursor(result.Links.Next)
		if next == "" || next == cursor {
			break
		}
		cursor = next
	}

	return nodes, nil
}

func extractCursor(nextURL string) string {
	parsed, err := url.Parse(nextURL)
	if err != nil {
		return ""
	}
	return parsed.Query().Get("cursor")
}

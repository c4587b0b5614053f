package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"tally/internal/domain"
)

// ErrMissingToken indicates no Graph API access token was configured.
var ErrMissingToken = errors.New("graph access token not set")

// GraphConfig identifies the SharePoint list that receives time entries.
type GraphConfig struct {
	BaseURL string // defaults to the public Graph endpoint
	SiteID  string
	ListID  string
	Token   string
}

// LoadGraphConfig builds a GraphConfig for the given site and list, taking
// the access token from the GRAPH_ACCESS_TOKEN environment variable.
func LoadGraphConfig(siteID, listID string) GraphConfig {
	return GraphConfig{
		BaseURL: "https://graph.microsoft.com/v1.0",
		SiteID:  siteID,
		ListID:  listID,
		Token:   os.Getenv("GRAPH_ACCESS_TOKEN"),
	}
}

// GraphPoster posts entries as items of a SharePoint list via the Microsoft
// Graph API.
type GraphPoster struct {
	cfg  GraphConfig
	http *http.Client
}

// NewGraphPoster creates a Poster for the configured list.
func NewGraphPoster(cfg GraphConfig) *GraphPoster {
	return &GraphPoster{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// itemFields is the SharePoint column payload. Optional columns are omitted
// when empty rather than sent as empty strings.
type itemFields struct {
	WeekBeginning string  `json:"WeekBeginning"`
	Category      string  `json:"Category"`
	Hours         float64 `json:"Hours"`
	Comments      string  `json:"Comments,omitempty"`
	OpportunityID string  `json:"OpportunityID,omitempty"`
	AccountName   string  `json:"AccountName,omitempty"`
}

type createItemRequest struct {
	Fields itemFields `json:"fields"`
}

func (p *GraphPoster) PostEntry(ctx context.Context, entry domain.TimeEntry) error {
	if p.cfg.Token == "" {
		return ErrMissingToken
	}

	body := createItemRequest{
		Fields: itemFields{
			WeekBeginning: entry.WeekBeginning,
			Category:      listCategory(entry.Category),
			Hours:         entry.Hours,
			Comments:      entry.Comments,
			OpportunityID: entry.OpportunityID,
			AccountName:   entry.Client,
		},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling list item: %w", err)
	}

	url := fmt.Sprintf("%s/sites/%s/lists/%s/items", p.cfg.BaseURL, p.cfg.SiteID, p.cfg.ListID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("posting list item: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("list rejected item with status %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}

// Package edupage talks to the Edupage timetable RPC endpoints and returns
// the raw denormalized timetable document for one school year.
package edupage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sevenofnine/edupage-calendar-bridge/internal/domain"
	"github.com/sevenofnine/edupage-calendar-bridge/internal/dynjson"
)

const (
	viewerEndpoint  = "ttviewer.js?__func=getTTViewerData"
	regularEndpoint = "regulartt.js?__func=regularttGetData"
)

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues RPC calls against one school's timetable server. It is
// stateless and safe for concurrent use.
type Client struct {
	subdomain string
	client    HTTPDoer
}

func NewClient(subdomain string, client HTTPDoer) *Client {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{subdomain: subdomain, client: client}
}

// FetchTimetableDocument discovers the active timetable for year and returns
// its tables. Both calls fail fast: any transport or shape problem aborts the
// whole fetch, there are no retries.
func (c *Client) FetchTimetableDocument(ctx context.Context, year int) ([]dynjson.Value, error) {
	viewer, err := c.rpcCall(ctx, viewerEndpoint, []any{nil, year})
	if err != nil {
		return nil, err
	}
	num, err := viewer.Field("r").Field("regular").Field("default_num").Str()
	if err != nil {
		return nil, fmt.Errorf("active timetable id: %v: %w", err, domain.ErrProtocol)
	}

	data, err := c.rpcCall(ctx, regularEndpoint, []any{nil, num})
	if err != nil {
		return nil, err
	}
	tables, err := data.Field("r").Field("dbiAccessorRes").Field("tables").Array()
	if err != nil {
		return nil, fmt.Errorf("timetable tables: %v: %w", err, domain.ErrProtocol)
	}
	return tables, nil
}

// rpcCall posts one RPC envelope and decodes the JSON response. The gsh
// field is a session hash the public viewer accepts as all zeros.
func (c *Client) rpcCall(ctx context.Context, endpoint string, args []any) (dynjson.Value, error) {
	payload, err := json.Marshal(map[string]any{"__args": args, "__gsh": "00000000"})
	if err != nil {
		return dynjson.Value{}, fmt.Errorf("marshal rpc args: %w", err)
	}
	target := fmt.Sprintf("https://%s.edupage.org/timetable/server/%s", c.subdomain, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return dynjson.Value{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return dynjson.Value{}, fmt.Errorf("call %s: %v: %w", endpointName(endpoint), err, domain.ErrNetwork)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return dynjson.Value{}, fmt.Errorf("call %s: unexpected status %d: %w", endpointName(endpoint), resp.StatusCode, domain.ErrNetwork)
	}
	doc, err := dynjson.Decode(resp.Body)
	if err != nil {
		return dynjson.Value{}, fmt.Errorf("call %s: %v: %w", endpointName(endpoint), err, domain.ErrNetwork)
	}
	return doc, nil
}

// endpointName strips the query part so logs and errors stay readable.
func endpointName(endpoint string) string {
	name, _, _ := strings.Cut(endpoint, "?")
	return name
}

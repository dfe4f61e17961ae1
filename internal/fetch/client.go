package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/errgroup"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrResourceUnavailable marks a required resource that returned a
// non-success status or could not be parsed as its declared format.
var ErrResourceUnavailable = errors.New("resource unavailable")

type Format int

const (
	FormatJSON Format = iota
	FormatCSV
)

// Resource is one named analysis artifact relative to the data base URL.
// Optional resources degrade to a zero Payload instead of failing the set.
type Resource struct {
	Name     string
	Path     string
	Format   Format
	Optional bool
}

// Payload is a parsed resource body. Exactly one of JSON or CSV is set
// for a successful fetch; an optional miss leaves both nil.
type Payload struct {
	Format Format
	JSON   any
	CSV    *Table
}

func (p Payload) Empty() bool {
	return p.JSON == nil && p.CSV == nil
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

// Fetch retrieves and parses a single resource, bypassing intermediary
// caches with a no-cache header and a nonce query parameter.
func (c *Client) Fetch(ctx context.Context, res Resource) (Payload, error) {
	url := fmt.Sprintf("%s%s", c.baseURL, res.Path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Payload{}, fmt.Errorf("error creating request: %w", err)
	}

	q := req.URL.Query()
	q.Set("_", strconv.FormatInt(time.Now().UnixNano(), 10))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "application/json, text/csv, text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: requesting %s: %v", ErrResourceUnavailable, res.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Payload{}, fmt.Errorf("%w: %s returned status %d", ErrResourceUnavailable, res.Name, resp.StatusCode)
	}

	switch res.Format {
	case FormatCSV:
		table, err := ParseTable(resp.Body)
		if err != nil {
			return Payload{}, fmt.Errorf("%w: parsing %s as CSV: %v", ErrResourceUnavailable, res.Name, err)
		}
		return Payload{Format: FormatCSV, CSV: table}, nil
	default:
		var value any
		if err := json.NewDecoder(resp.Body).Decode(&value); err != nil {
			return Payload{}, fmt.Errorf("%w: decoding %s: %v", ErrResourceUnavailable, res.Name, err)
		}
		return Payload{Format: FormatJSON, JSON: value}, nil
	}
}

// FetchAll retrieves every resource concurrently and joins on the full
// set. A required failure fails the join; in-flight siblings are left to
// finish on their own. Optional failures yield a zero Payload.
func (c *Client) FetchAll(ctx context.Context, resources []Resource) (map[string]Payload, error) {
	var g errgroup.Group
	var mu sync.Mutex
	out := make(map[string]Payload, len(resources))

	for _, res := range resources {
		res := res
		g.Go(func() error {
			payload, err := c.Fetch(ctx, res)
			if err != nil {
				if res.Optional {
					slog.Warn("Optional resource missing", "resource", res.Name, "error", err)
					mu.Lock()
					out[res.Name] = Payload{Format: res.Format}
					mu.Unlock()
					return nil
				}
				return err
			}
			mu.Lock()
			out[res.Name] = payload
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dukerupert/sharenote/internal/model"
)

// Store is the note store contract a Session depends on.
type Store interface {
	List(ctx context.Context) ([]model.Note, error)
	Create(ctx context.Context, title, content string) (model.Note, error)
	Update(ctx context.Context, id int64, title, content string) (model.Note, error)
	Delete(ctx context.Context, id int64) error
}

// Client calls the note store's HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Store = (*Client)(nil)

// NewClient returns a Client for the store at baseURL (e.g.
// "http://localhost:8080"). A zero timeout means 10 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type noteBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) List(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	if err := c.do(ctx, "list notes", http.MethodGet, "/api/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) Get(ctx context.Context, id int64) (model.Note, error) {
	var n model.Note
	err := c.do(ctx, "get note", http.MethodGet, notePath(id), nil, &n)
	return n, err
}

func (c *Client) Create(ctx context.Context, title, content string) (model.Note, error) {
	var n model.Note
	err := c.do(ctx, "create note", http.MethodPost, "/api/notes", noteBody{Title: title, Content: content}, &n)
	return n, err
}

func (c *Client) Update(ctx context.Context, id int64, title, content string) (model.Note, error) {
	var n model.Note
	err := c.do(ctx, "update note", http.MethodPut, notePath(id), noteBody{Title: title, Content: content}, &n)
	return n, err
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete note", http.MethodDelete, notePath(id), nil, nil)
}

// Shared fetches the public view behind a share token.
func (c *Client) Shared(ctx context.Context, shareID string) (model.SharedNote, error) {
	var n model.SharedNote
	err := c.do(ctx, "get shared note", http.MethodGet, sharePath(shareID), nil, &n)
	return n, err
}

// ShareURL returns the public link for a share token.
func (c *Client) ShareURL(shareID string) string {
	return c.baseURL + sharePath(shareID)
}

// WatchURL returns the websocket URL of the store's change feed.
func (c *Client) WatchURL() string {
	u := c.baseURL + "/ws"
	switch {
	case strings.HasPrefix(u, "https://"):
		return "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		return "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u
}

func notePath(id int64) string {
	return "/api/notes/" + strconv.FormatInt(id, 10)
}

func sharePath(shareID string) string {
	return "/api/notes/share/" + url.PathEscape(shareID)
}

// do sends one request and maps the outcome onto the package's error taxonomy.
// out may be nil when the response body is not needed.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrMalformed, err)
	}
	return nil
}

func statusError(op string, resp *http.Response) error {
	var eb errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(data, &eb) != nil {
		eb.Error = strings.TrimSpace(string(data))
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if eb.Error != "" {
			return fmt.Errorf("%s: %w: %s", op, ErrValidation, eb.Error)
		}
		return fmt.Errorf("%s: %w", op, ErrValidation)
	}
	return &StoreError{Op: op, Status: resp.StatusCode, Message: eb.Error}
}

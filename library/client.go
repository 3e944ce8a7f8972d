package library

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client is the gateway to the remote lending service. It attaches the
// bearer token of the current session to every request and decodes the
// service's JSON payloads. It performs no retries, caching or rate
// limiting: failures propagate to the caller verbatim.
type Client struct {
	base string
	hc   *http.Client
}

// NewClient builds a gateway rooted at baseURL. The session store is
// consulted on every outbound request, so a login that happens after
// construction is picked up immediately.
func NewClient(baseURL string, sessions *SessionStore) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc: &http.Client{
			Timeout:   30 * time.Second,
			Transport: &authTransport{next: http.DefaultTransport, sessions: sessions},
		},
	}
}

// authTransport injects the Authorization header when a session exists and
// stamps each request with an id for server-side correlation.
type authTransport struct {
	next     http.RoundTripper
	sessions *SessionStore
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone per RoundTripper contract: the original request is not ours to
	// mutate.
	req = req.Clone(req.Context())
	if sess := t.sessions.Current(); sess != nil {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return t.next.RoundTrip(req)
}

// ------------------ Authentication ------------------

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var sess Session
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", body, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Register creates an account and returns the session the server issues
// for it.
func (c *Client) Register(ctx context.Context, name, email, password string, role Role) (*Session, error) {
	var sess Session
	body := map[string]string{"name": name, "email": email, "password": password, "role": string(role)}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", body, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// ------------------ Catalog ------------------

// Books fetches the whole catalog.
func (c *Client) Books(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.doJSON(ctx, http.MethodGet, "/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// BookInput is the payload for creating or updating a book. CoverPath, when
// non-empty, names a local image file uploaded as the cover.
type BookInput struct {
	Title     string
	Author    string
	Category  string
	CoverPath string
}

// CreateBook submits a new catalog entry as a multipart form.
func (c *Client) CreateBook(ctx context.Context, in BookInput) (*Book, error) {
	var book Book
	if err := c.doMultipart(ctx, http.MethodPost, "/books", in, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBook replaces the fields of an existing catalog entry.
func (c *Client) UpdateBook(ctx context.Context, id string, in BookInput) (*Book, error) {
	var book Book
	if err := c.doMultipart(ctx, http.MethodPut, "/books/"+id, in, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes a catalog entry.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/books/"+id, nil, nil)
}

// ------------------ Circulation ------------------

// Borrow checks the book out to the calling student.
func (c *Client) Borrow(ctx context.Context, bookID string) (*BorrowRecord, error) {
	var rec BorrowRecord
	if err := c.doJSON(ctx, http.MethodPost, "/borrow/"+bookID, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// MyBorrows fetches the caller's own borrow records, active and returned.
func (c *Client) MyBorrows(ctx context.Context) ([]BorrowRecord, error) {
	return c.borrowList(ctx, "/borrow/my")
}

// AllBorrows fetches every borrow record. Librarian only.
func (c *Client) AllBorrows(ctx context.Context) ([]BorrowRecord, error) {
	return c.borrowList(ctx, "/borrow/all")
}

// OverdueBorrows fetches the records the server considers overdue.
// Librarian only.
func (c *Client) OverdueBorrows(ctx context.Context) ([]BorrowRecord, error) {
	return c.borrowList(ctx, "/borrow/overdue")
}

func (c *Client) borrowList(ctx context.Context, path string) ([]BorrowRecord, error) {
	var recs []BorrowRecord
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Return closes the borrow record and reports the fine the server computed.
func (c *Client) Return(ctx context.Context, recordID string) (*ReturnResult, error) {
	var res ReturnResult
	if err := c.doJSON(ctx, http.MethodPut, "/borrow/return/"+recordID, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ------------------ Plumbing ------------------

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, reader, contentType, out)
}

func (c *Client) doMultipart(ctx context.Context, method, path string, in BookInput, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"title":    in.Title,
		"author":   in.Author,
		"category": in.Category,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("build form: %w", err)
		}
	}
	if in.CoverPath != "" {
		f, err := os.Open(filepath.Clean(in.CoverPath))
		if err != nil {
			return fmt.Errorf("open cover image: %w", err)
		}
		defer f.Close()
		part, err := w.CreateFormFile("coverImage", filepath.Base(in.CoverPath))
		if err != nil {
			return fmt.Errorf("build form: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return fmt.Errorf("read cover image: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("build form: %w", err)
	}
	return c.do(ctx, method, path, &buf, w.FormDataContentType(), out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError turns a non-2xx response into an *APIError, preserving the
// server's message payload when it sent one.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		apiErr.Message = payload.Message
	}
	return apiErr
}

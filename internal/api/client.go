// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the gateway to the chat backend's REST API.
//
// One method per backend resource, all context-aware, all attaching the
// bearer token. Failures are normalized into a single RequestError
// signal; the gateway performs no retries and no response caching —
// state policy lives in the view-model, not here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/jeranaias/sage-tui/internal/model"
)

const (
	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

var userAgent = "sage/" + Version

// Version is the client version reported in the User-Agent header.
// Overridden at build time.
var Version = "0.1.0"

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// One shared transport for all gateway requests.
var sharedTransport = &http.Transport{
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
	TLSHandshakeTimeout: 10 * time.Second,
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is the gateway to the chat backend.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a gateway for the backend at baseURL, authenticating
// with the given bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   strings.TrimSpace(token),
		httpClient: &http.Client{
			Transport: sharedTransport,
			Timeout:   DefaultTimeout,
		},
	}
}

// WithTimeout sets the per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// =============================================================================
// CHATS
// =============================================================================

// ListChats fetches all chat sessions for the authenticated user.
func (c *Client) ListChats(ctx context.Context) ([]model.Chat, error) {
	var chats []model.Chat
	if err := c.doJSON(ctx, http.MethodGet, "/chats", nil, &chats, "chats"); err != nil {
		return nil, err
	}
	return chats, nil
}

// CreateChat creates a new chat with the given title.
func (c *Client) CreateChat(ctx context.Context, title string) (model.Chat, error) {
	var chat model.Chat
	body := map[string]string{"title": title}
	if err := c.doJSON(ctx, http.MethodPost, "/chats", body, &chat, "chats"); err != nil {
		return model.Chat{}, err
	}
	return chat, nil
}

// DeleteChat deletes a chat and everything attached to it.
func (c *Client) DeleteChat(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/chats/"+id, nil, nil, "chats")
}

// =============================================================================
// MESSAGES
// =============================================================================

// ListMessages fetches the message history of a chat in display order.
func (c *Client) ListMessages(ctx context.Context, chatID string) ([]model.Message, error) {
	var msgs []model.Message
	path := "/chats/" + chatID + "/messages"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &msgs, "messages"); err != nil {
		return nil, err
	}
	return msgs, nil
}

// SendMessage posts a user message and returns the reply envelope. The
// call blocks until the assistant response is generated server-side.
func (c *Client) SendMessage(ctx context.Context, chatID, content string) (model.SendReply, error) {
	var reply model.SendReply
	path := "/chats/" + chatID + "/messages"
	body := map[string]string{"content": content}
	if err := c.doJSON(ctx, http.MethodPost, path, body, &reply, "messages"); err != nil {
		return model.SendReply{}, err
	}
	return reply, nil
}

// =============================================================================
// DOCUMENTS
// =============================================================================

// Upload is one file in a document upload batch.
type Upload struct {
	Name   string
	Reader io.Reader
}

// ListDocuments fetches the documents attached to a chat.
func (c *Client) ListDocuments(ctx context.Context, chatID string) ([]model.Document, error) {
	var docs []model.Document
	path := "/chats/" + chatID + "/documents"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &docs, "documents"); err != nil {
		return nil, err
	}
	return docs, nil
}

// UploadDocuments posts files to a chat as one multipart request with a
// repeated "files" field. The acknowledgement body is discarded; callers
// refresh the document list to observe the result.
func (c *Client) UploadDocuments(ctx context.Context, chatID string, files []Upload) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return &RequestError{Resource: "documents", Err: err}
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return &RequestError{Resource: "documents", Err: fmt.Errorf("reading %s: %w", f.Name, err)}
		}
	}
	if err := mw.Close(); err != nil {
		return &RequestError{Resource: "documents", Err: err}
	}

	path := "/chats/" + chatID + "/documents"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return &RequestError{Resource: "documents", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.roundTrip(req)
	if err != nil {
		return &RequestError{Resource: "documents", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseSize))
		return &RequestError{Resource: "documents", Status: resp.StatusCode}
	}
	return nil
}

// DeleteDocument removes a document from a chat.
func (c *Client) DeleteDocument(ctx context.Context, chatID, docID string) error {
	path := "/chats/" + chatID + "/documents/" + docID
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, "documents")
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// doJSON performs a single JSON request. body is marshaled when non-nil;
// the response is decoded into out when out is non-nil and the body is
// non-empty. resource tags the RequestError on failure.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any, resource string) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Resource: resource, Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &RequestError{Resource: resource, Err: err}
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.roundTrip(req)
	if err != nil {
		return &RequestError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	data, err := readResponse(resp)
	if err != nil {
		return &RequestError{Resource: resource, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Resource: resource, Status: resp.StatusCode}
	}

	if out != nil && len(data) > 0 {
		// No schema validation beyond "is parseable"; the backend owns
		// the shapes.
		if err := json.Unmarshal(data, out); err != nil {
			return &RequestError{Resource: resource, Err: fmt.Errorf("failed to parse response: %w", err)}
		}
	}
	return nil
}

// roundTrip executes the request and logs it. Only method, path, status,
// and duration are ever logged — never headers or bodies.
func (c *Client) roundTrip(req *http.Request) (*http.Response, error) {
	log.Printf("API request: %s %s", req.Method, req.URL.Path)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("API error: %s %s: %v", req.Method, req.URL.Path, err)
		return nil, err
	}
	log.Printf("API response: %d %s (%v)", resp.StatusCode, req.URL.Path, time.Since(start).Round(time.Millisecond))
	return resp, nil
}

// readResponse reads the body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

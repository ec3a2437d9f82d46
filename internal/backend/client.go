package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	ChatPath   = "/chat"
	UploadPath = "/uploadknowledgebase"
	TrainPath  = "/trainurl"

	RequestIDHeader = "X-Request-ID"
	UploadField     = "file"

	maxResponseBytes = 4 << 20
)

type ChatReply struct {
	Answer  string `json:"answer"`
	Version string `json:"version,omitempty"`
}

type TrainReply struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

type chatRequest struct {
	Query string `json:"query"`
}

type trainURLRequest struct {
	URL string `json:"url"`
}

// Client talks to the helpdesk backend. It never retries; a request with no
// timeout and no cancellation waits for as long as the backend does.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Chat(ctx context.Context, query string) (ChatReply, error) {
	var reply ChatReply
	body, err := json.Marshal(chatRequest{Query: query})
	if err != nil {
		return reply, &Error{Kind: KindRequest, Err: errors.Wrap(err, "encode chat request")}
	}
	err = c.post(ctx, ChatPath, "application/json", bytes.NewReader(body), &reply)
	return reply, err
}

func (c *Client) TrainURL(ctx context.Context, rawURL string) (TrainReply, error) {
	var reply TrainReply
	body, err := json.Marshal(trainURLRequest{URL: rawURL})
	if err != nil {
		return reply, &Error{Kind: KindRequest, Err: errors.Wrap(err, "encode train request")}
	}
	err = c.post(ctx, TrainPath, "application/json", bytes.NewReader(body), &reply)
	return reply, err
}

// UploadKnowledgeBase sends r as the multipart "file" field named filename.
func (c *Client) UploadKnowledgeBase(ctx context.Context, filename string, r io.Reader) (TrainReply, error) {
	var reply TrainReply

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(UploadField, filepath.Base(filename))
	if err != nil {
		return reply, &Error{Kind: KindRequest, Err: errors.Wrap(err, "create form file")}
	}
	if _, err := io.Copy(part, r); err != nil {
		return reply, &Error{
			Kind:    KindRequest,
			Message: "Could not read " + filepath.Base(filename) + ".",
			Err:     errors.Wrap(err, "copy upload body"),
		}
	}
	if err := mw.Close(); err != nil {
		return reply, &Error{Kind: KindRequest, Err: errors.Wrap(err, "close multipart writer")}
	}

	err = c.post(ctx, UploadPath, mw.FormDataContentType(), &buf, &reply)
	return reply, err
}

func (c *Client) UploadFile(ctx context.Context, path string) (TrainReply, error) {
	f, err := os.Open(path)
	if err != nil {
		return TrainReply{}, &Error{
			Kind:    KindRequest,
			Message: "Could not open " + filepath.Base(path) + ".",
			Err:     errors.Wrap(err, "open upload file"),
		}
	}
	defer f.Close()
	return c.UploadKnowledgeBase(ctx, filepath.Base(path), f)
}

func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader, out any) error {
	reqID := uuid.NewString()
	log := c.log.With().
		Str("request_id", reqID).
		Str("method", http.MethodPost).
		Str("path", path).
		Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return &Error{Kind: KindRequest, Err: errors.Wrap(err, "build request")}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("backend unreachable")
		return &Error{Kind: KindNetwork, Err: errors.Wrapf(err, "POST %s", path)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Warn().Err(err).Int("status", resp.StatusCode).Msg("read response failed")
		return &Error{Kind: KindNetwork, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "read response")}
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(raw)).
		Dur("elapsed", time.Since(start)).
		Msg("backend responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := detailMessage(raw)
		log.Info().Int("status", resp.StatusCode).Str("detail", detail).Msg("backend rejected request")
		return &Error{
			Kind:       KindBackend,
			StatusCode: resp.StatusCode,
			Message:    detail,
			Err:        errors.Errorf("POST %s: %s", path, resp.Status),
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		log.Warn().Err(err).Int("status", resp.StatusCode).Msg("undecodable response")
		return &Error{Kind: KindDecode, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "decode response")}
	}
	return nil
}

// Package export hands static document to external rendering service and
// receives binary document back.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"bylaws/common"
	"bylaws/layout"
	"bylaws/misc"
	"bylaws/render"
)

var (
	ErrStatus    = errors.New("render service returned unsuccessful status")
	ErrEmptyBody = errors.New("render service returned empty body")
	ErrNotBinary = errors.New("render service did not return expected binary document")
)

// maxResponseSize limits how much of the response body is read.
const maxResponseSize = 256 << 20

// StatusError is returned for non 2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %d %s", ErrStatus, e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("%s: %d %s: %s", ErrStatus, e.Code, http.StatusText(e.Code), e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrStatus
}

// Transient reports whether the same request may succeed later.
func (e *StatusError) Transient() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// Options describe requested document.
type Options struct {
	Format       string  `json:"format"`
	Title        string  `json:"title"`
	PageWidth    float64 `json:"pageWidth"`
	PageHeight   float64 `json:"pageHeight"`
	MarginTop    float64 `json:"marginTop"`
	MarginRight  float64 `json:"marginRight"`
	MarginBottom float64 `json:"marginBottom"`
	MarginLeft   float64 `json:"marginLeft"`
	TotalPages   int     `json:"totalPages"`
}

// Request is the body posted to the service.
type Request struct {
	Content  string         `json:"content"`
	Sections []layout.Entry `json:"sections"`
	Options  Options        `json:"options"`
}

// NewRequest assembles request from already computed layout and its static
// rendering, so failed export can be retried without recomputation.
func NewRequest(l *layout.Layout, c render.Contract, content string, format common.OutputFmt) *Request {
	return &Request{
		Content:  content,
		Sections: l.TOC.Entries,
		Options: Options{
			Format:       format.String(),
			Title:        render.DocumentTitle(l.Title),
			PageWidth:    c.PageWidth,
			PageHeight:   c.PageHeight,
			MarginTop:    c.MarginTop,
			MarginRight:  c.MarginRight,
			MarginBottom: c.MarginBottom,
			MarginLeft:   c.MarginLeft,
			TotalPages:   l.TotalPages,
		},
	}
}

// Result is binary document produced by the service.
type Result struct {
	RequestID string
	Data      []byte
	MIME      string
	Extension string
}

// Client talks to rendering service.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	log      *zap.Logger
}

// NewClient creates client for endpoint. Empty token means no
// authorization header.
func NewClient(endpoint, token string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: timeout},
		log:      log.Named("export"),
	}
}

// Export performs single export attempt.
func (c *Client) Export(ctx context.Context, req *Request) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("unable to encode export request: %w", err)
	}

	id := uuid.NewString()
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Accept", "application/pdf, application/vnd.openxmlformats-officedocument.wordprocessingml.document, application/octet-stream")
	hreq.Header.Set("User-Agent", misc.GetAppName()+"/"+misc.GetVersion())
	hreq.Header.Set("X-Request-ID", id)
	if c.token != "" {
		hreq.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Debug("Sending export request",
		zap.String("request_id", id),
		zap.String("endpoint", c.endpoint),
		zap.String("format", req.Options.Format),
		zap.Int("bytes", len(body)))

	start := time.Now()
	resp, err := c.http.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("export request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("unable to read export response: %w", err)
	}
	c.log.Debug("Export response received",
		zap.String("request_id", id),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: snippet(data)}
	}
	if len(data) == 0 {
		return nil, ErrEmptyBody
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return nil, fmt.Errorf("%w: unrecognized content (%s)", ErrNotBinary, resp.Header.Get("Content-Type"))
	}
	if kind.Extension != req.Options.Format {
		return nil, fmt.Errorf("%w: got %s, requested %s", ErrNotBinary, kind.Extension, req.Options.Format)
	}
	return &Result{RequestID: id, Data: data, MIME: kind.MIME.Value, Extension: kind.Extension}, nil
}

func snippet(data []byte) string {
	const limit = 200
	if len(data) > limit {
		data = data[:limit]
	}
	return string(bytes.TrimSpace(data))
}

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pterm/pterm"

	apperrors "sportsmatrix/cli/internal/errors"
	"sportsmatrix/cli/internal/logging"
	"sportsmatrix/cli/internal/wire"
)

// Encoding selects the body format used for requests and responses.
type Encoding string

const (
	EncodingJSON     Encoding = "json"
	EncodingProtobuf Encoding = "protobuf"
)

// ContentType returns the Content-Type header value for e.
func (e Encoding) ContentType() string {
	if e == EncodingProtobuf {
		return "application/protobuf"
	}
	return "application/json"
}

// DefaultTimeout bounds a single request when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Options configures an HTTP client.
type Options struct {
	// BaseURL is the scheme and host of the matrix service, e.g. "http://matrix.local:8080".
	BaseURL string
	// PathPrefix is prepended to every service path, e.g. "/api".
	PathPrefix string
	Encoding   Encoding
	Timeout    time.Duration
	// Token is sent as a bearer token when non-empty.
	Token  string
	Logger *pterm.Logger
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// HTTP implements API over the matrix service's HTTP endpoints.
// Each call is a single POST awaited to completion; nothing is retried or cached.
type HTTP struct {
	// baseURL is the base URL with PathPrefix applied and no trailing slash
	baseURL  string
	encoding Encoding
	token    string
	// client is the underlying HTTP client with configured timeout
	client *http.Client
	log    *pterm.Logger
}

// newHTTP creates a new HTTP client from opts.
func newHTTP(opts Options) *HTTP {
	h := &HTTP{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		encoding: opts.Encoding,
		token:    opts.Token,
		client:   opts.HTTPClient,
		log:      opts.Logger,
	}
	if prefix := strings.Trim(opts.PathPrefix, "/"); prefix != "" {
		h.baseURL += "/" + prefix
	}
	if h.encoding == "" {
		h.encoding = EncodingJSON
	}
	if h.client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		h.client = &http.Client{Timeout: timeout}
	}
	if h.log == nil {
		h.log = logging.Discard()
	}
	return h
}

// URL returns the absolute URL of a service path.
func (h *HTTP) URL(path string) string {
	return h.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Call POSTs req to path and decodes the response body into resp.
//
// A nil req sends an empty message ("{}" in JSON). A nil resp ignores the
// response body. Failures are *errors.TransportError, *errors.RemoteError or
// *wire.DecodeError.
func (h *HTTP) Call(ctx context.Context, path string, req, resp wire.Message) error {
	url := h.URL(path)
	body, err := h.encode(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &apperrors.TransportError{Op: http.MethodPost, URL: url, Err: err}
	}
	h.setStandardHeaders(httpReq)

	start := time.Now()
	res, err := h.client.Do(httpReq)
	if err != nil {
		h.log.Debug("matrix call failed", h.log.Args("path", path, "error", logging.Mask(err.Error())))
		return &apperrors.TransportError{Op: http.MethodPost, URL: url, Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return &apperrors.TransportError{Op: "read body", URL: url, Err: err}
	}
	h.log.Debug("matrix call", h.log.Args(
		"path", path,
		"encoding", string(h.encoding),
		"status", res.StatusCode,
		"bytes", len(data),
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
	))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return newRemoteError(path, res.StatusCode, data)
	}
	if resp == nil {
		return nil
	}
	return h.decode(data, resp)
}

func (h *HTTP) encode(req wire.Message) ([]byte, error) {
	if h.encoding == EncodingProtobuf {
		if req == nil {
			return nil, nil
		}
		return wire.Marshal(req), nil
	}
	if req == nil {
		return []byte("{}"), nil
	}
	b, err := wire.MarshalJSON(req)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", req.Descriptor().FullName, err)
	}
	return b, nil
}

func (h *HTTP) decode(data []byte, resp wire.Message) error {
	if h.encoding == EncodingProtobuf {
		return wire.Unmarshal(data, resp)
	}
	return wire.UnmarshalJSON(data, resp)
}

func (h *HTTP) setStandardHeaders(req *http.Request) {
	req.Header.Set("Content-Type", h.encoding.ContentType())
	req.Header.Set("Accept", h.encoding.ContentType())
	req.Header.Set("User-Agent", "matrixctl/1.0")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
}

// newRemoteError builds a RemoteError, picking up Twirp's {"code","msg"} body when present.
func newRemoteError(path string, status int, body []byte) *apperrors.RemoteError {
	re := &apperrors.RemoteError{Path: path, StatusCode: status, Body: body}
	var twerr struct {
		Code string `json:"code"`
		Msg  string `json:"msg"`
	}
	if json.Unmarshal(body, &twerr) == nil {
		re.Code = twerr.Code
		re.Msg = twerr.Msg
	}
	return re
}

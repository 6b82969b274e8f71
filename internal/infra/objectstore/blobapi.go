package objectstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBlobAPIURL is the public endpoint of the hosted blob service.
const DefaultBlobAPIURL = "https://blob.vercel-storage.com"

const blobAPIVersion = "7"

// APIError is a non-2xx answer from the blob service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("blob api: status %d: %s", e.StatusCode, e.Message)
}

// BlobAPIConfig configures the REST client.
type BlobAPIConfig struct {
	// BaseURL defaults to DefaultBlobAPIURL.
	BaseURL string
	// Token is the read-write token sent as a bearer credential.
	Token   string
	Timeout time.Duration
}

// BlobAPI talks to a hosted blob store over its REST API.
type BlobAPI struct {
	cfg        BlobAPIConfig
	httpClient *http.Client
}

// NewBlobAPI creates a client. A nil httpClient gets one with cfg.Timeout.
func NewBlobAPI(cfg BlobAPIConfig, httpClient *http.Client) *BlobAPI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBlobAPIURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &BlobAPI{cfg: cfg, httpClient: httpClient}
}

type putResponse struct {
	URL         string `json:"url"`
	Pathname    string `json:"pathname"`
	ContentType string `json:"contentType"`
}

type listResponse struct {
	Blobs []struct {
		URL         string    `json:"url"`
		Pathname    string    `json:"pathname"`
		Size        int64     `json:"size"`
		UploadedAt  time.Time `json:"uploadedAt"`
		ContentType string    `json:"contentType"`
	} `json:"blobs"`
	Cursor  string `json:"cursor"`
	HasMore bool   `json:"hasMore"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (b *BlobAPI) Put(ctx context.Context, pathname string, body io.Reader, opts PutOptions) (Object, error) {
	cr := &countingReader{r: body}
	endpoint := b.cfg.BaseURL + "/" + strings.TrimLeft(pathname, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, cr)
	if err != nil {
		return Object{}, fmt.Errorf("create http request: %w", err)
	}
	b.authorize(req)
	req.Header.Set("x-api-version", blobAPIVersion)
	if opts.ContentType != "" {
		req.Header.Set("x-content-type", opts.ContentType)
	}
	if opts.AddRandomSuffix {
		req.Header.Set("x-add-random-suffix", "1")
	} else {
		req.Header.Set("x-add-random-suffix", "0")
	}

	var out putResponse
	if err := b.do(req, &out); err != nil {
		return Object{}, err
	}

	ct := out.ContentType
	if ct == "" {
		ct = opts.ContentType
	}
	return Object{
		Pathname:    out.Pathname,
		URL:         out.URL,
		ContentType: ct,
		Size:        cr.n,
		UploadedAt:  time.Now().UTC(),
	}, nil
}

func (b *BlobAPI) List(ctx context.Context, prefix string) ([]Object, error) {
	var (
		objects []Object
		cursor  string
	)
	for {
		q := url.Values{}
		q.Set("prefix", prefix)
		q.Set("limit", "1000")
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.cfg.BaseURL+"?"+q.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("create http request: %w", err)
		}
		b.authorize(req)
		req.Header.Set("x-api-version", blobAPIVersion)

		var page listResponse
		if err := b.do(req, &page); err != nil {
			return nil, err
		}
		for _, bl := range page.Blobs {
			objects = append(objects, Object{
				Pathname:    bl.Pathname,
				URL:         bl.URL,
				ContentType: bl.ContentType,
				Size:        bl.Size,
				UploadedAt:  bl.UploadedAt,
			})
		}

		if !page.HasMore || page.Cursor == "" {
			return objects, nil
		}
		cursor = page.Cursor
	}
}

// Open downloads obj from its public URL.
func (b *BlobAPI) Open(ctx context.Context, obj Object) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, obj.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create http request: %w", err)
	}
	// CDN キャッシュを避けて常に最新を取得
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute http request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer func() { _ = resp.Body.Close() }()
		return nil, decodeAPIError(resp)
	}
	return resp.Body, nil
}

func (b *BlobAPI) authorize(req *http.Request) {
	if b.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+b.cfg.Token)
	}
}

func (b *BlobAPI) do(req *http.Request, out any) error {
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode blob api response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var er errorResponse
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &er) == nil && er.Error.Message != "" {
		msg = er.Error.Message
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

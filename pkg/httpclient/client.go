// Package httpclient is the transport seam of the WADM client. Callers talk to
// the Client interface so tests can swap in a spy or a canned transport.
package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// Response is the minimal view of an HTTP response the WADM client needs.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client performs GET requests. Transport failures are returned as errors;
// any received response, whatever its status, is returned as a Response.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}

// IsSuccess reports whether the status code is in the 2xx range.
func IsSuccess(resp Response) bool {
	if resp == nil {
		return false
	}
	code := resp.StatusCode()
	return code >= 200 && code < 300
}

// RestyClient adapts resty.Client to the Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a RestyClient with the given request timeout.
// A zero timeout disables the client-side deadline; the request context still applies.
func NewRestyClient(timeout time.Duration) *RestyClient {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &RestyClient{client: c}
}

// NewRestyClientFrom wraps an already configured resty.Client.
func NewRestyClientFrom(c *resty.Client) *RestyClient {
	return &RestyClient{client: c}
}

// Get performs an HTTP GET request bound to ctx.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return &restyResponse{resp: resp}, nil
}

type restyResponse struct {
	resp *resty.Response
}

func (r *restyResponse) Body() []byte    { return r.resp.Body() }
func (r *restyResponse) StatusCode() int { return r.resp.StatusCode() }

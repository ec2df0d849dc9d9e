package client

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
)

// Endpoint identifies one of the WADM API endpoints.
type Endpoint int

const (
	EndpointConnectionTest Endpoint = iota
	EndpointAuthenticationTest
	EndpointArtworks
	EndpointArtwork
	EndpointAlbum
)

// String returns the label used for the endpoint in logs and metrics.
func (e Endpoint) String() string {
	switch e {
	case EndpointConnectionTest:
		return "connectiontest"
	case EndpointAuthenticationTest:
		return "authenticationtest"
	case EndpointArtworks:
		return "artworks"
	case EndpointArtwork:
		return "artwork"
	case EndpointAlbum:
		return "album"
	default:
		return "unknown"
	}
}

// BuildHeaders returns the headers sent with every authenticated request.
// Content-Type is sent on GET requests as well; the API expects it.
func BuildHeaders(userID int, accessToken, userAgent string) map[string]string {
	credentials := fmt.Sprintf("%d:%s", userID, accessToken)
	return map[string]string{
		"User-Agent":    userAgent,
		"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials)),
		"Content-Type":  "application/json",
		"Accept":        "application/json",
	}
}

// PathSegment returns the order path segment, "<order>/", or "" when no order is set.
func (f *Filter) PathSegment() string {
	if f == nil || f.Order == "" {
		return ""
	}
	return string(f.Order) + "/"
}

// Query returns the filter's query parameters. Absent fields are omitted and
// the order is never part of the query.
func (f *Filter) Query() url.Values {
	q := url.Values{}
	if f == nil {
		return q
	}
	if f.Medium != 0 {
		q.Set("mediumId", strconv.Itoa(int(f.Medium)))
	}
	if f.Size != "" {
		q.Set("size", string(f.Size))
	}
	if f.LanguageCode != "" {
		q.Set("languageCode", string(f.LanguageCode))
	}
	if f.Locale != "" {
		q.Set("locale", string(f.Locale))
	}
	return q
}

// PagePath returns "<base>/<page>/" followed by the order segment when the
// filter carries one.
func PagePath(base string, page int, f *Filter) string {
	return fmt.Sprintf("%s/%d/%s", base, page, f.PathSegment())
}

// BuildURL appends the filter's query string to path. Without query
// parameters path is returned unchanged.
func BuildURL(path string, f *Filter) string {
	q := f.Query()
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// endpointBase returns the host-prefixed base path of an endpoint. The
// artworks listing embeds the user id and the configured page size.
func (c *Client) endpointBase(e Endpoint) string {
	host := c.config.Host
	switch e {
	case EndpointConnectionTest:
		return host + "/connectiontest"
	case EndpointAuthenticationTest:
		return host + "/authenticationtest"
	case EndpointArtworks:
		return fmt.Sprintf("%s/artlist/%d/%d", host, c.config.UserID, c.config.PageSize)
	case EndpointArtwork:
		return host + "/artwork"
	case EndpointAlbum:
		return host + "/album"
	default:
		return host
	}
}

// headers returns the authenticated request headers for this client.
func (c *Client) headers() map[string]string {
	return BuildHeaders(c.config.UserID, c.config.AccessToken, c.config.UserAgent)
}

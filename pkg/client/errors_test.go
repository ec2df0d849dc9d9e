package client

import (
	"errors"
	"io"
	"testing"
)

func TestRequestError_Error(t *testing.T) {
	err := &RequestError{
		Endpoint: EndpointArtworks,
		URL:      "https://example.test/artlist/1/10/1/",
		Class:    ErrorClassNetwork,
		Err:      io.ErrUnexpectedEOF,
	}

	expected := "WADM artworks network error (https://example.test/artlist/1/10/1/): unexpected EOF"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestRequestError_Unwrap(t *testing.T) {
	baseErr := errors.New("connection refused")
	err := &RequestError{Endpoint: EndpointArtwork, Class: ErrorClassNetwork, Err: baseErr}

	if !errors.Is(err, baseErr) {
		t.Error("errors.Is should find the wrapped error")
	}

	var reqErr *RequestError
	if !errors.As(error(err), &reqErr) {
		t.Fatal("errors.As should work with RequestError")
	}
	if reqErr.Endpoint != EndpointArtwork {
		t.Errorf("Endpoint = %v, want %v", reqErr.Endpoint, EndpointArtwork)
	}
}

func TestStatusClass(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "success"},
		{204, "success"},
		{304, "other"},
		{401, "client_error"},
		{404, "client_error"},
		{500, "server_error"},
		{503, "server_error"},
	}

	for _, tt := range tests {
		if got := statusClass(tt.code); got != tt.want {
			t.Errorf("statusClass(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

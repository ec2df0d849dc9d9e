package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sternrassler/wadm-client/internal/testutil"
	"github.com/Sternrassler/wadm-client/pkg/client"
)

func setupCLI(t *testing.T) (*testutil.MockWADM, string) {
	t.Helper()

	mock := testutil.NewMockWADM()
	t.Cleanup(mock.Close)

	path := filepath.Join(t.TempDir(), "wadm.yaml")
	content := fmt.Sprintf("user_id: 7\naccess_token: secret\nhost: %s\nlogging:\n  format: json\n", mock.URL())
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return mock, path
}

func run(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestPing(t *testing.T) {
	mock, path := setupCLI(t)
	mock.SetResponse("/connectiontest", testutil.MockWADMResponse{StatusCode: http.StatusOK, Body: `{}`})

	out, err := run(t, path, "ping")
	assert.ErrorIs(t, err, errProbeFailed)
	assert.Equal(t, "connection: ok\nauthentication: failed\n", out)

	mock.SetResponse("/authenticationtest", testutil.MockWADMResponse{StatusCode: http.StatusOK, Body: `{}`})
	out, err = run(t, path, "ping")
	require.NoError(t, err)
	assert.Equal(t, "connection: ok\nauthentication: ok\n", out)
}

func TestArtworks(t *testing.T) {
	mock, path := setupCLI(t)
	mock.SetJSON("/artlist/7/10/1/", testutil.ListBody(1, 2, testutil.ArtworkJSON(1, "Wide", "200x100")))
	mock.SetJSON("/artlist/7/10/2/", testutil.ListBody(2, 2, testutil.ArtworkJSON(2, "Tall", "100x200")))

	out, err := run(t, path, "artworks")
	require.NoError(t, err)

	var artworks []client.ArtworkPlus
	require.NoError(t, json.Unmarshal([]byte(out), &artworks))
	require.Len(t, artworks, 2)
	assert.Equal(t, "Wide", artworks[0].Title)
	assert.Equal(t, "Tall", artworks[1].Title)

	out, err = run(t, path, "artworks", "--where", "ratio < 1")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &artworks))
	require.Len(t, artworks, 1)
	assert.Equal(t, 2, artworks[0].ID)
}

func TestArtworks_SinglePageWithFilter(t *testing.T) {
	mock, path := setupCLI(t)
	mock.SetJSON("/artlist/7/10/3/date_desc/", testutil.ListBody(3, 3, testutil.ArtworkJSON(8, "Late", "10x10")))

	out, err := run(t, path, "artworks", "--page", "3", "--order", "date_desc", "--medium", "canvas")
	require.NoError(t, err)

	var artworks []client.ArtworkPlus
	require.NoError(t, json.Unmarshal([]byte(out), &artworks))
	require.Len(t, artworks, 1)
	assert.Equal(t, "mediumId=1", mock.LastRequest().URL.RawQuery)
}

func TestArtworks_NoData(t *testing.T) {
	_, path := setupCLI(t)

	out, err := run(t, path, "artworks", "--page", "1")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestArtworks_InvalidFilter(t *testing.T) {
	mock, path := setupCLI(t)

	_, err := run(t, path, "artworks", "--order", "shuffle")
	assert.EqualError(t, err, `unknown order: "shuffle"`)
	assert.Equal(t, 0, mock.RequestCount())
}

func TestAlbum(t *testing.T) {
	mock, path := setupCLI(t)
	mock.SetJSON("/album/5/1/", testutil.ListBody(1, 1, testutil.ArtworkJSON(9, "Mill", "10x10")))

	out, err := run(t, path, "album", "5")
	require.NoError(t, err)

	var artworks []client.ArtworkPlus
	require.NoError(t, json.Unmarshal([]byte(out), &artworks))
	require.Len(t, artworks, 1)
	assert.Equal(t, 9, artworks[0].ID)

	_, err = run(t, path, "album", "0")
	assert.ErrorIs(t, err, client.ErrMissingAlbumID)
}

func TestArtwork(t *testing.T) {
	mock, path := setupCLI(t)
	mock.SetJSON("/artwork/42/", testutil.ArtworkBody(testutil.ArtworkJSON(42, "Harbour", "1000x500")))

	out, err := run(t, path, "artwork", "42")
	require.NoError(t, err)

	var artwork client.ArtworkPlus
	require.NoError(t, json.Unmarshal([]byte(out), &artwork))
	assert.Equal(t, 42, artwork.ID)
	assert.Equal(t, 2.0, artwork.Ratio)

	out, err = run(t, path, "artwork", "43")
	require.NoError(t, err)
	assert.Equal(t, "artwork 43 not found\n", out)

	_, err = run(t, path, "artwork", "abc")
	assert.EqualError(t, err, `invalid id: "abc"`)
}

func TestMissingConfig(t *testing.T) {
	_, err := run(t, filepath.Join(t.TempDir(), "missing.yaml"), "ping")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

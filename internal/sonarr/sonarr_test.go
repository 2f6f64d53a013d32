package sonarr

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		URL:    server.URL,
		APIKey: "test-key",
	})
	return server, client
}

func TestClientSendsAPIKey(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		json.NewEncoder(w).Encode(SystemStatus{AppName: "Sonarr", Version: "4.0.0"})
	})

	status, err := client.GetSystemStatus()
	require.NoError(t, err)
	assert.Equal(t, "Sonarr", status.AppName)
}

func TestClientErrorStatus(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
	})

	err := client.Ping()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestGetTaggedSeries(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/tag":
			json.NewEncoder(w).Encode([]Tag{
				{ID: 1, Label: "4k"},
				{ID: 7, Label: "Extrarr"},
			})
		case "/api/v3/series":
			json.NewEncoder(w).Encode([]Series{
				{ID: 10, Title: "Foundation", Monitored: true, Tags: []int{7}},
				{ID: 11, Title: "Severance", Monitored: true, Tags: []int{1}},
				{ID: 12, Title: "Dark", Monitored: false, Tags: []int{7}},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	// Label match is case-insensitive; unmonitored series are skipped.
	series, err := client.GetTaggedSeries("extrarr")
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "Foundation", series[0].Title)
}

func TestGetTaggedSeriesUnknownLabel(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/tag", r.URL.Path)
		json.NewEncoder(w).Encode([]Tag{{ID: 1, Label: "4k"}})
	})

	series, err := client.GetTaggedSeries("extrarr")
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestGetEpisodesSendsSeriesIDQuery(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		// The seriesId must arrive as a query parameter, not as a
		// percent-encoded tail of the path.
		require.Equal(t, "/api/v3/episode", r.URL.Path)
		require.Equal(t, "seriesId=7", r.URL.RawQuery)
		json.NewEncoder(w).Encode([]Episode{
			{ID: 1, SeasonNumber: 0, EpisodeNumber: 1, Title: "Extra"},
		})
	})

	episodes, err := client.GetEpisodes(7)
	require.NoError(t, err)
	require.Len(t, episodes, 1)
	assert.Equal(t, "Extra", episodes[0].Title)
}

func TestGetMissingSpecials(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/episode", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("seriesId"))
		json.NewEncoder(w).Encode([]Episode{
			{ID: 1, SeasonNumber: 0, EpisodeNumber: 1, Title: "Making Of", Monitored: true, HasFile: false},
			{ID: 2, SeasonNumber: 0, EpisodeNumber: 2, Title: "Bloopers", Monitored: true, HasFile: true},
			{ID: 3, SeasonNumber: 0, EpisodeNumber: 3, Title: "Deleted Scenes", Monitored: false, HasFile: false},
			{ID: 4, SeasonNumber: 1, EpisodeNumber: 1, Title: "Pilot", Monitored: true, HasFile: false},
		})
	})

	specials, err := client.GetMissingSpecials(42)
	require.NoError(t, err)
	require.Len(t, specials, 1)
	assert.Equal(t, "Making Of", specials[0].Title)
}

func TestRescanSeries(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v3/command", r.URL.Path)

		var cmd Command
		require.NoError(t, json.NewDecoder(r.Body).Decode(&cmd))
		assert.Equal(t, "RescanSeries", cmd.Name)
		assert.Equal(t, 42, cmd.SeriesID)

		json.NewEncoder(w).Encode(CommandResponse{ID: 99, Name: cmd.Name, Status: "queued"})
	})

	resp, err := client.RescanSeries(42)
	require.NoError(t, err)
	assert.Equal(t, "queued", resp.Status)
}

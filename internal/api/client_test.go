package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBaseURL(t *testing.T) {
	u, err := parseBaseURL("example.com/cinemaddict?x=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "/cinemaddict/", u.Path)
	assert.Empty(t, u.RawQuery)
	assert.Empty(t, u.Fragment)

	_, err = parseBaseURL("   ")
	assert.Error(t, err)
}

func TestClientEndpoints(t *testing.T) {
	release := time.Date(2019, 5, 11, 0, 0, 0, 0, time.UTC)

	var gotAuth []string
	var gotUpdate Film
	var gotDraft CommentDraft
	var deleted string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/cinemaddict/movies":
			_ = json.NewEncoder(w).Encode([]Film{{
				ID:       "0",
				Comments: []string{"c1"},
				FilmInfo: FilmInfo{Title: "Sky", Release: Release{Date: &release}},
			}})
		case r.Method == http.MethodPut && r.URL.Path == "/cinemaddict/movies/0":
			_ = json.NewDecoder(r.Body).Decode(&gotUpdate)
			_ = json.NewEncoder(w).Encode(gotUpdate)
		case r.Method == http.MethodGet && r.URL.Path == "/cinemaddict/comments/0":
			_ = json.NewEncoder(w).Encode([]Comment{{ID: "c1", Author: "Ilya", Comment: "ok", Emotion: "smile"}})
		case r.Method == http.MethodPost && r.URL.Path == "/cinemaddict/comments/0":
			_ = json.NewDecoder(r.Body).Decode(&gotDraft)
			_ = json.NewEncoder(w).Encode(CommentPostResponse{
				Movie:    Film{ID: "0", Comments: []string{"c1", "c2"}},
				Comments: []Comment{{ID: "c1"}, {ID: "c2", Comment: gotDraft.Comment}},
			})
		case r.Method == http.MethodDelete && r.URL.Path == "/cinemaddict/comments/c1":
			deleted = "c1"
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL+"/cinemaddict", "Basic secret", time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	films, err := client.Films(ctx)
	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Equal(t, "Sky", films[0].FilmInfo.Title)
	require.NotNil(t, films[0].FilmInfo.Release.Date)
	assert.True(t, release.Equal(*films[0].FilmInfo.Release.Date))

	films[0].UserDetails.Watchlist = true
	updated, err := client.UpdateFilm(ctx, films[0])
	require.NoError(t, err)
	assert.True(t, gotUpdate.UserDetails.Watchlist)
	assert.True(t, updated.UserDetails.Watchlist)

	comments, err := client.Comments(ctx, "0")
	require.NoError(t, err)
	assert.Equal(t, "Ilya", comments[0].Author)

	resp, err := client.AddComment(ctx, "0", CommentDraft{Comment: "great", Emotion: "smile"})
	require.NoError(t, err)
	assert.Equal(t, "great", gotDraft.Comment)
	assert.Equal(t, []string{"c1", "c2"}, resp.Movie.Comments)
	assert.Len(t, resp.Comments, 2)

	require.NoError(t, client.DeleteComment(ctx, "c1"))
	assert.Equal(t, "c1", deleted)

	for _, auth := range gotAuth {
		assert.Equal(t, "Basic secret", auth)
	}
}

func TestClientReportsStatusErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Comment is required", http.StatusBadRequest)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "", time.Second)
	require.NoError(t, err)

	_, err = client.AddComment(context.Background(), "0", CommentDraft{})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.Code)
	assert.Equal(t, "/comments/0", statusErr.Path)
	assert.Contains(t, statusErr.Error(), "Comment is required")
}

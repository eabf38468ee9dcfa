package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NathanBartolo/echo/internal/cache"
	"github.com/NathanBartolo/echo/internal/metrics"
	"github.com/NathanBartolo/echo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const purpleRain = `{
	"wrapperType": "track",
	"trackId": 1469577723,
	"trackName": "Purple Rain",
	"artistName": "Prince",
	"collectionName": "Purple Rain",
	"artworkUrl100": "https://is1.mzstatic.com/image/100x100bb.jpg",
	"previewUrl": "https://audio-ssl.itunes.apple.com/preview.m4a",
	"releaseDate": "1984-06-25T12:00:00Z",
	"primaryGenreName": "Pop",
	"trackTimeMillis": 520720
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, queries ...string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{
		BaseURL:         srv.URL,
		FeaturedQueries: queries,
		FeaturedTTL:     time.Minute,
	}, srv.Client(), cache.NewMemoryCache[[]models.CatalogSong](), metrics.NewNoopMetrics())
}

func results(items ...string) string {
	return fmt.Sprintf(`{"resultCount":%d,"results":[%s]}`, len(items), strings.Join(items, ","))
}

func TestSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "purple rain", r.URL.Query().Get("term"))
		assert.Equal(t, "song", r.URL.Query().Get("entity"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(results(purpleRain)))
	})

	songs, err := c.Search(context.Background(), "purple rain", 0)
	require.NoError(t, err)
	require.Len(t, songs, 1)

	s := songs[0]
	assert.Equal(t, models.TrackID("1469577723"), s.ID)
	assert.Equal(t, models.TrackID("1469577723"), s.TrackID)
	assert.Equal(t, "Purple Rain", s.Title)
	assert.Equal(t, "Prince", s.Artist)
	assert.Equal(t, "https://is1.mzstatic.com/image/300x300bb.jpg", s.Cover)
	assert.Equal(t, "1984", s.Year)
	assert.Equal(t, int64(520720), s.TrackTimeMillis)
	assert.Empty(t, s.Genre, "search results omit detail fields")
}

func TestSearch_EmptyResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"resultCount":0,"results":[]}`))
	})

	songs, err := c.Search(context.Background(), "zzzz", 3)
	require.NoError(t, err)
	assert.NotNil(t, songs)
	assert.Empty(t, songs)
}

func TestSearch_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := c.Search(context.Background(), "x", 1)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestSearch_InvalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})

	_, err := c.Search(context.Background(), "x", 1)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestLookup(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lookup", r.URL.Path)
		assert.Equal(t, "1469577723", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte(results(`{"wrapperType":"collection","collectionName":"Album"}`, purpleRain)))
	})

	song, err := c.Lookup(context.Background(), "1469577723")
	require.NoError(t, err)
	assert.Equal(t, "Purple Rain", song.Title)
	assert.Equal(t, "https://is1.mzstatic.com/image/600x600bb.jpg", song.Cover)
	assert.Equal(t, "1984-06-25T12:00:00Z", song.ReleaseDate)
	assert.Equal(t, "Pop", song.Genre)
	assert.Empty(t, song.Year)
}

func TestLookup_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"resultCount":0,"results":[]}`))
	})

	_, err := c.Lookup(context.Background(), "1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFeatured_PreservesOrderAndDropsMisses(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		switch term := r.URL.Query().Get("term"); term {
		case "missing":
			_, _ = w.Write([]byte(`{"resultCount":0,"results":[]}`))
		case "broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte(results(fmt.Sprintf(
				`{"trackId":%d,"trackName":%q,"artistName":"A","artworkUrl100":"x/100x100.jpg","previewUrl":"p"}`,
				len(term), term,
			))))
		}
	}, "first", "missing", "third song", "broken", "fifth")

	songs, err := c.Featured(context.Background())
	require.NoError(t, err)

	titles := make([]string, len(songs))
	for i, s := range songs {
		titles[i] = s.Title
	}
	assert.Equal(t, []string{"first", "third song", "fifth"}, titles)
	assert.Equal(t, "x/300x300.jpg", songs[0].Cover)
	assert.Empty(t, songs[0].PreviewURL, "featured entries carry the short shape")
	assert.Empty(t, songs[0].TrackID)

	// Second call is served from cache.
	before := atomic.LoadInt32(&calls)
	_, err = c.Featured(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, atomic.LoadInt32(&calls))
}

func TestFeatured_AllFailedIsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "a", "b")

	_, err := c.Featured(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestReleaseYear(t *testing.T) {
	assert.Equal(t, "2024", releaseYear("2024-10-04T07:00:00Z"))
	assert.Equal(t, "1999", releaseYear("1999-01"))
	assert.Equal(t, "", releaseYear(""))
	assert.Equal(t, "", releaseYear("99"))
}

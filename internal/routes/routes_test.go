package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/btmxh/ytmeta/internal/auth"
	"github.com/btmxh/ytmeta/internal/media"
	"github.com/btmxh/ytmeta/internal/services"
	"github.com/gin-gonic/gin"
)

const testApiKey = "test-key"

type fakeExtractor struct {
	videoCalls    atomic.Int32
	playlistCalls atomic.Int32
	videoFn       func(id string) (*media.VideoMetadata, error)
	playlistFn    func(id string) (*media.PlaylistMetadata, error)
}

func (f *fakeExtractor) FetchVideo(_ context.Context, id string) (*media.VideoMetadata, error) {
	f.videoCalls.Add(1)
	if f.videoFn == nil {
		return nil, media.ErrExtractFailed
	}
	return f.videoFn(id)
}

func (f *fakeExtractor) FetchPlaylist(_ context.Context, id string) (*media.PlaylistMetadata, error) {
	f.playlistCalls.Add(1)
	if f.playlistFn == nil {
		return nil, media.ErrExtractFailed
	}
	return f.playlistFn(id)
}

func fakeVideo(id string) (*media.VideoMetadata, error) {
	duration := 123
	uploader := "Uploader"
	channelId := "channel-123"
	return &media.VideoMetadata{
		Id:        id,
		Title:     "Video-" + id,
		Duration:  &duration,
		Uploader:  &uploader,
		ChannelId: &channelId,
		VideoFormats: []media.StreamInfo{
			{FormatId: "136", Ext: "mp4", Url: "https://cdn.example.com/video/" + id},
		},
		AudioFormat: &media.StreamInfo{FormatId: "140", Ext: "m4a", Url: "https://cdn.example.com/audio/" + id},
	}, nil
}

func fakePlaylist(id string) (*media.PlaylistMetadata, error) {
	uploader := "Playlist Uploader"
	return &media.PlaylistMetadata{
		Id:         id,
		Title:      "Playlist Title",
		Uploader:   &uploader,
		VideoCount: 2,
		Videos: []media.PlaylistEntry{
			{Id: "video1", Title: "First Video"},
			{Id: "video2", Title: "Second Video"},
		},
	}, nil
}

func newTestRouter(extractor media.Extractor) http.Handler {
	auth.SetAPIKey(testApiKey)
	service := services.NewMetadataService(extractor, services.DefaultCacheConfig())
	return CreateMainRouter(service)
}

func doRequest(t *testing.T, router http.Handler, path string, apiKey string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if apiKey != "" {
		req.Header.Set("Authorization", apiKey)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON response %q: %v", rec.Body.String(), err)
	}
	return payload
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestHealthReportsCacheStats(t *testing.T) {
	router := newTestRouter(&fakeExtractor{})

	rec := doRequest(t, router, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	payload := decodeBody(t, rec)
	if payload["status"] != "ok" {
		t.Fatalf("unexpected status field: %v", payload["status"])
	}

	videoCache, ok := payload["video_cache"].(map[string]any)
	if !ok {
		t.Fatalf("missing video_cache: %v", payload)
	}
	if videoCache["size"] != float64(0) || videoCache["maxsize"] != float64(1024) {
		t.Fatalf("unexpected video cache stats: %v", videoCache)
	}

	playlistCache, ok := payload["playlist_cache"].(map[string]any)
	if !ok {
		t.Fatalf("missing playlist_cache: %v", payload)
	}
	if playlistCache["size"] != float64(0) {
		t.Fatalf("unexpected playlist cache stats: %v", playlistCache)
	}
}

func TestVideoRequiresAuthorization(t *testing.T) {
	router := newTestRouter(&fakeExtractor{videoFn: fakeVideo})

	if rec := doRequest(t, router, "/v1/video/dQw4w9WgXcQ", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing key: expected 401, got %d", rec.Code)
	}
	if rec := doRequest(t, router, "/v1/video/dQw4w9WgXcQ", "wrong-key"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong key: expected 401, got %d", rec.Code)
	}
}

func TestVideoReturnsPayload(t *testing.T) {
	router := newTestRouter(&fakeExtractor{videoFn: fakeVideo})

	rec := doRequest(t, router, "/v1/video/dQw4w9WgXcQ", testApiKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d (%s)", rec.Code, rec.Body.String())
	}

	payload := decodeBody(t, rec)
	if payload["id"] != "dQw4w9WgXcQ" || payload["title"] != "Video-dQw4w9WgXcQ" {
		t.Fatalf("unexpected identity: %v / %v", payload["id"], payload["title"])
	}

	formats, ok := payload["video_formats"].([]any)
	if !ok || len(formats) != 1 {
		t.Fatalf("unexpected video_formats: %v", payload["video_formats"])
	}
	if formats[0].(map[string]any)["format_id"] != "136" {
		t.Fatalf("unexpected format: %v", formats[0])
	}

	audio, ok := payload["audio_format"].(map[string]any)
	if !ok || audio["format_id"] != "140" {
		t.Fatalf("unexpected audio_format: %v", payload["audio_format"])
	}
}

func TestInvalidVideoIdRejected(t *testing.T) {
	fake := &fakeExtractor{videoFn: fakeVideo}
	router := newTestRouter(fake)

	rec := doRequest(t, router, "/v1/video/too-short", testApiKey)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if fake.videoCalls.Load() != 0 {
		t.Fatal("invalid id must not reach the extractor")
	}
}

func TestVideoExtractionFailureMapsToNotFound(t *testing.T) {
	router := newTestRouter(&fakeExtractor{videoFn: func(id string) (*media.VideoMetadata, error) {
		return nil, fmt.Errorf("%w: no such video", media.ErrExtractFailed)
	}})

	rec := doRequest(t, router, "/v1/video/dQw4w9WgXcQ", testApiKey)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	payload := decodeBody(t, rec)
	if payload["detail"] != ErrVideoUnavailable.Error() {
		t.Fatalf("unexpected detail: %v", payload["detail"])
	}
}

func TestVideoResponsesAreCached(t *testing.T) {
	fake := &fakeExtractor{videoFn: fakeVideo}
	router := newTestRouter(fake)

	for i := 0; i < 3; i++ {
		if rec := doRequest(t, router, "/v1/video/dQw4w9WgXcQ", testApiKey); rec.Code != http.StatusOK {
			t.Fatalf("unexpected status: %d", rec.Code)
		}
	}

	if fake.videoCalls.Load() != 1 {
		t.Fatalf("expected 1 extraction, got %d", fake.videoCalls.Load())
	}
}

func TestForceReloadBypassesCache(t *testing.T) {
	fake := &fakeExtractor{videoFn: fakeVideo}
	router := newTestRouter(fake)

	rec := doRequest(t, router, "/v1/video/dQw4w9WgXcQ", testApiKey)
	firstTitle := decodeBody(t, rec)["title"]

	fake.videoFn = func(id string) (*media.VideoMetadata, error) {
		return &media.VideoMetadata{Id: id, Title: "Fresh Title", VideoFormats: []media.StreamInfo{}}, nil
	}

	// without force_reload the stale entry is still served
	rec = doRequest(t, router, "/v1/video/dQw4w9WgXcQ", testApiKey)
	if title := decodeBody(t, rec)["title"]; title != firstTitle {
		t.Fatalf("cache unexpectedly bypassed: %v", title)
	}

	rec = doRequest(t, router, "/v1/video/dQw4w9WgXcQ?force_reload=true", testApiKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if title := decodeBody(t, rec)["title"]; title != "Fresh Title" {
		t.Fatalf("force_reload did not refetch: %v", title)
	}
	if fake.videoCalls.Load() != 2 {
		t.Fatalf("expected 2 extractions, got %d", fake.videoCalls.Load())
	}
}

func TestPlaylistReturnsSummary(t *testing.T) {
	router := newTestRouter(&fakeExtractor{playlistFn: fakePlaylist})

	rec := doRequest(t, router, "/v1/playlists/demo-playlist", testApiKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d (%s)", rec.Code, rec.Body.String())
	}

	payload := decodeBody(t, rec)
	if payload["id"] != "demo-playlist" || payload["video_count"] != float64(2) {
		t.Fatalf("unexpected summary: %v", payload)
	}

	videos, ok := payload["videos"].([]any)
	if !ok || len(videos) != 2 {
		t.Fatalf("unexpected videos: %v", payload["videos"])
	}
	if videos[1].(map[string]any)["id"] != "video2" {
		t.Fatalf("unexpected entry: %v", videos[1])
	}
}

func TestPlaylistRequiresAuthorization(t *testing.T) {
	router := newTestRouter(&fakeExtractor{playlistFn: fakePlaylist})

	if rec := doRequest(t, router, "/v1/playlists/demo-playlist", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

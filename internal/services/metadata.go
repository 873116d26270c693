package services

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/btmxh/ytmeta/internal/cache"
	"github.com/btmxh/ytmeta/internal/media"
)

type CacheConfig struct {
	VideoCacheSize    int
	VideoCacheTTL     time.Duration
	PlaylistCacheSize int
	PlaylistCacheTTL  time.Duration
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		VideoCacheSize:    1024,
		VideoCacheTTL:     time.Hour,
		PlaylistCacheSize: 256,
		PlaylistCacheTTL:  time.Hour,
	}
}

func CacheConfigFromEnv() CacheConfig {
	cfg := DefaultCacheConfig()
	cfg.VideoCacheSize = envInt("VIDEO_CACHE_SIZE", cfg.VideoCacheSize)
	cfg.VideoCacheTTL = envDuration("VIDEO_CACHE_TTL", cfg.VideoCacheTTL)
	cfg.PlaylistCacheSize = envInt("PLAYLIST_CACHE_SIZE", cfg.PlaylistCacheSize)
	cfg.PlaylistCacheTTL = envDuration("PLAYLIST_CACHE_TTL", cfg.PlaylistCacheTTL)
	return cfg
}

func envInt(name string, fallback int) int {
	str, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}

	value, err := strconv.Atoi(str)
	if err != nil || value <= 0 {
		slog.Warn("Invalid value for environment variable", "name", name, "value", str)
		return fallback
	}

	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	str, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}

	value, err := time.ParseDuration(str)
	if err != nil || value <= 0 {
		slog.Warn("Invalid value for environment variable", "name", name, "value", str)
		return fallback
	}

	return value
}

// MetadataService fronts the extractor with one cache per resource kind.
// Lookups for the same id are coalesced by the caches, so a burst of
// requests for an uncached video spawns a single extraction.
type MetadataService struct {
	extractor media.Extractor
	videos    *cache.Cache[*media.VideoMetadata]
	playlists *cache.Cache[*media.PlaylistMetadata]
}

func NewMetadataService(extractor media.Extractor, cfg CacheConfig) *MetadataService {
	return &MetadataService{
		extractor: extractor,
		videos:    cache.New[*media.VideoMetadata](cfg.VideoCacheSize, cfg.VideoCacheTTL),
		playlists: cache.New[*media.PlaylistMetadata](cfg.PlaylistCacheSize, cfg.PlaylistCacheTTL),
	}
}

func (s *MetadataService) GetVideo(ctx context.Context, id string, forceReload bool) (*media.VideoMetadata, error) {
	return s.videos.GetOrFetch(ctx, id, forceReload, func(ctx context.Context) (*media.VideoMetadata, error) {
		slog.Debug("Fetching video metadata", "id", id)
		return s.extractor.FetchVideo(ctx, id)
	})
}

func (s *MetadataService) GetPlaylist(ctx context.Context, id string, forceReload bool) (*media.PlaylistMetadata, error) {
	return s.playlists.GetOrFetch(ctx, id, forceReload, func(ctx context.Context) (*media.PlaylistMetadata, error) {
		slog.Debug("Fetching playlist metadata", "id", id)
		return s.extractor.FetchPlaylist(ctx, id)
	})
}

func (s *MetadataService) VideoCacheStats() cache.Stats {
	return s.videos.Stats()
}

func (s *MetadataService) PlaylistCacheStats() cache.Stats {
	return s.playlists.Stats()
}

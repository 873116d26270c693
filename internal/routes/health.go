package routes

import (
	"net/http"

	"github.com/btmxh/ytmeta/internal/cache"
	"github.com/btmxh/ytmeta/internal/services"
	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status        string      `json:"status"`
	VideoCache    cache.Stats `json:"video_cache"`
	PlaylistCache cache.Stats `json:"playlist_cache"`
}

func HealthHandler(service *services.MetadataService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, healthResponse{
			Status:        "ok",
			VideoCache:    service.VideoCacheStats(),
			PlaylistCache: service.PlaylistCacheStats(),
		})
	}
}

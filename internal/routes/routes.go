package routes

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/btmxh/ytmeta/internal/middlewares"
	"github.com/btmxh/ytmeta/internal/services"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func CreateMainRouter(service *services.MetadataService) http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	gzipMode := 0
	if str, ok := os.LookupEnv("GZIP_MODE"); ok {
		var err error
		if gzipMode, err = strconv.Atoi(str); err != nil {
			slog.Warn("Invalid value for GZIP_MODE environment variable", "err", err)
			gzipMode = 0
		}
	}

	router.Use(gzip.Gzip(gzipMode))
	router.Use(middlewares.LogMiddleware())
	router.Use(middlewares.ErrorMiddleware())

	if limit, burst, ok := rateLimitFromEnv(); ok {
		router.Use(middlewares.RateLimitMiddleware(limit, burst))
	}

	router.GET("/health", HealthHandler(service))

	v1 := router.Group("/v1")
	v1.Use(middlewares.MustAuthMiddleware())
	VideosRouter(v1.Group("/video"), service)
	PlaylistsRouter(v1.Group("/playlists"), service)

	return router
}

func rateLimitFromEnv() (rate.Limit, int, bool) {
	str, ok := os.LookupEnv("RATE_LIMIT")
	if !ok {
		return 0, 0, false
	}

	limit, err := strconv.ParseFloat(str, 64)
	if err != nil || limit <= 0 {
		slog.Warn("Invalid value for RATE_LIMIT environment variable", "value", str)
		return 0, 0, false
	}

	burst := int(limit)
	if burst < 1 {
		burst = 1
	}
	if str, ok := os.LookupEnv("RATE_BURST"); ok {
		value, err := strconv.Atoi(str)
		if err != nil || value < 1 {
			slog.Warn("Invalid value for RATE_BURST environment variable", "value", str)
		} else {
			burst = value
		}
	}

	return rate.Limit(limit), burst, true
}

func forceReload(ctx *gin.Context) bool {
	force, _ := strconv.ParseBool(ctx.Query("force_reload"))
	return force
}

package routes

import (
	"errors"
	"net/http"

	"github.com/btmxh/ytmeta/internal/errs"
	"github.com/btmxh/ytmeta/internal/media"
	"github.com/btmxh/ytmeta/internal/services"
	"github.com/gin-gonic/gin"
)

var ErrVideoUnavailable = errors.New("Video not found or unavailable")
var ErrVideoFetchFailed = errors.New("Failed to retrieve video information")

func VideosRouter(g *gin.RouterGroup, service *services.MetadataService) {
	g.GET("/:id", getVideoHandler(service))
}

func getVideoHandler(service *services.MetadataService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		handler := errs.NewGinErrorHandler(ctx, "Video fetch error")

		id := ctx.Param("id")
		if !media.CheckVideoId(id) {
			handler.PublicError(http.StatusUnprocessableEntity, media.ErrInvalidVideoId)
			return
		}

		meta, err := service.GetVideo(ctx.Request.Context(), id, forceReload(ctx))
		if err != nil {
			handler.PrivateError(err)
			if errors.Is(err, media.ErrExtractFailed) {
				handler.PublicError(http.StatusNotFound, ErrVideoUnavailable)
			} else {
				handler.PublicError(http.StatusInternalServerError, ErrVideoFetchFailed)
			}
			return
		}

		ctx.JSON(http.StatusOK, meta)
	}
}

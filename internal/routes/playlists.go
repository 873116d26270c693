package routes

import (
	"errors"
	"net/http"

	"github.com/btmxh/ytmeta/internal/errs"
	"github.com/btmxh/ytmeta/internal/media"
	"github.com/btmxh/ytmeta/internal/services"
	"github.com/gin-gonic/gin"
)

var ErrPlaylistUnavailable = errors.New("Playlist not found or unavailable")
var ErrPlaylistFetchFailed = errors.New("Failed to retrieve playlist information")

func PlaylistsRouter(g *gin.RouterGroup, service *services.MetadataService) {
	g.GET("/:id", getPlaylistHandler(service))
}

func getPlaylistHandler(service *services.MetadataService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		handler := errs.NewGinErrorHandler(ctx, "Playlist fetch error")

		id := ctx.Param("id")
		if !media.CheckPlaylistId(id) {
			handler.PublicError(http.StatusUnprocessableEntity, media.ErrInvalidPlaylistId)
			return
		}

		meta, err := service.GetPlaylist(ctx.Request.Context(), id, forceReload(ctx))
		if err != nil {
			handler.PrivateError(err)
			if errors.Is(err, media.ErrExtractFailed) {
				handler.PublicError(http.StatusNotFound, ErrPlaylistUnavailable)
			} else {
				handler.PublicError(http.StatusInternalServerError, ErrPlaylistFetchFailed)
			}
			return
		}

		ctx.JSON(http.StatusOK, meta)
	}
}

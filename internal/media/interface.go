package media

import (
	"context"
	"errors"
)

var ErrExtractFailed = errors.New("Extraction failed")
var ErrInvalidVideoId = errors.New("Invalid video ID")
var ErrInvalidPlaylistId = errors.New("Invalid playlist ID")

type StreamInfo struct {
	FormatId       string   `json:"format_id"`
	Ext            string   `json:"ext"`
	Url            string   `json:"url"`
	Width          *int     `json:"width"`
	Height         *int     `json:"height"`
	Fps            *float64 `json:"fps"`
	Bitrate        *float64 `json:"bitrate"`
	Filesize       *int64   `json:"filesize"`
	FilesizeApprox *int64   `json:"filesize_approx"`
}

type VideoMetadata struct {
	Id           string       `json:"id"`
	Title        string       `json:"title"`
	Duration     *int         `json:"duration"`
	Uploader     *string      `json:"uploader"`
	ChannelId    *string      `json:"channel_id"`
	VideoFormats []StreamInfo `json:"video_formats"`
	AudioFormat  *StreamInfo  `json:"audio_format"`
}

type PlaylistEntry struct {
	Id        string  `json:"id"`
	Title     string  `json:"title"`
	Duration  *int    `json:"duration"`
	Uploader  *string `json:"uploader"`
	ChannelId *string `json:"channel_id"`
}

type PlaylistMetadata struct {
	Id         string          `json:"id"`
	Title      string          `json:"title"`
	Uploader   *string         `json:"uploader"`
	ChannelId  *string         `json:"channel_id"`
	VideoCount int             `json:"video_count"`
	Videos     []PlaylistEntry `json:"videos"`
}

// Extractor is the narrow interface over the external extraction library.
// Both operations fail with an error wrapping ErrExtractFailed.
type Extractor interface {
	FetchVideo(ctx context.Context, id string) (*VideoMetadata, error)
	FetchPlaylist(ctx context.Context, id string) (*PlaylistMetadata, error)
}

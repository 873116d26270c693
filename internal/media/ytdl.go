package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/wader/goutubedl"
)

// itags served to clients, in response order
var desiredVideoFormatIds = []string{"134", "135", "136", "137", "298", "299"}

const desiredAudioFormatId = "140"

type YtdlExtractor struct{}

func NewYtdlExtractor() *YtdlExtractor {
	return &YtdlExtractor{}
}

// goutubedl's typed Info does not surface per-format stream URLs or
// dimensions, so formats and entries are re-parsed from the raw yt-dlp JSON.
type rawFormat struct {
	FormatId       string   `json:"format_id"`
	Ext            string   `json:"ext"`
	Url            string   `json:"url"`
	Width          *int     `json:"width"`
	Height         *int     `json:"height"`
	Fps            *float64 `json:"fps"`
	Tbr            *float64 `json:"tbr"`
	Filesize       *int64   `json:"filesize"`
	FilesizeApprox *int64   `json:"filesize_approx"`
}

type rawVideoInfo struct {
	Id        string      `json:"id"`
	Title     string      `json:"title"`
	Duration  flexSeconds `json:"duration"`
	Uploader  *string     `json:"uploader"`
	ChannelId *string     `json:"channel_id"`
	Formats   []rawFormat `json:"formats"`
}

type rawPlaylistEntry struct {
	Id         string      `json:"id"`
	Url        string      `json:"url"`
	Title      string      `json:"title"`
	Duration   flexSeconds `json:"duration"`
	Uploader   *string     `json:"uploader"`
	ChannelId  *string     `json:"channel_id"`
	UploaderId *string     `json:"uploader_id"`
}

type rawPlaylistInfo struct {
	Id        string             `json:"id"`
	Title     string             `json:"title"`
	Uploader  *string            `json:"uploader"`
	ChannelId *string            `json:"channel_id"`
	Entries   []rawPlaylistEntry `json:"entries"`
}

// flexSeconds tolerates durations appearing as numbers, numeric strings or
// null in extractor output.
type flexSeconds struct {
	value *int
}

func (s *flexSeconds) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		s.value = nil
		return nil
	}

	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		seconds := int(number)
		s.value = &seconds
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("invalid duration value: %s", data)
	}

	number, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return fmt.Errorf("invalid duration value: %w", err)
	}

	seconds := int(number)
	s.value = &seconds
	return nil
}

func (s flexSeconds) Seconds() *int {
	return s.value
}

func (yt *YtdlExtractor) FetchVideo(ctx context.Context, id string) (*VideoMetadata, error) {
	result, err := goutubedl.New(ctx, videoURL(id).String(), goutubedl.Options{
		Type: goutubedl.TypeSingle,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}

	var info rawVideoInfo
	if err := json.Unmarshal(result.RawJSON, &info); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}

	return videoMetadataFromRaw(id, &info), nil
}

func (yt *YtdlExtractor) FetchPlaylist(ctx context.Context, id string) (*PlaylistMetadata, error) {
	result, err := goutubedl.New(ctx, playlistURL(id).String(), goutubedl.Options{
		Type:         goutubedl.TypePlaylist,
		FlatPlaylist: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}

	var info rawPlaylistInfo
	if err := json.Unmarshal(result.RawJSON, &info); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}

	return playlistMetadataFromRaw(id, &info), nil
}

func streamInfo(f rawFormat) StreamInfo {
	return StreamInfo{
		FormatId:       f.FormatId,
		Ext:            f.Ext,
		Url:            f.Url,
		Width:          f.Width,
		Height:         f.Height,
		Fps:            f.Fps,
		Bitrate:        f.Tbr,
		Filesize:       f.Filesize,
		FilesizeApprox: f.FilesizeApprox,
	}
}

func selectVideoFormats(formats []rawFormat) []StreamInfo {
	indexedById := make(map[string]rawFormat)
	for _, f := range formats {
		if f.FormatId == "" || f.Ext != "mp4" || f.Url == "" {
			continue
		}
		indexedById[f.FormatId] = f
	}

	selected := make([]StreamInfo, 0, len(desiredVideoFormatIds))
	for _, formatId := range desiredVideoFormatIds {
		if f, ok := indexedById[formatId]; ok {
			selected = append(selected, streamInfo(f))
		}
	}

	return selected
}

func selectAudioFormat(formats []rawFormat) *StreamInfo {
	for _, f := range formats {
		if f.FormatId != desiredAudioFormatId || f.Ext != "m4a" || f.Url == "" {
			continue
		}

		info := streamInfo(f)
		return &info
	}

	return nil
}

func videoMetadataFromRaw(requestedId string, info *rawVideoInfo) *VideoMetadata {
	id := info.Id
	if id == "" {
		id = requestedId
	}

	return &VideoMetadata{
		Id:           id,
		Title:        info.Title,
		Duration:     info.Duration.Seconds(),
		Uploader:     info.Uploader,
		ChannelId:    info.ChannelId,
		VideoFormats: selectVideoFormats(info.Formats),
		AudioFormat:  selectAudioFormat(info.Formats),
	}
}

func playlistMetadataFromRaw(requestedId string, info *rawPlaylistInfo) *PlaylistMetadata {
	id := info.Id
	if id == "" {
		id = requestedId
	}

	videos := make([]PlaylistEntry, 0, len(info.Entries))
	seen := make(map[string]struct{})
	for _, entry := range info.Entries {
		entryId := entry.Id
		if entryId == "" {
			entryId = entry.Url
		}
		if entryId == "" {
			continue
		}
		if _, dup := seen[entryId]; dup {
			continue
		}
		seen[entryId] = struct{}{}

		channelId := entry.ChannelId
		if channelId == nil {
			channelId = entry.UploaderId
		}

		videos = append(videos, PlaylistEntry{
			Id:        entryId,
			Title:     entry.Title,
			Duration:  entry.Duration.Seconds(),
			Uploader:  entry.Uploader,
			ChannelId: channelId,
		})
	}

	return &PlaylistMetadata{
		Id:         id,
		Title:      info.Title,
		Uploader:   info.Uploader,
		ChannelId:  info.ChannelId,
		VideoCount: len(videos),
		Videos:     videos,
	}
}

package services

import (
	"context"
	"encoding/json"
	"io"

	watchparty "github.com/watchparty/watchparty-go"
)

// VideosService manages the video catalog, including file transfer.
type VideosService struct {
	client *watchparty.Client
}

// CreateVideoRequest is the request to register a video.
type CreateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
	Visibility  string `json:"visibility,omitempty"`
}

// UpdateVideoRequest carries the mutable video fields.
type UpdateVideoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Visibility  *string `json:"visibility,omitempty"`
}

// List returns a page of videos.
func (s *VideosService) List(ctx context.Context, params ListParams) (watchparty.Page[watchparty.Video], error) {
	raw, err := s.client.GetRaw(ctx, withQuery(watchparty.EndpointVideos, params.query()))
	if err != nil {
		return watchparty.Page[watchparty.Video]{}, err
	}
	return watchparty.TransformPage(raw, func(item json.RawMessage) watchparty.Video {
		return watchparty.TransformVideo(item)
	}), nil
}

// Get returns a video by ID.
func (s *VideosService) Get(ctx context.Context, id string) (watchparty.Video, error) {
	raw, err := s.client.GetRaw(ctx, watchparty.EndpointVideo(id))
	if err != nil {
		return watchparty.Video{}, err
	}
	return watchparty.TransformVideo(raw), nil
}

// Create registers a new video.
func (s *VideosService) Create(ctx context.Context, req CreateVideoRequest) (watchparty.Video, error) {
	raw, err := s.client.PostRaw(ctx, watchparty.EndpointVideos, req)
	if err != nil {
		return watchparty.Video{}, err
	}
	return watchparty.TransformVideo(raw), nil
}

// Update patches an existing video.
func (s *VideosService) Update(ctx context.Context, id string, req UpdateVideoRequest) (watchparty.Video, error) {
	var raw json.RawMessage
	if err := s.client.Patch(ctx, watchparty.EndpointVideo(id), req, &raw); err != nil {
		return watchparty.Video{}, err
	}
	return watchparty.TransformVideo(raw), nil
}

// Delete removes a video.
func (s *VideosService) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, watchparty.EndpointVideo(id), nil)
}

// UploadFile uploads the media file for a video, reporting fractional
// progress through onProgress.
func (s *VideosService) UploadFile(ctx context.Context, id string, file io.Reader, filename string, onProgress watchparty.ProgressFunc) (watchparty.Video, error) {
	raw, err := s.client.Upload(ctx, watchparty.EndpointVideoFile(id), file, filename, nil, onProgress)
	if err != nil {
		return watchparty.Video{}, err
	}
	return watchparty.TransformVideo(raw), nil
}

// DownloadFile streams a video's media file to w.
func (s *VideosService) DownloadFile(ctx context.Context, id string, w io.Writer) error {
	return s.client.Download(ctx, watchparty.EndpointVideoFile(id), w)
}

package platform

import (
	"context"
	"net/http"
)

// Video is an ordered lesson inside a module. ObjectKey and
// ThumbnailKey reference object storage, not literal URLs.
type Video struct {
	VideoID      string `json:"video_id,omitempty"`
	ModuleID     string `json:"module_id,omitempty"`
	Title        string `json:"title"`
	ObjectKey    string `json:"objectKey"`
	ThumbnailKey string `json:"thumbnail_url,omitempty"`
	Duration     string `json:"video_duration"`
	Description  string `json:"video_description"`
	Position     int    `json:"video_position"`
}

// GetVideos lists the videos of a module.
func (c *Client) GetVideos(ctx context.Context, token, moduleID string) ([]Video, error) {
	var env Envelope
	err := c.call(
		c.r(ctx, token).SetBody(map[string]string{"module_id": moduleID}),
		http.MethodPost, "/courses/get/videos", &env,
	)
	if err != nil {
		return nil, err
	}
	return decodeDataSlice[Video](&env)
}

// AddVideo attaches a video to a module.
func (c *Client) AddVideo(ctx context.Context, token, moduleID string, video Video) (*Video, error) {
	var env Envelope
	video.ModuleID = moduleID
	if err := c.call(c.r(ctx, token).SetBody(video), http.MethodPost, "/courses/add/videos", &env); err != nil {
		return nil, err
	}
	var created Video
	if err := decodeData(&env, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateVideo updates an existing video.
func (c *Client) UpdateVideo(ctx context.Context, token, videoID string, video Video) error {
	var env Envelope
	video.VideoID = videoID
	return c.call(c.r(ctx, token).SetBody(video), http.MethodPost, "/courses/update/videos", &env)
}

// DeleteVideo removes a video by id.
func (c *Client) DeleteVideo(ctx context.Context, token, videoID string) error {
	var env Envelope
	return c.call(
		c.r(ctx, token).SetBody(map[string]string{"video_id": videoID}),
		http.MethodPost, "/video/delete", &env,
	)
}

package platform

import (
	"context"
	"net/http"
)

// AssetKind names the binary asset types the platform can issue
// write targets for. Each kind requires its owning identifiers.
type AssetKind string

const (
	AssetCourseThumbnail  AssetKind = "course_thumbnail"
	AssetProductThumbnail AssetKind = "product_thumbnail"
	AssetVideo            AssetKind = "video"
	AssetVideoThumbnail   AssetKind = "video_thumbnail"
	AssetGalleryImage     AssetKind = "product_gallery_image"
)

// OwnerRef carries the identifiers an asset kind requires. Unused
// fields stay empty and are omitted from the request.
type OwnerRef struct {
	CourseID  string `json:"course_id,omitempty"`
	ProductID string `json:"product_id,omitempty"`
	ModuleID  string `json:"module_id,omitempty"`
	VideoID   string `json:"video_id,omitempty"`
}

// UploadTarget pairs a short-lived write URL with the durable object
// key it will produce. Consumed once; the key is only meaningful
// after a successful push to the URL.
type UploadTarget struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type uploadTargetRequest struct {
	AssetKind   AssetKind `json:"asset_kind"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"fileType"`
	OwnerRef
}

// RequestUploadTarget asks the platform for a one-time direct-upload
// target for the given asset kind and owner.
func (c *Client) RequestUploadTarget(ctx context.Context, token string, kind AssetKind, owner OwnerRef, fileName, contentType string) (*UploadTarget, error) {
	var env Envelope
	body := uploadTargetRequest{AssetKind: kind, FileName: fileName, ContentType: contentType, OwnerRef: owner}
	if err := c.call(c.r(ctx, token).SetBody(body), http.MethodPost, "/uploads/request", &env); err != nil {
		return nil, err
	}
	var target UploadTarget
	if err := decodeData(&env, &target); err != nil {
		return nil, err
	}
	if target.UploadURL == "" || target.ObjectKey == "" {
		return nil, &APIError{Message: "incomplete upload target"}
	}
	return &target, nil
}

// PushToTarget uploads raw file bytes directly to the write target
// with the file's content type. The target URL is pre-authorized, so
// no bearer token is attached. Any non-success response is an
// UploadFailedError; the push is never retried.
func (c *Client) PushToTarget(ctx context.Context, target *UploadTarget, contentType string, body []byte) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(body).
		Put(target.UploadURL)
	if err != nil {
		return &UploadFailedError{Body: err.Error()}
	}
	if resp.IsError() {
		return &UploadFailedError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}

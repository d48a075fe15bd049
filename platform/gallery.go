package platform

import (
	"context"
	"net/http"
)

// GalleryImage is a persisted product gallery entry.
type GalleryImage struct {
	ID        string `json:"id,omitempty"`
	ProductID string `json:"product_id"`
	ObjectKey string `json:"object_key"`
	Position  int    `json:"position"`
}

// ListGallery fetches the persisted gallery of a product.
func (c *Client) ListGallery(ctx context.Context, token, productID string) ([]GalleryImage, error) {
	var env Envelope
	err := c.call(
		c.r(ctx, token).SetBody(map[string]string{"product_id": productID}),
		http.MethodPost, "/products/gallery/list", &env,
	)
	if err != nil {
		return nil, err
	}
	return decodeDataSlice[GalleryImage](&env)
}

// SaveGallery confirms a batch of images into the product's
// persisted gallery.
func (c *Client) SaveGallery(ctx context.Context, token, productID string, images []GalleryImage) error {
	var env Envelope
	body := map[string]interface{}{
		"product_id": productID,
		"images":     images,
	}
	return c.call(c.r(ctx, token).SetBody(body), http.MethodPost, "/products/gallery/save", &env)
}

// DeleteGalleryImage removes a persisted gallery image by id.
func (c *Client) DeleteGalleryImage(ctx context.Context, token, imageID string) error {
	var env Envelope
	return c.call(
		c.r(ctx, token).SetBody(map[string]string{"id": imageID}),
		http.MethodPost, "/products/gallery/delete", &env,
	)
}

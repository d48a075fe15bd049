package platform

import (
	"context"
	"net/http"
)

// Product mirrors the platform's product record.
type Product struct {
	ID            string  `json:"id,omitempty"`
	Title         string  `json:"title"`
	Slug          string  `json:"slug"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	SubCategory   string  `json:"sub_category"`
	Price         float64 `json:"price"`
	DiscountPrice float64 `json:"discount_price"`
	IsFree        bool    `json:"is_free"`
	Qty           int     `json:"qty"`
	ThumbnailKey  string  `json:"thumbnail_url,omitempty"`
	Language      string  `json:"language"`
}

// ProductPage is one page of the product collection.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
}

// ListProducts fetches one page of products.
func (c *Client) ListProducts(ctx context.Context, token string, limit, offset int) (*ProductPage, error) {
	var env Envelope
	err := c.call(
		c.r(ctx, token).SetBody(map[string]int{"limit": limit, "offset": offset}),
		http.MethodPost, "/products", &env,
	)
	if err != nil {
		return nil, err
	}
	var page ProductPage
	if err := decodeData(&env, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AddProduct creates a product and returns the stored record.
func (c *Client) AddProduct(ctx context.Context, token string, product Product) (*Product, error) {
	var env Envelope
	if err := c.call(c.r(ctx, token).SetBody(product), http.MethodPost, "/products/add", &env); err != nil {
		return nil, err
	}
	var created Product
	if err := decodeData(&env, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct updates an existing product.
func (c *Client) UpdateProduct(ctx context.Context, token string, product Product) (*Product, error) {
	var env Envelope
	if err := c.call(c.r(ctx, token).SetBody(product), http.MethodPost, "/products/update", &env); err != nil {
		return nil, err
	}
	var updated Product
	if err := decodeData(&env, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a product by id.
func (c *Client) DeleteProduct(ctx context.Context, token, productID string) error {
	var env Envelope
	return c.call(
		c.r(ctx, token).SetBody(map[string]string{"id": productID}),
		http.MethodPost, "/products/delete", &env,
	)
}

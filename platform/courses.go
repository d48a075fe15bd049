package platform

import (
	"context"
	"net/http"
)

// Course mirrors the platform's course record. The thumbnail field
// holds an object-storage key, not a literal URL.
type Course struct {
	ID            string  `json:"id,omitempty"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
	IsFree        bool    `json:"is_free"`
	Instructor    string  `json:"instructor"`
	Category      string  `json:"category"`
	Badge         string  `json:"badge"`
	ThumbnailKey  string  `json:"thumbnail_url"`
}

// GetAllCourses fetches the full course collection.
func (c *Client) GetAllCourses(ctx context.Context, token string) ([]Course, error) {
	var env Envelope
	if err := c.call(c.r(ctx, token), http.MethodGet, "/courses/get/all_courses", &env); err != nil {
		return nil, err
	}
	return decodeDataSlice[Course](&env)
}

// AddCourse creates a course and returns the stored record.
func (c *Client) AddCourse(ctx context.Context, token string, course Course) (*Course, error) {
	var env Envelope
	if err := c.call(c.r(ctx, token).SetBody(course), http.MethodPost, "/courses/add", &env); err != nil {
		return nil, err
	}
	var created Course
	if err := decodeData(&env, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCourse updates an existing course.
func (c *Client) UpdateCourse(ctx context.Context, token string, course Course) (*Course, error) {
	var env Envelope
	if err := c.call(c.r(ctx, token).SetBody(course), http.MethodPost, "/courses/update", &env); err != nil {
		return nil, err
	}
	var updated Course
	if err := decodeData(&env, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCourse removes a course by id.
func (c *Client) DeleteCourse(ctx context.Context, token, courseID string) error {
	var env Envelope
	return c.call(
		c.r(ctx, token).SetBody(map[string]string{"course_id": courseID}),
		http.MethodPost, "/courses/delete", &env,
	)
}

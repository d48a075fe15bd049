package platform

import (
	"context"
	"net/http"
)

// Module is a titled, ordered section of a course.
type Module struct {
	ModuleID string `json:"module_id,omitempty"`
	CourseID string `json:"course_id,omitempty"`
	Title    string `json:"module_title"`
	Position int    `json:"position"`
}

// GetModules lists the modules of a course.
func (c *Client) GetModules(ctx context.Context, token, courseID string) ([]Module, error) {
	var env Envelope
	err := c.call(
		c.r(ctx, token).SetBody(map[string]string{"course_id": courseID}),
		http.MethodPost, "/courses/get/modules", &env,
	)
	if err != nil {
		return nil, err
	}
	return decodeDataSlice[Module](&env)
}

// AddModule appends a module to a course at the given position.
func (c *Client) AddModule(ctx context.Context, token, courseID, title string, position int) (*Module, error) {
	var env Envelope
	body := map[string]interface{}{
		"course_id":    courseID,
		"module_title": title,
		"position":     position,
	}
	if err := c.call(c.r(ctx, token).SetBody(body), http.MethodPost, "/courses/add/modules", &env); err != nil {
		return nil, err
	}
	var created Module
	if err := decodeData(&env, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateModule renames or repositions a module.
func (c *Client) UpdateModule(ctx context.Context, token, moduleID, title string, position int) error {
	var env Envelope
	body := map[string]interface{}{
		"module_id":    moduleID,
		"module_title": title,
		"position":     position,
	}
	return c.call(c.r(ctx, token).SetBody(body), http.MethodPost, "/courses/update/modules", &env)
}

// DeleteModule removes a module by id.
func (c *Client) DeleteModule(ctx context.Context, token, moduleID string) error {
	var env Envelope
	return c.call(
		c.r(ctx, token).SetBody(map[string]string{"module_id": moduleID}),
		http.MethodPost, "/modules/delete", &env,
	)
}

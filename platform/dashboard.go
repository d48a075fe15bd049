package platform

import (
	"context"
	"net/http"
)

// MostPurchasedCourse is part of the dashboard aggregate.
type MostPurchasedCourse struct {
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	PurchaseUserCount int64   `json:"purchase_user_count"`
}

// DashboardData is the aggregate-metrics payload shown on the
// landing screen.
type DashboardData struct {
	TotalStudents            int64               `json:"total_students"`
	TotalCourses             int64               `json:"total_courses"`
	TotalModules             int64               `json:"total_modules"`
	TotalVideos              int64               `json:"total_videos"`
	MostPurchasedCourse      MostPurchasedCourse `json:"most_purchased_course"`
	AveragePurchasePrice     float64             `json:"average_purchase_price"`
	TotalFreeCourses         int64               `json:"total_free_courses"`
	TotalPaidCourses         int64               `json:"total_paid_courses"`
	TotalFreeCoursePurchases int64               `json:"total_free_course_purchases"`
	TotalPaidCoursePurchases int64               `json:"total_paid_course_purchases"`
}

// GetDashboardStats fetches the aggregate metrics.
func (c *Client) GetDashboardStats(ctx context.Context, token string) (*DashboardData, error) {
	var env Envelope
	if err := c.call(c.r(ctx, token), http.MethodGet, "/dashboard", &env); err != nil {
		return nil, err
	}
	var data DashboardData
	if err := decodeData(&env, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

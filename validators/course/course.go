package courseValidator

import (
	"kesharadmin/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CoursePayload is the create/update body for a course. Works for
// both JSON and multipart submissions; multipart may carry a
// "thumbnail" file part resolved by the controller.
type CoursePayload struct {
	ID            string  `json:"id" form:"id"`
	Title         string  `json:"title" form:"title" validate:"required"`
	Description   string  `json:"description" form:"description"`
	Price         float64 `json:"price" form:"price" validate:"gte=0"`
	OriginalPrice float64 `json:"original_price" form:"original_price" validate:"gte=0"`
	IsFree        bool    `json:"is_free" form:"is_free"`
	Instructor    string  `json:"instructor" form:"instructor"`
	Category      string  `json:"category" form:"category"`
	Badge         string  `json:"badge" form:"badge"`
	ThumbnailKey  string  `json:"thumbnail_url" form:"thumbnail_url"`
}

// ModulePayload is the create/update body for a module.
type ModulePayload struct {
	ModuleID string `json:"module_id"`
	CourseID string `json:"course_id"`
	Title    string `json:"module_title" validate:"required"`
	Position int    `json:"position" validate:"gte=0"`
}

// VideoPayload is the create/update body for a video.
type VideoPayload struct {
	VideoID     string `json:"video_id" form:"video_id"`
	ModuleID    string `json:"module_id" form:"module_id"`
	Title       string `json:"title" form:"title" validate:"required"`
	ObjectKey   string `json:"objectKey" form:"objectKey"`
	Thumbnail   string `json:"thumbnail_url" form:"thumbnail_url"`
	Duration    string `json:"video_duration" form:"video_duration"`
	Description string `json:"video_description" form:"video_description"`
	Position    int    `json:"video_position" form:"video_position" validate:"gte=0"`
}

// DeletePayload requires the explicit confirmation every delete
// action carries; without it no upstream request is issued.
type DeletePayload struct {
	ID      string `json:"id" validate:"required"`
	Confirm bool   `json:"confirm"`
}

func fieldErrors(err error) map[string]string {
	out := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			out[fe.Field()] = "Invalid value for " + fe.Field() + "!"
		}
		return out
	}
	out["body"] = err.Error()
	return out
}

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CoursePayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validator middleware
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CoursePayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		if reqData.ID == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"id": "Course id is required!"})
		}
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// DeleteRecord validator middleware shared by course, module, video
// and product deletes.
func DeleteRecord() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(DeletePayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		if !reqData.Confirm {
			return middleware.ValidationErrorResponse(c, map[string]string{"confirm": "Deletion must be confirmed!"})
		}
		c.Locals("validatedDelete", reqData)
		return c.Next()
	}
}

// SaveModule validator middleware for module create/update
func SaveModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ModulePayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		if reqData.ModuleID == "" && reqData.CourseID == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"course_id": "Course id is required!"})
		}
		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// SaveVideo validator middleware for video create/update
func SaveVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(VideoPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		if reqData.VideoID == "" && reqData.ModuleID == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"module_id": "Module id is required!"})
		}
		c.Locals("validatedVideo", reqData)
		return c.Next()
	}
}

package productValidator

import (
	"kesharadmin/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ProductPayload is the create/update body for a product. When slug
// is empty the controller derives one from the title.
type ProductPayload struct {
	ID            string  `json:"id" form:"id"`
	Title         string  `json:"title" form:"title" validate:"required"`
	Slug          string  `json:"slug" form:"slug"`
	Description   string  `json:"description" form:"description"`
	Category      string  `json:"category" form:"category"`
	SubCategory   string  `json:"sub_category" form:"sub_category"`
	Price         float64 `json:"price" form:"price" validate:"gte=0"`
	DiscountPrice float64 `json:"discount_price" form:"discount_price" validate:"gte=0"`
	IsFree        bool    `json:"is_free" form:"is_free"`
	Qty           int     `json:"qty" form:"qty" validate:"gte=0"`
	ThumbnailKey  string  `json:"thumbnail_url" form:"thumbnail_url"`
	Language      string  `json:"language" form:"language"`
}

// PagePayload is the paging body for product listing.
type PagePayload struct {
	Limit  int `json:"limit" validate:"gte=1,lte=100"`
	Offset int `json:"offset" validate:"gte=0"`
}

// GallerySavePayload confirms a product's drafted images upstream.
type GallerySavePayload struct {
	ProductID string `json:"product_id" validate:"required"`
}

// GalleryDeletePayload removes one image, drafted or persisted.
type GalleryDeletePayload struct {
	ProductID string `json:"product_id" validate:"required"`
	ID        string `json:"id" validate:"required"`
	Pending   bool   `json:"pending"`
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

// ListProducts validator middleware. Missing paging defaults to the
// first page of ten.
func ListProducts() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &PagePayload{Limit: 10}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}
		if reqData.Limit == 0 {
			reqData.Limit = 10
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedPage", reqData)
		return c.Next()
	}
}

// CreateProduct validator middleware
func CreateProduct() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProductPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedProduct", reqData)
		return c.Next()
	}
}

// UpdateProduct validator middleware
func UpdateProduct() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProductPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		if reqData.ID == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"id": "Product id is required!"})
		}
		c.Locals("validatedProduct", reqData)
		return c.Next()
	}
}

// SaveGallery validator middleware
func SaveGallery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(GallerySavePayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedGallerySave", reqData)
		return c.Next()
	}
}

// DeleteGalleryImage validator middleware
func DeleteGalleryImage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(GalleryDeletePayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedGalleryDelete", reqData)
		return c.Next()
	}
}

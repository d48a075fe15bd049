package uploadController

import (
	"kesharadmin/middleware"
	"kesharadmin/models"
	"kesharadmin/platform"
	"kesharadmin/uploader"

	"github.com/gofiber/fiber/v2"
)

var client *platform.Client

// Setup wires the platform client. Called once from main.
func Setup(c *platform.Client) {
	client = c
}

var assetKinds = map[string]platform.AssetKind{
	string(platform.AssetCourseThumbnail):  platform.AssetCourseThumbnail,
	string(platform.AssetProductThumbnail): platform.AssetProductThumbnail,
	string(platform.AssetVideo):            platform.AssetVideo,
	string(platform.AssetVideoThumbnail):   platform.AssetVideoThumbnail,
	string(platform.AssetGalleryImage):     platform.AssetGalleryImage,
}

// Direct runs the two-phase upload for an asset whose owner record
// already exists and returns the durable object key. Used by portal
// screens that manage the owning record themselves.
func Direct(c *fiber.Ctx) error {
	token := c.Locals("session").(*models.Session).Token

	kind, ok := assetKinds[c.FormValue("asset_kind")]
	if !ok {
		return middleware.ValidationErrorResponse(c, map[string]string{"asset_kind": "Unknown asset kind!"})
	}
	owner := platform.OwnerRef{
		CourseID:  c.FormValue("course_id"),
		ProductID: c.FormValue("product_id"),
		ModuleID:  c.FormValue("module_id"),
		VideoID:   c.FormValue("video_id"),
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is required!", nil)
	}
	file, err := uploader.ReadMultipart(fileHeader)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded file!", nil)
	}

	key, err := uploader.Direct(c.Context(), client, token, kind, owner, file)
	if err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "File uploaded.", fiber.Map{"objectKey": key})
}

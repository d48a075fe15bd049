package productController

import (
	"log"
	"sort"
	"strconv"
	"strings"

	"kesharadmin/database"
	"kesharadmin/middleware"
	"kesharadmin/models"
	"kesharadmin/platform"
	"kesharadmin/uploader"
	"kesharadmin/utils"
	courseValidator "kesharadmin/validators/course"
	productValidator "kesharadmin/validators/product"

	"github.com/gofiber/fiber/v2"
)

var client *platform.Client

// Setup wires the platform client. Called once from main.
func Setup(c *platform.Client) {
	client = c
}

func sessionToken(c *fiber.Ctx) string {
	return c.Locals("session").(*models.Session).Token
}

// ListProducts fetches one page of products.
func ListProducts(c *fiber.Ctx) error {
	page := c.Locals("validatedPage").(*productValidator.PagePayload)

	result, err := client.ListProducts(c.Context(), sessionToken(c), page.Limit, page.Offset)
	if err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Product list.", result)
}

// CreateProduct creates a product. An empty slug is derived from the
// title. A multipart request may carry a "thumbnail" file, resolved
// after the record exists.
func CreateProduct(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedProduct").(*productValidator.ProductPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	asset, err := thumbnailAsset(c, reqData.ThumbnailKey)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded file!", nil)
	}

	created, err := client.AddProduct(c.Context(), sessionToken(c), payloadToProduct(reqData))
	if err != nil {
		return middleware.FlowErrorResponse(c, err)
	}

	if asset.Pending() {
		key, err := asset.Finalize(c.Context(), client, sessionToken(c), platform.AssetProductThumbnail, platform.OwnerRef{ProductID: created.ID})
		if err != nil {
			log.Printf("Thumbnail upload failed for product %s: %v", created.ID, err)
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Product created but thumbnail upload failed!", created)
		}
		created.ThumbnailKey = key
		if created, err = client.UpdateProduct(c.Context(), sessionToken(c), *created); err != nil {
			return middleware.FlowErrorResponse(c, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Product created successfully!", created)
}

// UpdateProduct updates an existing product, resolving a new
// thumbnail first when one is attached.
func UpdateProduct(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedProduct").(*productValidator.ProductPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	asset, err := thumbnailAsset(c, reqData.ThumbnailKey)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded file!", nil)
	}

	product := payloadToProduct(reqData)
	product.ID = reqData.ID

	key, err := asset.Finalize(c.Context(), client, sessionToken(c), platform.AssetProductThumbnail, platform.OwnerRef{ProductID: product.ID})
	if err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	product.ThumbnailKey = key

	updated, err := client.UpdateProduct(c.Context(), sessionToken(c), product)
	if err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Product updated successfully!", updated)
}

// DeleteProduct removes a product after explicit confirmation. Local
// gallery drafts for the product are discarded alongside.
func DeleteProduct(c *fiber.Ctx) error {
	reqData := c.Locals("validatedDelete").(*courseValidator.DeletePayload)
	if err := client.DeleteProduct(c.Context(), sessionToken(c), reqData.ID); err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	database.Database.Db.Unscoped().Where("product_id = ?", reqData.ID).Delete(&models.GalleryDraft{})
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Product deleted successfully!", nil)
}

// GalleryEntry is one gallery image as shown to the portal: either a
// persisted upstream record or a local draft still awaiting save.
type GalleryEntry struct {
	ID        string `json:"id"`
	ObjectKey string `json:"object_key"`
	Position  int    `json:"position"`
	Pending   bool   `json:"pending"`
}

// ListGallery merges the product's persisted gallery with the local
// drafts. Drafts sort after persisted images.
func ListGallery(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Product id is required!", nil)
	}

	persisted, err := client.ListGallery(c.Context(), sessionToken(c), productID)
	if err != nil {
		return middleware.FlowErrorResponse(c, err)
	}

	var drafts []models.GalleryDraft
	database.Database.Db.Where("product_id = ?", productID).Order("position asc").Find(&drafts)

	entries := make([]GalleryEntry, 0, len(persisted)+len(drafts))
	for _, img := range persisted {
		entries = append(entries, GalleryEntry{ID: img.ID, ObjectKey: img.ObjectKey, Position: img.Position})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Position < entries[j].Position })
	for _, d := range drafts {
		entries = append(entries, GalleryEntry{
			ID:        strconv.FormatUint(uint64(d.ID), 10),
			ObjectKey: d.ObjectKey,
			Position:  d.Position,
			Pending:   true,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Gallery.", entries)
}

// UploadGalleryImage pushes one image to object storage and records
// it as a local draft. Nothing reaches the product's persisted
// gallery until SaveGallery confirms the batch.
func UploadGalleryImage(c *fiber.Ctx) error {
	productID := c.FormValue("product_id")
	if productID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Product id is required!", nil)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Image file is required!", nil)
	}
	file, err := uploader.ReadMultipart(fileHeader)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded file!", nil)
	}

	key, err := uploader.Direct(c.Context(), client, sessionToken(c), platform.AssetGalleryImage, platform.OwnerRef{ProductID: productID}, file)
	if err != nil {
		return middleware.FlowErrorResponse(c, err)
	}

	draft := models.GalleryDraft{
		ProductID: productID,
		ObjectKey: key,
		Position:  nextDraftPosition(productID),
	}
	if err := database.Database.Db.Create(&draft).Error; err != nil {
		log.Printf("Failed to record gallery draft for product %s: %v", productID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record uploaded image!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Image uploaded.", GalleryEntry{
		ID:        strconv.FormatUint(uint64(draft.ID), 10),
		ObjectKey: draft.ObjectKey,
		Position:  draft.Position,
		Pending:   true,
	})
}

// SaveGallery confirms every draft of the product upstream in one
// batch. Drafts are removed locally only after the save succeeds.
func SaveGallery(c *fiber.Ctx) error {
	reqData := c.Locals("validatedGallerySave").(*productValidator.GallerySavePayload)

	var drafts []models.GalleryDraft
	database.Database.Db.Where("product_id = ?", reqData.ProductID).Order("position asc").Find(&drafts)
	if len(drafts) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Nothing to save.", nil)
	}

	images := make([]platform.GalleryImage, 0, len(drafts))
	for _, d := range drafts {
		images = append(images, platform.GalleryImage{
			ProductID: d.ProductID,
			ObjectKey: d.ObjectKey,
			Position:  d.Position,
		})
	}

	if err := client.SaveGallery(c.Context(), sessionToken(c), reqData.ProductID, images); err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	database.Database.Db.Unscoped().Where("product_id = ?", reqData.ProductID).Delete(&models.GalleryDraft{})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Gallery saved successfully!", nil)
}

// DeleteGalleryImage removes one image. A pending draft is a purely
// local delete; a persisted image issues exactly one upstream delete
// and is reported removed only after it succeeds.
func DeleteGalleryImage(c *fiber.Ctx) error {
	reqData := c.Locals("validatedGalleryDelete").(*productValidator.GalleryDeletePayload)

	if reqData.Pending {
		draftID, err := strconv.ParseUint(reqData.ID, 10, 64)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid draft id!", nil)
		}
		res := database.Database.Db.Unscoped().
			Where("id = ? AND product_id = ?", draftID, reqData.ProductID).
			Delete(&models.GalleryDraft{})
		if res.RowsAffected == 0 {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Draft not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Image removed.", nil)
	}

	if err := client.DeleteGalleryImage(c.Context(), sessionToken(c), reqData.ID); err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Image removed.", nil)
}

func nextDraftPosition(productID string) int {
	var max int
	database.Database.Db.Model(&models.GalleryDraft{}).
		Where("product_id = ?", productID).
		Select("COALESCE(MAX(position), -1)").Scan(&max)
	return max + 1
}

func payloadToProduct(p *productValidator.ProductPayload) platform.Product {
	slug := strings.TrimSpace(p.Slug)
	if slug == "" {
		slug = utils.Slugify(p.Title)
	}
	return platform.Product{
		Title:         p.Title,
		Slug:          slug,
		Description:   p.Description,
		Category:      p.Category,
		SubCategory:   p.SubCategory,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		IsFree:        p.IsFree,
		Qty:           p.Qty,
		ThumbnailKey:  utils.NormalizeObjectKey(p.ThumbnailKey),
		Language:      p.Language,
	}
}

func thumbnailAsset(c *fiber.Ctx, existingKey string) (uploader.DeferredAsset, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return uploader.FromKey(utils.NormalizeObjectKey(existingKey)), nil
	}
	fileHeader, err := c.FormFile("thumbnail")
	if err != nil {
		return uploader.FromKey(utils.NormalizeObjectKey(existingKey)), nil
	}
	file, err := uploader.ReadMultipart(fileHeader)
	if err != nil {
		return uploader.DeferredAsset{}, err
	}
	return uploader.FromFile(file), nil
}

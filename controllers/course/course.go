package courseController

import (
	"log"
	"sort"
	"strings"

	"kesharadmin/middleware"
	"kesharadmin/models"
	"kesharadmin/platform"
	"kesharadmin/uploader"
	"kesharadmin/utils"
	courseValidator "kesharadmin/validators/course"

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

// ListCourses fetches the full course collection.
func ListCourses(c *fiber.Ctx) error {
	courses, err := client.GetAllCourses(c.Context(), sessionToken(c))
	if err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course list.", courses)
}

// CreateCourse creates a course. A multipart request may carry a
// "thumbnail" file; the record is created first so the upload target
// can reference its id, then the resulting key is saved back.
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CoursePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	asset, err := thumbnailAsset(c, reqData.ThumbnailKey)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded file!", nil)
	}

	created, err := client.AddCourse(c.Context(), sessionToken(c), payloadToCourse(reqData))
	if err != nil {
		return middleware.FlowErrorResponse(c, err)
	}

	if asset.Pending() {
		key, err := asset.Finalize(c.Context(), client, sessionToken(c), platform.AssetCourseThumbnail, platform.OwnerRef{CourseID: created.ID})
		if err != nil {
			log.Printf("Thumbnail upload failed for course %s: %v", created.ID, err)
			// Record exists without a thumbnail; nothing partial committed.
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Course created but thumbnail upload failed!", created)
		}
		created.ThumbnailKey = key
		if created, err = client.UpdateCourse(c.Context(), sessionToken(c), *created); err != nil {
			return middleware.FlowErrorResponse(c, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", created)
}

// UpdateCourse updates an existing course, resolving a new thumbnail
// first when one is attached.
func UpdateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CoursePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	asset, err := thumbnailAsset(c, reqData.ThumbnailKey)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded file!", nil)
	}

	course := payloadToCourse(reqData)
	course.ID = reqData.ID

	key, err := asset.Finalize(c.Context(), client, sessionToken(c), platform.AssetCourseThumbnail, platform.OwnerRef{CourseID: course.ID})
	if err != nil {
		// Keep the previous key; the record is not touched.
		return middleware.FlowErrorResponse(c, err)
	}
	course.ThumbnailKey = key

	updated, err := client.UpdateCourse(c.Context(), sessionToken(c), course)
	if err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", updated)
}

// DeleteCourse removes a course after explicit confirmation.
func DeleteCourse(c *fiber.Ctx) error {
	reqData := c.Locals("validatedDelete").(*courseValidator.DeletePayload)
	if err := client.DeleteCourse(c.Context(), sessionToken(c), reqData.ID); err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// ModuleWithVideos is one curriculum entry.
type ModuleWithVideos struct {
	platform.Module
	Videos []platform.Video `json:"videos"`
}

// GetCurriculum lists a course's modules and fans out one video
// request per module concurrently. A failed module degrades to an
// empty video list; the failures are reported alongside rather than
// aborting the whole fetch.
func GetCurriculum(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	if courseID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course id is required!", nil)
	}
	token := sessionToken(c)

	modules, err := client.GetModules(c.Context(), token, courseID)
	if err != nil {
		return middleware.FlowErrorResponse(c, err)
	}

	moduleIDs := make([]string, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ModuleID)
	}

	ctx := c.Context()
	fetched := utils.FetchAll(moduleIDs, func(moduleID string) ([]platform.Video, error) {
		return client.GetVideos(ctx, token, moduleID)
	})

	degraded := make([]string, 0)
	entries := make([]ModuleWithVideos, 0, len(modules))
	for _, m := range modules {
		videos := fetched.Results[m.ModuleID]
		if err := fetched.Failures[m.ModuleID]; err != nil {
			log.Printf("Video fetch failed for module %s: %v", m.ModuleID, err)
			degraded = append(degraded, m.ModuleID)
			videos = []platform.Video{}
		}
		sort.SliceStable(videos, func(i, j int) bool { return videos[i].Position < videos[j].Position })
		entries = append(entries, ModuleWithVideos{Module: m, Videos: videos})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Position < entries[j].Position })

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Curriculum.", fiber.Map{
		"modules":          entries,
		"degraded_modules": degraded,
	})
}

// SaveModule creates or updates a module depending on whether an id
// is present.
func SaveModule(c *fiber.Ctx) error {
	reqData := c.Locals("validatedModule").(*courseValidator.ModulePayload)
	token := sessionToken(c)

	if reqData.ModuleID != "" {
		if err := client.UpdateModule(c.Context(), token, reqData.ModuleID, reqData.Title, reqData.Position); err != nil {
			return middleware.FlowErrorResponse(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", nil)
	}

	created, err := client.AddModule(c.Context(), token, reqData.CourseID, reqData.Title, reqData.Position)
	if err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", created)
}

// DeleteModule removes a module after explicit confirmation.
func DeleteModule(c *fiber.Ctx) error {
	reqData := c.Locals("validatedDelete").(*courseValidator.DeletePayload)
	if err := client.DeleteModule(c.Context(), sessionToken(c), reqData.ID); err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// ListVideos lists a single module's videos sorted by position.
func ListVideos(c *fiber.Ctx) error {
	reqData := new(struct {
		ModuleID string `json:"module_id"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.ModuleID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module id is required!", nil)
	}

	videos, err := client.GetVideos(c.Context(), sessionToken(c), reqData.ModuleID)
	if err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	sort.SliceStable(videos, func(i, j int) bool { return videos[i].Position < videos[j].Position })
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video list.", videos)
}

// SaveVideo creates or updates a video. A multipart request may carry
// "video" and "thumbnail" files; for a new video the record is
// created first so the upload target can reference its id.
func SaveVideo(c *fiber.Ctx) error {
	reqData := c.Locals("validatedVideo").(*courseValidator.VideoPayload)
	token := sessionToken(c)

	videoAsset, err := fileAsset(c, "video", reqData.ObjectKey)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded file!", nil)
	}
	thumbAsset, err := fileAsset(c, "thumbnail", reqData.Thumbnail)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded file!", nil)
	}

	video := platform.Video{
		Title:        reqData.Title,
		ObjectKey:    utils.NormalizeObjectKey(reqData.ObjectKey),
		ThumbnailKey: utils.NormalizeObjectKey(reqData.Thumbnail),
		Duration:     reqData.Duration,
		Description:  reqData.Description,
		Position:     reqData.Position,
	}

	if reqData.VideoID == "" {
		created, err := client.AddVideo(c.Context(), token, reqData.ModuleID, video)
		if err != nil {
			return middleware.FlowErrorResponse(c, err)
		}
		if !videoAsset.Pending() && !thumbAsset.Pending() {
			return middleware.JsonResponse(c, fiber.StatusCreated, true, "Video created successfully!", created)
		}
		owner := platform.OwnerRef{ModuleID: reqData.ModuleID, VideoID: created.VideoID}
		if err := resolveVideoAssets(c, token, owner, created, videoAsset, thumbAsset); err != nil {
			log.Printf("Asset upload failed for video %s: %v", created.VideoID, err)
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Video created but file upload failed!", created)
		}
		if err := client.UpdateVideo(c.Context(), token, created.VideoID, *created); err != nil {
			return middleware.FlowErrorResponse(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Video created successfully!", created)
	}

	video.VideoID = reqData.VideoID
	owner := platform.OwnerRef{ModuleID: reqData.ModuleID, VideoID: reqData.VideoID}
	if err := resolveVideoAssets(c, token, owner, &video, videoAsset, thumbAsset); err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	if err := client.UpdateVideo(c.Context(), token, reqData.VideoID, video); err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video updated successfully!", video)
}

// DeleteVideo removes a video after explicit confirmation.
func DeleteVideo(c *fiber.Ctx) error {
	reqData := c.Locals("validatedDelete").(*courseValidator.DeletePayload)
	if err := client.DeleteVideo(c.Context(), sessionToken(c), reqData.ID); err != nil {
		return middleware.FlowErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video deleted successfully!", nil)
}

func resolveVideoAssets(c *fiber.Ctx, token string, owner platform.OwnerRef, video *platform.Video, videoAsset, thumbAsset uploader.DeferredAsset) error {
	key, err := videoAsset.Finalize(c.Context(), client, token, platform.AssetVideo, owner)
	if err != nil {
		return err
	}
	video.ObjectKey = key

	key, err = thumbAsset.Finalize(c.Context(), client, token, platform.AssetVideoThumbnail, owner)
	if err != nil {
		return err
	}
	video.ThumbnailKey = key
	return nil
}

func payloadToCourse(p *courseValidator.CoursePayload) platform.Course {
	return platform.Course{
		Title:         p.Title,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		IsFree:        p.IsFree,
		Instructor:    p.Instructor,
		Category:      p.Category,
		Badge:         p.Badge,
		ThumbnailKey:  utils.NormalizeObjectKey(p.ThumbnailKey),
	}
}

// thumbnailAsset builds the deferred asset for a request: the
// attached "thumbnail" file when the request is multipart, otherwise
// whatever key the payload already carries.
func thumbnailAsset(c *fiber.Ctx, existingKey string) (uploader.DeferredAsset, error) {
	return fileAsset(c, "thumbnail", existingKey)
}

func fileAsset(c *fiber.Ctx, field, existingKey string) (uploader.DeferredAsset, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return uploader.FromKey(utils.NormalizeObjectKey(existingKey)), nil
	}
	fileHeader, err := c.FormFile(field)
	if err != nil {
		// No file part; fall back to the key.
		return uploader.FromKey(utils.NormalizeObjectKey(existingKey)), nil
	}
	file, err := uploader.ReadMultipart(fileHeader)
	if err != nil {
		return uploader.DeferredAsset{}, err
	}
	return uploader.FromFile(file), nil
}

package models

import "gorm.io/gorm"

// GalleryDraft is a product gallery image that has been pushed to
// object storage but not yet confirmed into the product's persisted
// gallery. Discarding a draft is a local operation only; saving the
// gallery promotes all drafts for the product upstream and removes
// them here.
type GalleryDraft struct {
	gorm.Model
	ProductID string `gorm:"size:64;index;not null" json:"product_id"`
	ObjectKey string `gorm:"size:512;not null" json:"object_key"`
	Position  int    `gorm:"default:0" json:"position"`
}

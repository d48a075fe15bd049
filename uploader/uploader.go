// Package uploader implements the two-phase direct upload: request a
// one-time write target from the platform, push the raw bytes to it,
// and hand back the durable object key for the owning record.
package uploader

import (
	"context"

	"kesharadmin/platform"
)

// LocalFile is a file held in memory before upload.
type LocalFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// TargetAPI is the slice of the platform client uploads need.
type TargetAPI interface {
	RequestUploadTarget(ctx context.Context, token string, kind platform.AssetKind, owner platform.OwnerRef, fileName, contentType string) (*platform.UploadTarget, error)
	PushToTarget(ctx context.Context, target *platform.UploadTarget, contentType string, body []byte) error
}

// DeferredAsset is either an already-uploaded asset carrying its
// object key, or a local file waiting for its owner record to exist.
// Finalize resolves it right before the owner's create/update call,
// which removes the create-vs-edit branching from every form handler.
type DeferredAsset struct {
	key  string
	file *LocalFile
}

// FromKey wraps an existing object key; Finalize is a no-op.
func FromKey(key string) DeferredAsset {
	return DeferredAsset{key: key}
}

// FromFile defers a local file until Finalize.
func FromFile(f LocalFile) DeferredAsset {
	return DeferredAsset{file: &f}
}

// Pending reports whether bytes still need to be pushed.
func (a DeferredAsset) Pending() bool { return a.file != nil }

// Key returns the object key for an already-resolved asset.
func (a DeferredAsset) Key() string { return a.key }

// Finalize resolves the asset for the given kind and owner. The owner
// record must already exist; its identifiers are required by the
// target request. On any failure the previous key is returned
// untouched, so callers never commit a partial upload.
func (a DeferredAsset) Finalize(ctx context.Context, api TargetAPI, token string, kind platform.AssetKind, owner platform.OwnerRef) (string, error) {
	if a.file == nil {
		return a.key, nil
	}
	key, err := Direct(ctx, api, token, kind, owner, *a.file)
	if err != nil {
		return a.key, err
	}
	return key, nil
}

// Direct runs both phases for a file whose owner already exists and
// returns the durable object key.
func Direct(ctx context.Context, api TargetAPI, token string, kind platform.AssetKind, owner platform.OwnerRef, file LocalFile) (string, error) {
	target, err := api.RequestUploadTarget(ctx, token, kind, owner, file.Name, file.ContentType)
	if err != nil {
		return "", err
	}
	if err := api.PushToTarget(ctx, target, file.ContentType, file.Data); err != nil {
		return "", err
	}
	return target.ObjectKey, nil
}

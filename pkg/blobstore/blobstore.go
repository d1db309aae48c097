package blobstore

import "context"

// Object describes a stored blob: a public URL clients can render and the
// storage key needed to delete it later. The URL is opaque to the rest of
// the system.
type Object struct {
	URL        string
	StorageKey string
}

// BlobStore is the boundary to image storage. The core touches it only at
// post creation and deletion.
type BlobStore interface {
	Store(ctx context.Context, data []byte, contentType, folder string) (*Object, error)
	Delete(ctx context.Context, storageKey string) error
}

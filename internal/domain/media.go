package domain

import "context"

// MediaAsset descriptor of a file stored on the media host
type MediaAsset struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// UploadFile raw file content received from a multipart request
type UploadFile struct {
	Name    string
	Content []byte
}

// MediaStore offloads binary content to a third-party media host. Callers
// treat upload as an opaque bytes-to-descriptor mapping with a matching
// delete.
type MediaStore interface {
	Upload(ctx context.Context, folder string, file *UploadFile) (*MediaAsset, error)
	Delete(ctx context.Context, publicID string) error
}

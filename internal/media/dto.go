package media

// CreateUploadRequest describes a file the client wants to upload.
type CreateUploadRequest struct {
	FileName    string  `json:"file_name" validate:"required,max=255"`
	ContentType string  `json:"content_type" validate:"required,max=100"`
	SizeBytes   int64   `json:"size_bytes" validate:"required,gt=0,lte=52428800"`
	AltText     *string `json:"alt_text" validate:"omitempty,max=500"`
}

// UpdateMediaRequest updates mutable metadata.
type UpdateMediaRequest struct {
	FileName *string `json:"file_name" validate:"omitempty,max=255"`
	AltText  *string `json:"alt_text" validate:"omitempty,max=500"`
}

// UploadResponse pairs the created row with the presigned upload URL.
type UploadResponse struct {
	Media     Media  `json:"media"`
	UploadURL string `json:"upload_url"`
}

// DownloadResponse carries a presigned download URL.
type DownloadResponse struct {
	DownloadURL string `json:"download_url"`
}

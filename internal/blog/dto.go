package blog

// CreatePostRequest carries fields for a new post.
type CreatePostRequest struct {
	Title        string `json:"title" validate:"required,min=2,max=200"`
	Excerpt      string `json:"excerpt" validate:"max=500"`
	Body         string `json:"body" validate:"required"`
	Status       string `json:"status" validate:"omitempty,oneof=draft published"`
	CoverMediaID *int64 `json:"cover_media_id"`
}

// UpdatePostRequest carries partial updates for a post.
type UpdatePostRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=2,max=200"`
	Excerpt      *string `json:"excerpt" validate:"omitempty,max=500"`
	Body         *string `json:"body"`
	Status       *string `json:"status" validate:"omitempty,oneof=draft published"`
	CoverMediaID *int64  `json:"cover_media_id"`
}

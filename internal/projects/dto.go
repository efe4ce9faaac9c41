package projects

// CreateProjectRequest carries fields for a new project.
type CreateProjectRequest struct {
	Title        string  `json:"title" validate:"required,min=2,max=200"`
	Summary      string  `json:"summary" validate:"required,max=500"`
	Description  string  `json:"description" validate:"required"`
	Location     *string `json:"location" validate:"omitempty,max=200"`
	Status       string  `json:"status" validate:"omitempty,oneof=draft published"`
	CoverMediaID *int64  `json:"cover_media_id"`
	SortOrder    int     `json:"sort_order"`
}

// UpdateProjectRequest carries partial updates for a project.
type UpdateProjectRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=2,max=200"`
	Summary      *string `json:"summary" validate:"omitempty,max=500"`
	Description  *string `json:"description"`
	Location     *string `json:"location" validate:"omitempty,max=200"`
	Status       *string `json:"status" validate:"omitempty,oneof=draft published"`
	CoverMediaID *int64  `json:"cover_media_id"`
	SortOrder    *int    `json:"sort_order"`
}

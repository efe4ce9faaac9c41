package ai

// BlogDraftRequest asks for a generated blog post draft.
type BlogDraftRequest struct {
	Topic string `json:"topic" validate:"required,min=3,max=300"`
	Tone  string `json:"tone" validate:"omitempty,max=100"`
}

// ProjectDescriptionRequest asks for polished portfolio copy.
type ProjectDescriptionRequest struct {
	Title string `json:"title" validate:"required,min=2,max=200"`
	Notes string `json:"notes" validate:"required,min=10,max=5000"`
}

// ContactSummaryRequest asks for a summary of an inbound inquiry.
type ContactSummaryRequest struct {
	ContactID int64 `json:"contact_id" validate:"required,gt=0"`
}

// GenerationResponse carries generated text back to the admin UI.
type GenerationResponse struct {
	Text string `json:"text"`
}

package contacts

// SubmitContactRequest is the public contact form payload. Website is a
// honeypot: humans never see the field, bots fill it in.
type SubmitContactRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=100"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Subject *string `json:"subject" validate:"omitempty,max=200"`
	Message string  `json:"message" validate:"required,min=10,max=5000"`
	Website string  `json:"website" validate:"omitempty"`
}

// UpdateContactRequest lets staff move an inquiry through the pipeline.
type UpdateContactRequest struct {
	Status string `json:"status" validate:"required,oneof=new in_review closed"`
}

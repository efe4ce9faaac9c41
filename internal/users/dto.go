package users

type CreateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Name     string  `json:"name" validate:"required,max=200"`
	Password string  `json:"password" validate:"required,min=10"`
	Role     string  `json:"role" validate:"required,oneof=admin staff partner"`
	Company  *string `json:"company,omitempty" validate:"omitempty,max=200"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin staff partner"`
	Company  *string `json:"company,omitempty" validate:"omitempty,max=200"`
	IsActive *bool   `json:"is_active,omitempty"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=10"`
}

package request

type UpdateProfileRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=80"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

package request

type RegisterRequest struct {
	Username        string  `json:"username" validate:"required,min=3,max=80"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=8"`
	ConfirmPassword string  `json:"confirm_password" validate:"required,eqfield=Password"`
	Phone           *string `json:"phone,omitempty" validate:"omitempty,min=10,max=20"`
}

type LoginRequest struct {
	// Username menerima username atau email
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

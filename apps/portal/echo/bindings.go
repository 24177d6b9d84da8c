package echoportal

import "github.com/go-playground/validator/v10"

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (r LoginRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

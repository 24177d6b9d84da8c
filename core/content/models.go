package content

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

// Assignment is scoped to a single section.
type Assignment struct {
	ID      int    `json:"id" db:"id"`
	Text    string `json:"text" db:"text"`
	Section string `json:"section" db:"section"`
}

// Notification is academy-wide.
type Notification struct {
	ID    int    `json:"id" db:"id"`
	Title string `json:"title" db:"title"`
	Text  string `json:"text" db:"text"`
}

type NewAssignment struct {
	Text    string `json:"text" form:"text" validate:"required"`
	Section string `json:"section" form:"section"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Text = core.CleanString(na.Text)
	na.Section = core.CleanString(na.Section, true /* lower */)
	if na.Section == "" {
		na.Section = user.DefaultSection
	}
	return validate.Struct(na)
}

type NewNotification struct {
	Title string `json:"title" form:"title" validate:"required"`
	Text  string `json:"text" form:"text" validate:"required"`
}

func (nn *NewNotification) Validate(validate *validator.Validate) error {
	nn.Title = core.CleanString(nn.Title)
	nn.Text = core.CleanString(nn.Text)
	return validate.Struct(nn)
}

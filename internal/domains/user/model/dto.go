package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// UpdateUserTypeRequest changes the caller's role.
type UpdateUserTypeRequest struct {
	UserType string `json:"user_type" binding:"required"`
}

func (r UpdateUserTypeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserType,
			validation.Required.Error("user_type is required"),
			validation.In(UserTypeVisitor, UserTypeMerchant, UserTypeAdmin).
				Error("user_type must be visitor, merchant or admin"),
		),
	)
}

// UpdateProfileRequest sets the caller's directory location and slug.
// Both are required; the detail page URL is built from them.
type UpdateProfileRequest struct {
	Location string `json:"location" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Location,
			validation.Required.Error("location is required"),
			validation.Length(1, 120),
		),
		validation.Field(&r.Slug,
			validation.Required.Error("slug is required"),
			validation.Length(1, 120),
			validation.Match(slugPattern).Error("slug may contain only a-z, 0-9 and hyphens"),
		),
	)
}

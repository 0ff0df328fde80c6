package model

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidUserType = errors.New("invalid user type")
)

package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrStudentNotFound    = errors.New("student not found")
	ErrStudentNotLinked   = errors.New("no linked student found")
	ErrSetupDone          = errors.New("name setup already completed")
	ErrModuleNotFound     = errors.New("module not found")
	ErrInvalidAmount      = errors.New("xp amount must be positive")
	ErrAlreadyCompleted   = errors.New("module already completed")
	ErrProgressNotFound   = errors.New("progress record not found")
	ErrInvalidArgument    = errors.New("invalid argument")
)

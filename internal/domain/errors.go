package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAdminNotConfigured   = errors.New("admin password is not configured")
	ErrLicenseNotFound      = errors.New("license code not found")
	ErrLicenseExpired       = errors.New("license code expired")
	ErrLicenseBound         = errors.New("license code already used on another device")
	ErrDuplicateLicenseCode = errors.New("license code already exists")
	ErrInvalidBatch         = errors.New("count and durationDays must be positive")
	ErrBatchTooLarge        = errors.New("license batch exceeds maximum size")
	ErrEmptyOCRText         = errors.New("ocr text is empty")
	ErrInvalidActivation    = errors.New("code and deviceId must be non-empty")
)

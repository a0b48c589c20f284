package service

import "errors"

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrEmptyReport     = errors.New("report must contain at least one answer")
)

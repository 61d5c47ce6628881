package model

import "errors"

var (
	// ErrNetwork marks transport and HTTP status failures.
	ErrNetwork = errors.New("network error")

	// ErrDecode marks a response payload that could not be parsed.
	ErrDecode = errors.New("decode error")

	// ErrThumbnail marks a per-item thumbnail failure. It is never shown
	// to the user.
	ErrThumbnail = errors.New("thumbnail failed")
)

package model

// ThumbnailState tracks the lifecycle of one thumbnail fetch.
type ThumbnailState int

const (
	// ThumbnailPending means the fetch has been issued and not resolved.
	ThumbnailPending ThumbnailState = iota

	// ThumbnailDone means image data was delivered.
	ThumbnailDone

	// ThumbnailCancelled means the owning slot gave up on the fetch.
	ThumbnailCancelled

	// ThumbnailFailed means the fetch or decode failed.
	ThumbnailFailed
)

// String returns a short name for logs and tests.
func (s ThumbnailState) String() string {
	switch s {
	case ThumbnailDone:
		return "done"
	case ThumbnailCancelled:
		return "cancelled"
	case ThumbnailFailed:
		return "failed"
	default:
		return "pending"
	}
}

// IsFinished reports whether the state is terminal.
func (s ThumbnailState) IsFinished() bool {
	return s != ThumbnailPending
}

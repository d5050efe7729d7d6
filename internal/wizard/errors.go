package wizard

import "errors"

var (
	// ErrInvalidURL indicates the submitted URL is empty or not a TikTok
	// video URL. Rejected client-side before any network call.
	ErrInvalidURL = errors.New("a valid TikTok URL is required")
	// ErrTitleRequired indicates an upload was attempted without a title.
	ErrTitleRequired = errors.New("a title is required")
	// ErrStepOrder indicates an operation was attempted out of sequence.
	ErrStepOrder = errors.New("operation not valid for the current step")
)

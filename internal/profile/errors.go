package profile

import "errors"

var (
	// ErrInvalidProfile is returned when profile data cannot be decoded.
	ErrInvalidProfile = errors.New("profile: invalid ICC profile")

	// ErrUnsupportedProfile is returned for profiles that cannot act as an
	// RGB device stage (gray, CMYK, device links, named colors).
	ErrUnsupportedProfile = errors.New("profile: unsupported profile")

	// ErrSamplePoints is returned when an abstract profile grid size is
	// outside [MinPoints, MaxPoints].
	ErrSamplePoints = errors.New("profile: sample points out of range")

	// ErrUnsupportedIntent is returned for rendering intents other than
	// perceptual.
	ErrUnsupportedIntent = errors.New("profile: unsupported rendering intent")

	// ErrChain is returned when a profile list cannot form a transform.
	ErrChain = errors.New("profile: invalid profile chain")

	// ErrNonFinite is returned when an adjustment parameter is NaN or infinite.
	ErrNonFinite = errors.New("profile: non-finite adjustment")
)

package identicon

import "github.com/pkg/errors"

// The errors returned by the package are wrapped with context;
// use errors.Is to test for one of these.
var (
	// ErrInvalidInput is returned for a missing, short or non hexadecimal hash
	// and for options out of their valid range.
	ErrInvalidInput = errors.New("identicon: invalid input")

	// ErrUnsupportedFormat is returned for an output format outside the supported set.
	ErrUnsupportedFormat = errors.New("identicon: unsupported format")

	// ErrEncoding reports a broken internal invariant while encoding the image.
	ErrEncoding = errors.New("identicon: encoding failure")
)

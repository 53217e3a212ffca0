package netcodec

import "errors"

// Sentinel failures. Encoding a well-formed value is total;
// ErrMalformedVariables is returned when encoding or normalizing a net
// that is not well-formed, and every other error below can only surface
// while decoding untrusted bytes.
var (
	ErrTruncated          = errors.New("netcodec: truncated input")
	ErrUnknownTag         = errors.New("netcodec: unknown tag")
	ErrOddVariableCount   = errors.New("netcodec: odd variable occurrence count")
	ErrMalformedVariables = errors.New("netcodec: a variable name occurs other than exactly twice")
	ErrWiringViolation    = errors.New("netcodec: wiring selects impossible partner")
	ErrBookKeyDisorder    = errors.New("netcodec: book keys not strictly ascending")
	ErrBadWidth           = errors.New("netcodec: bit width out of range")
)

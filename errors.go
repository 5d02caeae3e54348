package huffpack

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when compression is requested on zero-length
// input.  No tree can be built for an empty alphabet.
var ErrEmptyInput = errors.New("huffpack: empty input")

// ErrCodeTooLong is returned when the Huffman tree is deeper than the longest
// representable code.
var ErrCodeTooLong = fmt.Errorf("huffpack: Huffman code longer than %d bits", maxBitsPerCode)

// ErrMalformedArtifact matches every *MalformedArtifactError under errors.Is.
var ErrMalformedArtifact = errors.New("huffpack: malformed artifact")

// ErrCorruptData matches every *CorruptDataError under errors.Is.
var ErrCorruptData = errors.New("huffpack: corrupt data")

// MalformedArtifactError reports artifact bytes that cannot be parsed, or
// whose declared sizes are inconsistent with each other.
type MalformedArtifactError struct {
	Reason string
}

// Error fulfills the error interface.
func (err *MalformedArtifactError) Error() string {
	return "huffpack: malformed artifact: " + err.Reason
}

// Is makes errors.Is(err, ErrMalformedArtifact) work.
func (err *MalformedArtifactError) Is(target error) bool {
	return target == ErrMalformedArtifact
}

func malformedf(format string, args ...interface{}) error {
	return &MalformedArtifactError{Reason: fmt.Sprintf(format, args...)}
}

// CorruptDataError reports a bit payload that does not decompose into valid
// codes within its declared bit length.
type CorruptDataError struct {
	// Offset is the bit position at which decoding failed.
	Offset uint64

	Reason string
}

// Error fulfills the error interface.
func (err *CorruptDataError) Error() string {
	return fmt.Sprintf("huffpack: corrupt data at bit %d: %s", err.Offset, err.Reason)
}

// Is makes errors.Is(err, ErrCorruptData) work.
func (err *CorruptDataError) Is(target error) bool {
	return target == ErrCorruptData
}

var (
	_ error = (*MalformedArtifactError)(nil)
	_ error = (*CorruptDataError)(nil)
)

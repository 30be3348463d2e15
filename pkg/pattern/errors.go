package pattern

import "fmt"

// UnsupportedFormatError reports a file extension that maps to no known
// haptic authoring format
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported haptic format %q (want .haptic, .ahap or .haps)", e.Ext)
}

// ParseError reports a document that is structurally invalid for its claimed
// format. Field holds the dotted path of the missing or malformed field.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse haptic document: field %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("parse haptic document: missing required field %s", e.Field)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

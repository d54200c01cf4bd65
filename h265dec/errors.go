package h265dec

import "fmt"

// IDTooLargeError is returned when a parameter set identifier exceeds the
// maximum value of its namespace.
type IDTooLargeError struct {
	Name  string
	Value uint32
	Max   uint32
}

func (e IDTooLargeError) Error() string {
	return fmt.Sprintf("%s is %d, greater than maximum %d", e.Name, e.Value, e.Max)
}

// FieldValueTooLargeError is returned when a parsed field has a value too
// large for a subsequent calculation to proceed safely.
type FieldValueTooLargeError struct {
	Name  string
	Value uint64
}

func (e FieldValueTooLargeError) Error() string {
	return fmt.Sprintf("%s value %d too large", e.Name, e.Value)
}

// UnimplementedError is returned when a recognised but not yet supported
// part of the H.265 syntax is encountered. This is a deliberate known-gap
// signal rather than a parse failure.
type UnimplementedError struct {
	Name string
}

func (e UnimplementedError) Error() string {
	return fmt.Sprintf("%s parsing is unimplemented", e.Name)
}

// InvalidReferenceIndexError is returned when a short-term reference picture
// set predicts from an index that does not address a previously parsed set.
type InvalidReferenceIndexError struct {
	Index int
	Count int
}

func (e InvalidReferenceIndexError) Error() string {
	return fmt.Sprintf("reference picture set index %d out of range, have %d sets", e.Index, e.Count)
}

// MissingGeneralProfileError is returned by profile accessors when the
// profile_tier_level structure was parsed without a general profile. A
// conforming SPS always carries one, but the absence must not panic.
type MissingGeneralProfileError struct{}

func (e MissingGeneralProfileError) Error() string {
	return "profile_tier_level has no general profile"
}

package h265dec

// Maximum identifier values per parameter set namespace, sections 7.4.2.1
// and 7.4.3.3.1 of ITU-T H.265.
const (
	maxVideoParamSetID = 15
	maxSeqParamSetID   = 15
	maxPicParamSetID   = 63
)

// VideoParamSetID identifies a video parameter set. Values are bounded at
// construction; the zero value is the valid identifier 0.
type VideoParamSetID struct {
	v uint8
}

// NewVideoParamSetID validates and returns a video parameter set identifier.
func NewVideoParamSetID(id uint32) (VideoParamSetID, error) {
	if id > maxVideoParamSetID {
		return VideoParamSetID{}, IDTooLargeError{Name: "sps_video_parameter_set_id", Value: id, Max: maxVideoParamSetID}
	}
	return VideoParamSetID{v: uint8(id)}, nil
}

// Value returns the identifier's numeric value.
func (id VideoParamSetID) Value() uint8 { return id.v }

// Equal reports whether two identifiers are the same value.
func (id VideoParamSetID) Equal(o VideoParamSetID) bool { return id.v == o.v }

// SeqParamSetID identifies a sequence parameter set. Values are bounded at
// construction; the zero value is the valid identifier 0.
type SeqParamSetID struct {
	v uint8
}

// NewSeqParamSetID validates and returns a sequence parameter set identifier.
func NewSeqParamSetID(id uint32) (SeqParamSetID, error) {
	if id > maxSeqParamSetID {
		return SeqParamSetID{}, IDTooLargeError{Name: "sps_seq_parameter_set_id", Value: id, Max: maxSeqParamSetID}
	}
	return SeqParamSetID{v: uint8(id)}, nil
}

// Value returns the identifier's numeric value.
func (id SeqParamSetID) Value() uint8 { return id.v }

// Equal reports whether two identifiers are the same value.
func (id SeqParamSetID) Equal(o SeqParamSetID) bool { return id.v == o.v }

// PicParamSetID identifies a picture parameter set. Values are bounded at
// construction; the zero value is the valid identifier 0.
type PicParamSetID struct {
	v uint8
}

// NewPicParamSetID validates and returns a picture parameter set identifier.
func NewPicParamSetID(id uint32) (PicParamSetID, error) {
	if id > maxPicParamSetID {
		return PicParamSetID{}, IDTooLargeError{Name: "pps_pic_parameter_set_id", Value: id, Max: maxPicParamSetID}
	}
	return PicParamSetID{v: uint8(id)}, nil
}

// Value returns the identifier's numeric value.
func (id PicParamSetID) Value() uint8 { return id.v }

// Equal reports whether two identifiers are the same value.
func (id PicParamSetID) Equal(o PicParamSetID) bool { return id.v == o.v }

package h265dec

import (
	"fmt"

	"github.com/ausocean/hevc/h265dec/bits"
)

// UnknownSeqParamSetIDError is returned when a picture parameter set refers
// to a sequence parameter set that has not been seen.
type UnknownSeqParamSetIDError struct {
	ID SeqParamSetID
}

func (e UnknownSeqParamSetIDError) Error() string {
	return fmt.Sprintf("pps refers to unknown sps with id %d", e.ID.Value())
}

// PicParameterSet is a parsed H.265 picture parameter set, section 7.3.2.3
// of ITU-T H.265. Only the leading identifier fields are represented.
type PicParameterSet struct {
	PicParameterSetID PicParamSetID
	SeqParameterSetID SeqParamSetID
}

// ParsePicParameterSet parses a picture parameter set from the given RBSP
// data, resolving the SPS reference against ctx. The body of the PPS beyond
// the identifiers is not yet supported and yields an UnimplementedError.
func ParsePicParameterSet(ctx *Context, rbsp []byte) (*PicParameterSet, error) {
	r := newFieldReader(bits.NewReader(rbsp))

	ppsID := r.readUe("pps_pic_parameter_set_id")
	spsID := r.readUe("pps_seq_parameter_set_id")
	if err := r.err(); err != nil {
		return nil, err
	}

	p := &PicParameterSet{}
	var err error
	if p.PicParameterSetID, err = NewPicParamSetID(ppsID); err != nil {
		return nil, err
	}
	if p.SeqParameterSetID, err = NewSeqParamSetID(spsID); err != nil {
		return nil, err
	}
	if ctx.SeqParamSet(p.SeqParameterSetID) == nil {
		return nil, UnknownSeqParamSetIDError{ID: p.SeqParameterSetID}
	}

	return nil, UnimplementedError{Name: "pic_parameter_set"}
}

package h265dec

// Context accumulates the parameter sets seen so far in a stream so that
// later parameter sets and slice headers can resolve references by
// identifier. A parameter set with the same identifier as an earlier one
// replaces it. Context is not safe for concurrent use.
type Context struct {
	seqParamSets map[uint8]*SeqParameterSet
	picParamSets map[uint8]*PicParameterSet
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{
		seqParamSets: make(map[uint8]*SeqParameterSet),
		picParamSets: make(map[uint8]*PicParameterSet),
	}
}

// PutSeqParamSet stores s, replacing any SPS with the same identifier.
func (c *Context) PutSeqParamSet(s *SeqParameterSet) {
	c.seqParamSets[s.ID().Value()] = s
}

// SeqParamSet returns the stored SPS with the given identifier, or nil.
func (c *Context) SeqParamSet(id SeqParamSetID) *SeqParameterSet {
	return c.seqParamSets[id.Value()]
}

// PutPicParamSet stores p, replacing any PPS with the same identifier.
func (c *Context) PutPicParamSet(p *PicParameterSet) {
	c.picParamSets[p.PicParameterSetID.Value()] = p
}

// PicParamSet returns the stored PPS with the given identifier, or nil.
func (c *Context) PicParamSet(id PicParamSetID) *PicParameterSet {
	return c.picParamSets[id.Value()]
}

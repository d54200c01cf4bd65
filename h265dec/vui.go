package h265dec

// aspectRatioExtendedSAR is the aspect_ratio_idc value indicating that an
// explicit sample aspect ratio follows, table E.1 of ITU-T H.265.
const aspectRatioExtendedSAR = 255

// sampleAspectRatios maps aspect_ratio_idc values 1 to 16 to the sample
// aspect ratios of table E.1.
var sampleAspectRatios = map[uint8][2]uint16{
	1:  {1, 1},
	2:  {12, 11},
	3:  {10, 11},
	4:  {16, 11},
	5:  {40, 33},
	6:  {24, 11},
	7:  {20, 11},
	8:  {32, 11},
	9:  {80, 33},
	10: {18, 11},
	11: {15, 11},
	12: {64, 33},
	13: {160, 99},
	14: {4, 3},
	15: {3, 2},
	16: {2, 1},
}

// AspectRatioInfo holds the aspect ratio information of annex E. SARWidth
// and SARHeight are only meaningful when IDC is aspectRatioExtendedSAR.
type AspectRatioInfo struct {
	IDC       uint8
	SARWidth  uint16
	SARHeight uint16
}

// Ratio returns the sample aspect ratio as (width, height). The second
// return is false when the ratio is unspecified, which covers idc 0, the
// reserved idc range and an extended SAR with either component zero.
func (a *AspectRatioInfo) Ratio() (uint16, uint16, bool) {
	if a.IDC == aspectRatioExtendedSAR {
		if a.SARWidth == 0 || a.SARHeight == 0 {
			return 0, 0, false
		}
		return a.SARWidth, a.SARHeight, true
	}
	if sar, ok := sampleAspectRatios[a.IDC]; ok {
		return sar[0], sar[1], true
	}
	return 0, 0, false
}

func parseAspectRatioInfo(r *fieldReader) (*AspectRatioInfo, error) {
	if !r.readFlag("aspect_ratio_info_present_flag") {
		return nil, r.err()
	}
	a := &AspectRatioInfo{IDC: uint8(r.readBits(8, "aspect_ratio_idc"))}
	if a.IDC == aspectRatioExtendedSAR {
		a.SARWidth = uint16(r.readBits(16, "sar_width"))
		a.SARHeight = uint16(r.readBits(16, "sar_height"))
	}
	return a, r.err()
}

// Overscan describes the overscan_info of annex E.
type Overscan uint8

// Overscan values. Unspecified covers the absent case.
const (
	OverscanUnspecified Overscan = iota
	OverscanAppropriate
	OverscanInappropriate
)

func parseOverscan(r *fieldReader) (Overscan, error) {
	if !r.readFlag("overscan_info_present_flag") {
		return OverscanUnspecified, r.err()
	}
	if r.readFlag("overscan_appropriate_flag") {
		return OverscanAppropriate, r.err()
	}
	return OverscanInappropriate, r.err()
}

// VideoFormat is the video_format value of table E.2. Values 6 and 7 are
// reserved and carried through as is.
type VideoFormat uint8

// Video formats from table E.2.
const (
	VideoFormatComponent VideoFormat = iota
	VideoFormatPAL
	VideoFormatNTSC
	VideoFormatSECAM
	VideoFormatMAC
	VideoFormatUnspecified
)

// ColourDescription holds the optional colour description of the video
// signal type, annex E. The three fields use the code points of tables E.3,
// E.4 and E.5.
type ColourDescription struct {
	ColourPrimaries         uint8
	TransferCharacteristics uint8
	MatrixCoeffs            uint8
}

// VideoSignalType holds the video signal type information of annex E.
type VideoSignalType struct {
	Format            VideoFormat
	FullRange         bool
	ColourDescription *ColourDescription
}

func parseVideoSignalType(r *fieldReader) (*VideoSignalType, error) {
	if !r.readFlag("video_signal_type_present_flag") {
		return nil, r.err()
	}
	v := &VideoSignalType{
		Format:    VideoFormat(r.readBits(3, "video_format")),
		FullRange: r.readFlag("video_full_range_flag"),
	}
	if r.readFlag("colour_description_present_flag") {
		v.ColourDescription = &ColourDescription{
			ColourPrimaries:         uint8(r.readBits(8, "colour_primaries")),
			TransferCharacteristics: uint8(r.readBits(8, "transfer_characteristics")),
			MatrixCoeffs:            uint8(r.readBits(8, "matrix_coeffs")),
		}
	}
	return v, r.err()
}

// ChromaLocInfo holds the chroma sample location types for the top and
// bottom fields.
type ChromaLocInfo struct {
	TopField    uint32
	BottomField uint32
}

func parseChromaLocInfo(r *fieldReader) (*ChromaLocInfo, error) {
	if !r.readFlag("chroma_loc_info_present_flag") {
		return nil, r.err()
	}
	c := &ChromaLocInfo{
		TopField:    r.readUe("chroma_sample_loc_type_top_field"),
		BottomField: r.readUe("chroma_sample_loc_type_bottom_field"),
	}
	return c, r.err()
}

// SubPicHRDParams holds the sub-picture HRD parameters of section E.2.2,
// including the cpb_size_du_scale field that the syntax places after the
// bit rate and CPB size scales.
type SubPicHRDParams struct {
	TickDivisorMinus2                      uint8
	DuCpbRemovalDelayIncrementLengthMinus1 uint8
	SubPicCpbParamsInPicTimingSEI          bool
	DpbOutputDelayDuLengthMinus1           uint8
	CpbSizeDuScale                         uint8
}

// HRDCommonInfParameters holds the fields of the HRD common information
// that are only present when NAL or VCL HRD parameters are signalled.
type HRDCommonInfParameters struct {
	SubPicHRDParams                    *SubPicHRDParams
	BitRateScale                       uint8
	CpbSizeScale                       uint8
	InitialCpbRemovalDelayLengthMinus1 uint8
	AuCpbRemovalDelayLengthMinus1      uint8
	DpbOutputDelayLengthMinus1         uint8
}

func parseHRDCommonInfParameters(r *fieldReader) (*HRDCommonInfParameters, error) {
	p := &HRDCommonInfParameters{}
	if r.readFlag("sub_pic_hrd_params_present_flag") {
		p.SubPicHRDParams = &SubPicHRDParams{
			TickDivisorMinus2:                      uint8(r.readBits(8, "tick_divisor_minus2")),
			DuCpbRemovalDelayIncrementLengthMinus1: uint8(r.readBits(5, "du_cpb_removal_delay_increment_length_minus1")),
			SubPicCpbParamsInPicTimingSEI:          r.readFlag("sub_pic_cpb_params_in_pic_timing_sei_flag"),
			DpbOutputDelayDuLengthMinus1:           uint8(r.readBits(5, "dpb_output_delay_du_length_minus1")),
		}
	}
	p.BitRateScale = uint8(r.readBits(4, "bit_rate_scale"))
	p.CpbSizeScale = uint8(r.readBits(4, "cpb_size_scale"))
	if p.SubPicHRDParams != nil {
		p.SubPicHRDParams.CpbSizeDuScale = uint8(r.readBits(4, "cpb_size_du_scale"))
	}
	p.InitialCpbRemovalDelayLengthMinus1 = uint8(r.readBits(5, "initial_cpb_removal_delay_length_minus1"))
	p.AuCpbRemovalDelayLengthMinus1 = uint8(r.readBits(5, "au_cpb_removal_delay_length_minus1"))
	p.DpbOutputDelayLengthMinus1 = uint8(r.readBits(5, "dpb_output_delay_length_minus1"))
	return p, r.err()
}

// HRDCommonInf is the common information part of the hrd_parameters syntax.
// Parameters is present only when NAL or VCL HRD parameters are signalled.
type HRDCommonInf struct {
	NalHRDPresent bool
	VclHRDPresent bool
	Parameters    *HRDCommonInfParameters
}

func parseHRDCommonInf(r *fieldReader) (*HRDCommonInf, error) {
	c := &HRDCommonInf{
		NalHRDPresent: r.readFlag("nal_hrd_parameters_present_flag"),
		VclHRDPresent: r.readFlag("vcl_hrd_parameters_present_flag"),
	}
	if c.NalHRDPresent || c.VclHRDPresent {
		p, err := parseHRDCommonInfParameters(r)
		if err != nil {
			return nil, err
		}
		c.Parameters = p
	}
	return c, r.err()
}

// SubLayerSubPicHRDParams holds the decoding-unit CPB fields present in a
// sub-layer HRD parameter entry when sub-picture HRD parameters are in use.
type SubLayerSubPicHRDParams struct {
	CpbSizeDuValueMinus1 uint32
	BitRateDuValueMinus1 uint32
}

// SubLayerHRDParameters is one entry of the sub_layer_hrd_parameters syntax,
// section E.2.3. One entry exists per CPB specification.
type SubLayerHRDParameters struct {
	BitRateValueMinus1 uint32
	CpbSizeValueMinus1 uint32
	SubPicHRDParams    *SubLayerSubPicHRDParams
	Cbr                bool
}

func parseSubLayerHRDParameters(r *fieldReader, subPicPresent bool) (SubLayerHRDParameters, error) {
	p := SubLayerHRDParameters{
		BitRateValueMinus1: r.readUe("bit_rate_value_minus1[i]"),
		CpbSizeValueMinus1: r.readUe("cpb_size_value_minus1[i]"),
	}
	if subPicPresent {
		p.SubPicHRDParams = &SubLayerSubPicHRDParams{
			CpbSizeDuValueMinus1: r.readUe("cpb_size_du_value_minus1[i]"),
			BitRateDuValueMinus1: r.readUe("bit_rate_du_value_minus1[i]"),
		}
	}
	p.Cbr = r.readFlag("cbr_flag[i]")
	return p, r.err()
}

// LayerHRDParameters holds the per-sub-layer portion of the hrd_parameters
// syntax. Field validity follows the conditional syntax:
// FixedPicRateWithinCvs is inferred true when FixedPicRateGeneral is set,
// ElementalDurationInTcMinus1 is valid only when FixedPicRateWithinCvs,
// LowDelayHRD only when !FixedPicRateWithinCvs, and CpbCntMinus1 is zero
// when LowDelayHRD is set.
type LayerHRDParameters struct {
	FixedPicRateGeneral         bool
	FixedPicRateWithinCvs       bool
	ElementalDurationInTcMinus1 uint32
	LowDelayHRD                 bool
	CpbCntMinus1                uint32
	NalHRDParameters            []SubLayerHRDParameters
	VclHRDParameters            []SubLayerHRDParameters
}

func parseLayerHRDParameters(r *fieldReader, nalPresent, vclPresent, subPicPresent bool) (LayerHRDParameters, error) {
	var p LayerHRDParameters
	p.FixedPicRateGeneral = r.readFlag("fixed_pic_rate_general_flag")
	if p.FixedPicRateGeneral {
		// Inferred equal to 1 when not present, section E.3.2.
		p.FixedPicRateWithinCvs = true
	} else {
		p.FixedPicRateWithinCvs = r.readFlag("fixed_pic_rate_within_cvs_flag")
	}
	if p.FixedPicRateWithinCvs {
		p.ElementalDurationInTcMinus1 = r.readUe("elemental_duration_in_tc_minus1")
	} else {
		p.LowDelayHRD = r.readFlag("low_delay_hrd_flag")
	}
	if !p.LowDelayHRD {
		p.CpbCntMinus1 = r.readUe("cpb_cnt_minus1")
	}
	if err := r.err(); err != nil {
		return p, err
	}

	if nalPresent {
		p.NalHRDParameters = make([]SubLayerHRDParameters, 0, p.CpbCntMinus1+1)
		for i := uint32(0); i <= p.CpbCntMinus1; i++ {
			s, err := parseSubLayerHRDParameters(r, subPicPresent)
			if err != nil {
				return p, err
			}
			p.NalHRDParameters = append(p.NalHRDParameters, s)
		}
	}
	if vclPresent {
		p.VclHRDParameters = make([]SubLayerHRDParameters, 0, p.CpbCntMinus1+1)
		for i := uint32(0); i <= p.CpbCntMinus1; i++ {
			s, err := parseSubLayerHRDParameters(r, subPicPresent)
			if err != nil {
				return p, err
			}
			p.VclHRDParameters = append(p.VclHRDParameters, s)
		}
	}
	return p, r.err()
}

// HRDParameters is the hrd_parameters structure of section E.2.2. Common is
// nil when the caller signals that the common information is absent. Layers
// holds one entry per temporal sub-layer.
type HRDParameters struct {
	Common *HRDCommonInf
	Layers []LayerHRDParameters
}

func parseHRDParameters(r *fieldReader, commonInfPresent bool, maxNumSubLayersMinus1 uint8) (*HRDParameters, error) {
	if !r.readFlag("hrd_parameters_present_flag") {
		return nil, r.err()
	}
	h := &HRDParameters{}
	var nalPresent, vclPresent, subPicPresent bool
	if commonInfPresent {
		c, err := parseHRDCommonInf(r)
		if err != nil {
			return nil, err
		}
		h.Common = c
		nalPresent = c.NalHRDPresent
		vclPresent = c.VclHRDPresent
		subPicPresent = c.Parameters != nil && c.Parameters.SubPicHRDParams != nil
	}
	h.Layers = make([]LayerHRDParameters, 0, maxNumSubLayersMinus1+1)
	for i := uint8(0); i <= maxNumSubLayersMinus1; i++ {
		l, err := parseLayerHRDParameters(r, nalPresent, vclPresent, subPicPresent)
		if err != nil {
			return nil, err
		}
		h.Layers = append(h.Layers, l)
	}
	return h, r.err()
}

// TimingInfo holds the VUI timing information, including the optional HRD
// parameters that the syntax nests inside it.
type TimingInfo struct {
	NumUnitsInTick           uint32
	TimeScale                uint32
	NumTicksPocDiffOneMinus1 *uint32
	HRDParameters            *HRDParameters
}

func parseTimingInfo(r *fieldReader, maxNumSubLayersMinus1 uint8) (*TimingInfo, error) {
	if !r.readFlag("vui_timing_info_present_flag") {
		return nil, r.err()
	}
	t := &TimingInfo{
		NumUnitsInTick: uint32(r.readBits(32, "vui_num_units_in_tick")),
		TimeScale:      uint32(r.readBits(32, "vui_time_scale")),
	}
	if r.readFlag("vui_poc_proportional_to_timing_flag") {
		n := r.readUe("vui_num_ticks_poc_diff_one_minus1")
		t.NumTicksPocDiffOneMinus1 = &n
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	// The HRD common information is always present at this nesting level,
	// section E.2.1.
	h, err := parseHRDParameters(r, true, maxNumSubLayersMinus1)
	if err != nil {
		return nil, err
	}
	t.HRDParameters = h
	return t, r.err()
}

// BitstreamRestrictions holds the VUI bitstream restriction fields.
type BitstreamRestrictions struct {
	TilesFixedStructure       bool
	MVOverPicBoundaries       bool
	RestrictedRefPicLists     bool
	MinSpatialSegmentationIDC uint32
	MaxBytesPerPicDenom       uint32
	MaxBitsPerMinCuDenom      uint32
	Log2MaxMvLengthHorizontal uint32
	Log2MaxMvLengthVertical   uint32
}

func parseBitstreamRestrictions(r *fieldReader) (*BitstreamRestrictions, error) {
	if !r.readFlag("bitstream_restriction_flag") {
		return nil, r.err()
	}
	b := &BitstreamRestrictions{
		TilesFixedStructure:       r.readFlag("tiles_fixed_structure_flag"),
		MVOverPicBoundaries:       r.readFlag("motion_vectors_over_pic_boundaries_flag"),
		RestrictedRefPicLists:     r.readFlag("restricted_ref_pic_lists_flag"),
		MinSpatialSegmentationIDC: r.readUe("min_spatial_segmentation_idc"),
		MaxBytesPerPicDenom:       r.readUe("max_bytes_per_pic_denom"),
		MaxBitsPerMinCuDenom:      r.readUe("max_bits_per_min_cu_denom"),
		Log2MaxMvLengthHorizontal: r.readUe("log2_max_mv_length_horizontal"),
		Log2MaxMvLengthVertical:   r.readUe("log2_max_mv_length_vertical"),
	}
	return b, r.err()
}

// VUIParameters is the vui_parameters structure of annex E. Pointer fields
// are nil when the corresponding presence flag was unset.
type VUIParameters struct {
	AspectRatioInfo       *AspectRatioInfo
	Overscan              Overscan
	VideoSignalType       *VideoSignalType
	ChromaLocInfo         *ChromaLocInfo
	NeutralChroma         bool
	FieldSeq              bool
	FrameFieldInfoPresent bool
	DefaultDisplayWindow  *Window
	TimingInfo            *TimingInfo
	BitstreamRestrictions *BitstreamRestrictions
}

func parseVUIParameters(r *fieldReader, maxNumSubLayersMinus1 uint8) (*VUIParameters, error) {
	v := &VUIParameters{}
	var err error
	if v.AspectRatioInfo, err = parseAspectRatioInfo(r); err != nil {
		return nil, err
	}
	if v.Overscan, err = parseOverscan(r); err != nil {
		return nil, err
	}
	if v.VideoSignalType, err = parseVideoSignalType(r); err != nil {
		return nil, err
	}
	if v.ChromaLocInfo, err = parseChromaLocInfo(r); err != nil {
		return nil, err
	}
	v.NeutralChroma = r.readFlag("neutral_chroma_indication_flag")
	v.FieldSeq = r.readFlag("field_seq_flag")
	v.FrameFieldInfoPresent = r.readFlag("frame_field_info_present_flag")
	if v.DefaultDisplayWindow, err = parseWindow(r, "default_display_window_flag"); err != nil {
		return nil, err
	}
	if v.TimingInfo, err = parseTimingInfo(r, maxNumSubLayersMinus1); err != nil {
		return nil, err
	}
	if v.BitstreamRestrictions, err = parseBitstreamRestrictions(r); err != nil {
		return nil, err
	}
	return v, r.err()
}

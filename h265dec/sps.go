/*
NAME
  sps.go

DESCRIPTION
  sps.go provides parsing of H.265 sequence parameter sets from RBSP data,
  as specified in section 7.3.2.2 of ITU-T H.265.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package h265dec provides parsing of H.265/HEVC parameter set NAL units
// from RBSP byte buffers, i.e. NAL payloads with emulation-prevention bytes
// already removed and without the two-byte NAL header.
package h265dec

import (
	"github.com/pkg/errors"

	"github.com/ausocean/hevc/h265dec/bits"
)

// ChromaFormat is the chroma sampling structure signalled by
// chroma_format_idc, table 6.1 of ITU-T H.265. Values above 3 are invalid
// but preserved so callers can report them.
type ChromaFormat uint32

// Chroma formats from table 6.1.
const (
	ChromaFormatMonochrome ChromaFormat = iota
	ChromaFormat420
	ChromaFormat422
	ChromaFormat444
)

// Valid reports whether the chroma format is one defined by table 6.1.
func (c ChromaFormat) Valid() bool {
	return c <= ChromaFormat444
}

// ChromaInfo holds the chroma format and the separate colour plane flag,
// which is only present in the syntax when the format is 4:4:4.
type ChromaInfo struct {
	Format              ChromaFormat
	SeparateColourPlane bool
}

func parseChromaInfo(r *fieldReader) (ChromaInfo, error) {
	c := ChromaInfo{Format: ChromaFormat(r.readUe("chroma_format_idc"))}
	if c.Format == ChromaFormat444 {
		c.SeparateColourPlane = r.readFlag("separate_colour_plane_flag")
	}
	return c, r.err()
}

// Window is a rectangular region given as offsets from the picture edges, in
// units that depend on context: chroma units for the conformance window and
// luma units for the VUI default display window.
type Window struct {
	LeftOffset   uint32
	RightOffset  uint32
	TopOffset    uint32
	BottomOffset uint32
}

// parseWindow reads the presence flag named by label and, when set, the four
// window offsets. A nil result means the window was absent.
func parseWindow(r *fieldReader, label string) (*Window, error) {
	if !r.readFlag(label) {
		return nil, r.err()
	}
	w := &Window{
		LeftOffset:   r.readUe("win_left_offset"),
		RightOffset:  r.readUe("win_right_offset"),
		TopOffset:    r.readUe("win_top_offset"),
		BottomOffset: r.readUe("win_bottom_offset"),
	}
	return w, r.err()
}

// LayerInfo holds the decoded picture buffer requirements for one temporal
// sub-layer.
type LayerInfo struct {
	MaxDecPicBufferingMinus1 uint32
	MaxNumReorderPics        uint32
	MaxLatencyIncreasePlus1  uint32
}

// parseLayerInfos reads the sub-layer ordering information. When the
// per-sub-layer presence flag is unset a single entry applies to all
// sub-layers.
func parseLayerInfos(r *fieldReader, maxSubLayersMinus1 uint8) ([]LayerInfo, error) {
	if err := validateMaxNumSubLayersMinus1(maxSubLayersMinus1); err != nil {
		return nil, err
	}
	n := 1
	if r.readFlag("sps_sub_layer_ordering_info_present_flag") {
		n = int(maxSubLayersMinus1) + 1
	}
	layers := make([]LayerInfo, 0, n)
	for i := 0; i < n; i++ {
		layers = append(layers, LayerInfo{
			MaxDecPicBufferingMinus1: r.readUe("sps_max_dec_pic_buffering_minus1[i]"),
			MaxNumReorderPics:        r.readUe("sps_max_num_reorder_pics[i]"),
			MaxLatencyIncreasePlus1:  r.readUe("sps_max_latency_increase_plus1[i]"),
		})
	}
	return layers, r.err()
}

// ScalingList records that scaling lists are enabled. The list data itself
// is validated and consumed but not retained. DataPresent reports whether
// explicit scaling list data was carried in the SPS.
type ScalingList struct {
	DataPresent bool
}

func parseScalingList(r *fieldReader) (*ScalingList, error) {
	if !r.readFlag("scaling_list_enabled_flag") {
		return nil, r.err()
	}
	s := &ScalingList{DataPresent: r.readFlag("sps_scaling_list_data_present_flag")}
	if !s.DataPresent {
		return s, r.err()
	}
	// scaling_list_data, section 7.3.4. Size 3 lists exist only for matrix
	// ids 0 and 3.
	for sizeID := 0; sizeID < 4; sizeID++ {
		step := 1
		if sizeID == 3 {
			step = 3
		}
		for matrixID := 0; matrixID < 6; matrixID += step {
			if !r.readFlag("scaling_list_pred_mode_flag[sizeId][matrixId]") {
				r.readUe("scaling_list_pred_matrix_id_delta[sizeId][matrixId]")
				continue
			}
			coefNum := 1 << (4 + (sizeID << 1))
			if coefNum > 64 {
				coefNum = 64
			}
			if sizeID > 1 {
				r.readSe("scaling_list_dc_coef_minus8[sizeId-2][matrixId]")
			}
			for i := 0; i < coefNum; i++ {
				r.readSe("scaling_list_delta_coef")
			}
		}
	}
	return s, r.err()
}

// PCM holds the PCM sample coding parameters, present when PCM coding is
// enabled.
type PCM struct {
	SampleBitDepthLumaMinus1          uint8
	SampleBitDepthChromaMinus1        uint8
	Log2MinLumaCodingBlockSizeMinus3  uint32
	Log2DiffMaxMinLumaCodingBlockSize uint32
	LoopFilterDisabled                bool
}

func parsePCM(r *fieldReader) (*PCM, error) {
	if !r.readFlag("pcm_enabled_flag") {
		return nil, r.err()
	}
	p := &PCM{
		SampleBitDepthLumaMinus1:          uint8(r.readBits(4, "pcm_sample_bit_depth_luma_minus1")),
		SampleBitDepthChromaMinus1:        uint8(r.readBits(4, "pcm_sample_bit_depth_chroma_minus1")),
		Log2MinLumaCodingBlockSizeMinus3:  r.readUe("log2_min_pcm_luma_coding_block_size_minus3"),
		Log2DiffMaxMinLumaCodingBlockSize: r.readUe("log2_diff_max_min_pcm_luma_coding_block_size"),
		LoopFilterDisabled:                r.readFlag("pcm_loop_filter_disabled_flag"),
	}
	return p, r.err()
}

// LongTermRefPic is one entry of the long-term reference picture list
// carried in the SPS.
type LongTermRefPic struct {
	PocLsbSps          uint32
	UsedByCurrPicLtSps uint32
}

// parseLongTermRefPics returns nil when long-term reference pictures are not
// present.
func parseLongTermRefPics(r *fieldReader) ([]LongTermRefPic, error) {
	if !r.readFlag("long_term_ref_pics_present_flag") {
		return nil, r.err()
	}
	n := r.readUe("num_long_term_ref_pics_sps")
	if err := r.err(); err != nil || n == 0 {
		return nil, err
	}
	pics := make([]LongTermRefPic, 0, n)
	for i := uint32(0); i < n; i++ {
		pics = append(pics, LongTermRefPic{
			PocLsbSps:          r.readUe("lt_ref_pic_poc_lsb_sps[i]"),
			UsedByCurrPicLtSps: r.readUe("used_by_curr_pic_lt_sps_flag[i]"),
		})
	}
	return pics, r.err()
}

// SpsExtension records that the SPS extension flags were present. The
// extension payloads themselves are not supported: any of the four defined
// extensions yields an UnimplementedError. Trailing extension data signalled
// by the 4-bit field is consumed and discarded.
type SpsExtension struct{}

func parseSpsExtension(r *fieldReader, br *bits.Reader) (*SpsExtension, error) {
	if !r.readFlag("sps_extension_present_flag") {
		return nil, r.err()
	}
	rangeExt := r.readFlag("sps_range_extension_flag")
	multilayerExt := r.readFlag("sps_multilayer_extension_flag")
	threeDExt := r.readFlag("sps_3d_extension_flag")
	sccExt := r.readFlag("sps_scc_extension_flag")
	ext4 := r.readBits(4, "sps_extension_4bits")
	if err := r.err(); err != nil {
		return nil, err
	}
	switch {
	case rangeExt:
		return nil, UnimplementedError{Name: "sps_range_extension"}
	case multilayerExt:
		return nil, UnimplementedError{Name: "sps_multilayer_extension"}
	case threeDExt:
		return nil, UnimplementedError{Name: "sps_3d_extension"}
	case sccExt:
		return nil, UnimplementedError{Name: "sps_scc_extension"}
	}
	if ext4 != 0 {
		for br.HasMoreData() {
			r.readFlag("sps_extension_data_flag")
		}
	}
	return &SpsExtension{}, r.err()
}

// SeqParameterSet is a parsed H.265 sequence parameter set, section 7.3.2.2
// of ITU-T H.265. Pointer and slice fields are nil when the corresponding
// presence flag in the bitstream was unset.
type SeqParameterSet struct {
	VideoParameterSetID                  VideoParamSetID
	MaxSubLayersMinus1                   uint8
	TemporalIDNesting                    bool
	ProfileTierLevel                     ProfileTierLevel
	SeqParameterSetID                    SeqParamSetID
	ChromaInfo                           ChromaInfo
	PicWidthInLumaSamples                uint32
	PicHeightInLumaSamples               uint32
	ConformanceWindow                    *Window
	BitDepthLumaMinus8                   uint32
	BitDepthChromaMinus8                 uint32
	Log2MaxPicOrderCntLsbMinus4          uint32
	SubLayerOrderingInfo                 []LayerInfo
	Log2MinLumaCodingBlockSizeMinus3     uint32
	Log2DiffMaxMinLumaCodingBlockSize    uint32
	Log2MinLumaTransformBlockSizeMinus2  uint32
	Log2DiffMaxMinLumaTransformBlockSize uint32
	MaxTransformHierarchyDepthInter      uint32
	MaxTransformHierarchyDepthIntra      uint32
	ScalingList                          *ScalingList
	AmpEnabled                           bool
	SampleAdaptiveOffsetEnabled          bool
	PCM                                  *PCM
	ShortTermRefPicSets                  []ShortTermRefPicSet
	LongTermRefPics                      []LongTermRefPic
	TemporalMvpEnabled                   bool
	StrongIntraSmoothingEnabled          bool
	VUIParameters                        *VUIParameters
	SpsExtension                         *SpsExtension
}

// ParseSeqParameterSet parses a sequence parameter set from the given RBSP
// data. The data must not include the NAL unit header. After the SPS syntax
// is consumed only the RBSP trailing bits may remain; anything else is an
// error.
func ParseSeqParameterSet(rbsp []byte) (*SeqParameterSet, error) {
	br := bits.NewReader(rbsp)
	r := newFieldReader(br)

	s := &SeqParameterSet{}
	vpsID := uint32(r.readBits(4, "sps_video_parameter_set_id"))
	s.MaxSubLayersMinus1 = uint8(r.readBits(3, "sps_max_sub_layers_minus1"))
	s.TemporalIDNesting = r.readFlag("sps_temporal_id_nesting_flag")
	if err := r.err(); err != nil {
		return nil, err
	}
	var err error
	if s.VideoParameterSetID, err = NewVideoParamSetID(vpsID); err != nil {
		return nil, err
	}

	if s.ProfileTierLevel, err = parseProfileTierLevel(r, true, s.MaxSubLayersMinus1); err != nil {
		return nil, errors.Wrap(err, "could not parse profile_tier_level")
	}

	spsID := r.readUe("sps_seq_parameter_set_id")
	if err = r.err(); err != nil {
		return nil, err
	}
	if s.SeqParameterSetID, err = NewSeqParamSetID(spsID); err != nil {
		return nil, err
	}

	if s.ChromaInfo, err = parseChromaInfo(r); err != nil {
		return nil, err
	}
	s.PicWidthInLumaSamples = r.readUe("pic_width_in_luma_samples")
	s.PicHeightInLumaSamples = r.readUe("pic_height_in_luma_samples")
	if s.ConformanceWindow, err = parseWindow(r, "conformance_window_flag"); err != nil {
		return nil, err
	}
	s.BitDepthLumaMinus8 = r.readUe("bit_depth_luma_minus8")
	s.BitDepthChromaMinus8 = r.readUe("bit_depth_chroma_minus8")
	s.Log2MaxPicOrderCntLsbMinus4 = r.readUe("log2_max_pic_order_cnt_lsb_minus4")
	if err = r.err(); err != nil {
		return nil, err
	}

	if s.SubLayerOrderingInfo, err = parseLayerInfos(r, s.MaxSubLayersMinus1); err != nil {
		return nil, errors.Wrap(err, "could not parse sub-layer ordering info")
	}

	s.Log2MinLumaCodingBlockSizeMinus3 = r.readUe("log2_min_luma_coding_block_size_minus3")
	s.Log2DiffMaxMinLumaCodingBlockSize = r.readUe("log2_diff_max_min_luma_coding_block_size")
	s.Log2MinLumaTransformBlockSizeMinus2 = r.readUe("log2_min_luma_transform_block_size_minus2")
	s.Log2DiffMaxMinLumaTransformBlockSize = r.readUe("log2_diff_max_min_luma_transform_block_size")
	s.MaxTransformHierarchyDepthInter = r.readUe("max_transform_hierarchy_depth_inter")
	s.MaxTransformHierarchyDepthIntra = r.readUe("max_transform_hierarchy_depth_intra")
	if err = r.err(); err != nil {
		return nil, err
	}

	if s.ScalingList, err = parseScalingList(r); err != nil {
		return nil, errors.Wrap(err, "could not parse scaling list")
	}
	s.AmpEnabled = r.readFlag("amp_enabled_flag")
	s.SampleAdaptiveOffsetEnabled = r.readFlag("sample_adaptive_offset_enabled_flag")
	if s.PCM, err = parsePCM(r); err != nil {
		return nil, err
	}
	if s.ShortTermRefPicSets, err = parseShortTermRefPicSets(r); err != nil {
		return nil, errors.Wrap(err, "could not parse short-term reference picture sets")
	}
	if s.LongTermRefPics, err = parseLongTermRefPics(r); err != nil {
		return nil, err
	}
	s.TemporalMvpEnabled = r.readFlag("sps_temporal_mvp_enabled_flag")
	s.StrongIntraSmoothingEnabled = r.readFlag("strong_intra_smoothing_enabled_flag")
	if err = r.err(); err != nil {
		return nil, err
	}

	if r.readFlag("vui_parameters_present_flag") {
		if s.VUIParameters, err = parseVUIParameters(r, s.MaxSubLayersMinus1); err != nil {
			return nil, errors.Wrap(err, "could not parse vui parameters")
		}
	}
	if s.SpsExtension, err = parseSpsExtension(r, br); err != nil {
		return nil, err
	}
	if err = r.err(); err != nil {
		return nil, err
	}

	if err = br.Finish("rbsp_trailing_bits"); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the sequence parameter set identifier.
func (s *SeqParameterSet) ID() SeqParamSetID {
	return s.SeqParameterSetID
}

// GeneralLayerProfile returns the general profile of the profile_tier_level
// structure.
func (s *SeqParameterSet) GeneralLayerProfile() (*LayerProfile, error) {
	if s.ProfileTierLevel.GeneralProfile == nil {
		return nil, MissingGeneralProfileError{}
	}
	return s.ProfileTierLevel.GeneralProfile, nil
}

// GeneralProfile returns the lowest profile the stream declares conformance
// to.
func (s *SeqParameterSet) GeneralProfile() (Profile, error) {
	p, err := s.GeneralLayerProfile()
	if err != nil {
		return ProfileUnknown, err
	}
	return p.Profile(), nil
}

// GeneralTier returns the general tier.
func (s *SeqParameterSet) GeneralTier() (Tier, error) {
	p, err := s.GeneralLayerProfile()
	if err != nil {
		return TierMain, err
	}
	return p.Tier(), nil
}

// GeneralLevel returns the general level.
func (s *SeqParameterSet) GeneralLevel() Level {
	return Level(s.ProfileTierLevel.GeneralLevelIDC)
}

// PixelDimensions returns the displayable picture dimensions in pixels,
// applying the conformance window cropping offsets scaled by the chroma
// subsampling factors of table 6.1.
func (s *SeqParameterSet) PixelDimensions() (uint32, uint32, error) {
	width := uint64(s.PicWidthInLumaSamples)
	height := uint64(s.PicHeightInLumaSamples)
	if s.ConformanceWindow == nil {
		return uint32(width), uint32(height), nil
	}

	var subW, subH uint64
	switch s.ChromaInfo.Format {
	case ChromaFormat420:
		subW, subH = 2, 2
	case ChromaFormat422:
		subW, subH = 2, 1
	default:
		subW, subH = 1, 1
	}

	w := s.ConformanceWindow
	cropX := subW * (uint64(w.LeftOffset) + uint64(w.RightOffset))
	cropY := subH * (uint64(w.TopOffset) + uint64(w.BottomOffset))
	if cropX > width {
		return 0, 0, FieldValueTooLargeError{Name: "conformance window horizontal crop", Value: cropX}
	}
	if cropY > height {
		return 0, 0, FieldValueTooLargeError{Name: "conformance window vertical crop", Value: cropY}
	}
	return uint32(width - cropX), uint32(height - cropY), nil
}

// FPS returns the frame rate derived from the VUI timing information as
// time_scale divided by num_units_in_tick. The second return is false when
// the SPS carries no timing information or the tick count is zero.
func (s *SeqParameterSet) FPS() (float64, bool) {
	if s.VUIParameters == nil || s.VUIParameters.TimingInfo == nil {
		return 0, false
	}
	t := s.VUIParameters.TimingInfo
	if t.NumUnitsInTick == 0 {
		return 0, false
	}
	return float64(t.TimeScale) / float64(t.NumUnitsInTick), true
}

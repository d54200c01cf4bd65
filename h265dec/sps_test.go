/*
DESCRIPTION
  sps_test.go provides testing for parsing functionality found in sps.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package h265dec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/hevc/h265dec/bits"
)

// mainProfileTierLevel is a profile_tier_level with a Main profile general
// layer, level 4 and no sub-layers, used as a building block for SPS test
// data.
const mainProfileTierLevel = "00" + // u(2) general_profile_space = 0
	"0" + // u(1) general_tier_flag = 0
	"00001" + // u(5) general_profile_idc = 1
	"01000000000000000000000000000000" + // u(32) general_profile_compatibility_flag
	"1" + // u(1) general_progressive_source_flag = 1
	"0" + // u(1) general_interlaced_source_flag = 0
	"0" + // u(1) general_non_packed_constraint_flag = 0
	"1" + // u(1) general_frame_only_constraint_flag = 1
	"0000000000000000000000000000000000000000000" + // u(43) reserved
	"0" + // u(1) general_inbld_flag = 0
	"01111000" // u(8) general_level_idc = 120

func TestParseSeqParameterSet(t *testing.T) {
	// A 720x576 25fps anamorphic stream: coded size 736x576 with an 8
	// chroma-unit right crop and an extended 64:45 sample aspect ratio.
	in := "0000" + // u(4) sps_video_parameter_set_id = 0
		"000" + // u(3) sps_max_sub_layers_minus1 = 0
		"1" + // u(1) sps_temporal_id_nesting_flag = 1
		mainProfileTierLevel +
		"1" + // ue(v) sps_seq_parameter_set_id = 0
		"010" + // ue(v) chroma_format_idc = 1
		"000000000" + "1011100001" + // ue(v) pic_width_in_luma_samples = 736
		"000000000" + "1001000001" + // ue(v) pic_height_in_luma_samples = 576
		"1" + // u(1) conformance_window_flag = 1
		"1" + // ue(v) conf_win_left_offset = 0
		"0001001" + // ue(v) conf_win_right_offset = 8
		"1" + // ue(v) conf_win_top_offset = 0
		"1" + // ue(v) conf_win_bottom_offset = 0
		"1" + // ue(v) bit_depth_luma_minus8 = 0
		"1" + // ue(v) bit_depth_chroma_minus8 = 0
		"00101" + // ue(v) log2_max_pic_order_cnt_lsb_minus4 = 4
		"1" + // u(1) sps_sub_layer_ordering_info_present_flag = 1
		"00101" + // ue(v) sps_max_dec_pic_buffering_minus1[0] = 4
		"011" + // ue(v) sps_max_num_reorder_pics[0] = 2
		"1" + // ue(v) sps_max_latency_increase_plus1[0] = 0
		"1" + // ue(v) log2_min_luma_coding_block_size_minus3 = 0
		"00100" + // ue(v) log2_diff_max_min_luma_coding_block_size = 3
		"1" + // ue(v) log2_min_luma_transform_block_size_minus2 = 0
		"00100" + // ue(v) log2_diff_max_min_luma_transform_block_size = 3
		"1" + // ue(v) max_transform_hierarchy_depth_inter = 0
		"1" + // ue(v) max_transform_hierarchy_depth_intra = 0
		"0" + // u(1) scaling_list_enabled_flag = 0
		"1" + // u(1) amp_enabled_flag = 1
		"1" + // u(1) sample_adaptive_offset_enabled_flag = 1
		"0" + // u(1) pcm_enabled_flag = 0
		"010" + // ue(v) num_short_term_ref_pic_sets = 1
		"010" + // ue(v) num_negative_pics = 1
		"1" + // ue(v) num_positive_pics = 0
		"1" + // ue(v) delta_poc_s0_minus1[0] = 0
		"1" + // u(1) used_by_curr_pic_s0_flag[0] = 1
		"0" + // u(1) long_term_ref_pics_present_flag = 0
		"1" + // u(1) sps_temporal_mvp_enabled_flag = 1
		"1" + // u(1) strong_intra_smoothing_enabled_flag = 1
		"1" + // u(1) vui_parameters_present_flag = 1
		"1" + // u(1) aspect_ratio_info_present_flag = 1
		"11111111" + // u(8) aspect_ratio_idc = 255 (extended SAR)
		"0000000001000000" + // u(16) sar_width = 64
		"0000000000101101" + // u(16) sar_height = 45
		"0" + // u(1) overscan_info_present_flag = 0
		"0" + // u(1) video_signal_type_present_flag = 0
		"0" + // u(1) chroma_loc_info_present_flag = 0
		"0" + // u(1) neutral_chroma_indication_flag = 0
		"0" + // u(1) field_seq_flag = 0
		"0" + // u(1) frame_field_info_present_flag = 0
		"0" + // u(1) default_display_window_flag = 0
		"1" + // u(1) vui_timing_info_present_flag = 1
		"0000000000000000000000000000000" + "1" + // u(32) vui_num_units_in_tick = 1
		"000000000000000000000000000" + "11001" + // u(32) vui_time_scale = 25
		"0" + // u(1) vui_poc_proportional_to_timing_flag = 0
		"0" + // u(1) hrd_parameters_present_flag = 0
		"0" + // u(1) bitstream_restriction_flag = 0
		"0" + // u(1) sps_extension_present_flag = 0
		"1" // rbsp_stop_one_bit
	b, err := binToSlice(in)
	if err != nil {
		t.Fatalf("unexpected binToSlice error: %v", err)
	}

	got, err := ParseSeqParameterSet(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vpsID, _ := NewVideoParamSetID(0)
	spsID, _ := NewSeqParamSetID(0)
	want := &SeqParameterSet{
		VideoParameterSetID: vpsID,
		MaxSubLayersMinus1:  0,
		TemporalIDNesting:   true,
		ProfileTierLevel: ProfileTierLevel{
			GeneralProfile: &LayerProfile{
				ProfileIDC:          1,
				CompatibilityFlags:  compatFlags(1),
				ProgressiveSource:   true,
				FrameOnlyConstraint: true,
			},
			GeneralLevelIDC: 120,
		},
		SeqParameterSetID:      spsID,
		ChromaInfo:             ChromaInfo{Format: ChromaFormat420},
		PicWidthInLumaSamples:  736,
		PicHeightInLumaSamples: 576,
		ConformanceWindow: &Window{
			RightOffset: 8,
		},
		Log2MaxPicOrderCntLsbMinus4: 4,
		SubLayerOrderingInfo: []LayerInfo{
			{MaxDecPicBufferingMinus1: 4, MaxNumReorderPics: 2},
		},
		Log2DiffMaxMinLumaCodingBlockSize:    3,
		Log2DiffMaxMinLumaTransformBlockSize: 3,
		AmpEnabled:                           true,
		SampleAdaptiveOffsetEnabled:          true,
		ShortTermRefPicSets: []ShortTermRefPicSet{
			{NegativePics: []RefPicEntry{{DeltaPocMinus1: 0, UsedByCurrPic: true}}},
		},
		TemporalMvpEnabled:          true,
		StrongIntraSmoothingEnabled: true,
		VUIParameters: &VUIParameters{
			AspectRatioInfo: &AspectRatioInfo{IDC: 255, SARWidth: 64, SARHeight: 45},
			TimingInfo:      &TimingInfo{NumUnitsInTick: 1, TimeScale: 25},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}

	// Parsing is a pure function of the input buffer.
	again, err := ParseSeqParameterSet(b)
	if err != nil {
		t.Fatalf("unexpected error on re-parse: %v", err)
	}
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("re-parse differs (-first +second):\n%s", diff)
	}

	w, h, err := got.PixelDimensions()
	if err != nil {
		t.Fatalf("unexpected PixelDimensions error: %v", err)
	}
	if w != 720 || h != 576 {
		t.Errorf("unexpected dimensions\nGot: %dx%d\nWant: 720x576\n", w, h)
	}

	fps, ok := got.FPS()
	if !ok || fps != 25 {
		t.Errorf("unexpected fps\nGot: %v (%v)\nWant: 25\n", fps, ok)
	}

	profile, err := got.GeneralProfile()
	if err != nil {
		t.Fatalf("unexpected GeneralProfile error: %v", err)
	}
	if profile != ProfileMain {
		t.Errorf("unexpected profile: %d", profile)
	}
	tier, err := got.GeneralTier()
	if err != nil {
		t.Fatalf("unexpected GeneralTier error: %v", err)
	}
	if tier != TierMain {
		t.Errorf("unexpected tier: %v", tier)
	}
	if got.GeneralLevel() != Level4 {
		t.Errorf("unexpected level: %v", got.GeneralLevel())
	}

	sw, sh, ok := got.VUIParameters.AspectRatioInfo.Ratio()
	if !ok || sw != 64 || sh != 45 {
		t.Errorf("unexpected sample aspect ratio\nGot: %d:%d (%v)\nWant: 64:45\n", sw, sh, ok)
	}
}

func TestParseSeqParameterSetMonochrome(t *testing.T) {
	// A monochrome Main 10 high tier stream exercising the scaling list,
	// PCM, long-term reference pictures, HRD and bitstream restriction
	// branches.
	scalingListData := ""
	for i := 0; i < 20; i++ {
		scalingListData += "0" + // u(1) scaling_list_pred_mode_flag = 0
			"1" // ue(v) scaling_list_pred_matrix_id_delta = 0
	}

	in := "0000" + // u(4) sps_video_parameter_set_id = 0
		"000" + // u(3) sps_max_sub_layers_minus1 = 0
		"0" + // u(1) sps_temporal_id_nesting_flag = 0
		// profile_tier_level with Main 10 high tier general layer.
		"00" + // u(2) general_profile_space = 0
		"1" + // u(1) general_tier_flag = 1
		"00010" + // u(5) general_profile_idc = 2
		"00000000000000000000000000000000" + // u(32) compatibility flags
		"0000" + // source and packing flags
		"0000000" + // u(7) reserved
		"0" + // u(1) general_one_picture_only_constraint_flag = 0
		"00000000000000000000000000000000000" + // u(35) reserved
		"0" + // u(1) general_inbld_flag = 0
		"01011101" + // u(8) general_level_idc = 93
		"00100" + // ue(v) sps_seq_parameter_set_id = 3
		"1" + // ue(v) chroma_format_idc = 0
		"000000" + "1000001" + // ue(v) pic_width_in_luma_samples = 64
		"000000" + "1000001" + // ue(v) pic_height_in_luma_samples = 64
		"0" + // u(1) conformance_window_flag = 0
		"1" + // ue(v) bit_depth_luma_minus8 = 0
		"1" + // ue(v) bit_depth_chroma_minus8 = 0
		"1" + // ue(v) log2_max_pic_order_cnt_lsb_minus4 = 0
		"0" + // u(1) sps_sub_layer_ordering_info_present_flag = 0
		"010" + // ue(v) sps_max_dec_pic_buffering_minus1 = 1
		"1" + // ue(v) sps_max_num_reorder_pics = 0
		"1" + // ue(v) sps_max_latency_increase_plus1 = 0
		"1" + // ue(v) log2_min_luma_coding_block_size_minus3 = 0
		"1" + // ue(v) log2_diff_max_min_luma_coding_block_size = 0
		"1" + // ue(v) log2_min_luma_transform_block_size_minus2 = 0
		"1" + // ue(v) log2_diff_max_min_luma_transform_block_size = 0
		"1" + // ue(v) max_transform_hierarchy_depth_inter = 0
		"1" + // ue(v) max_transform_hierarchy_depth_intra = 0
		"1" + // u(1) scaling_list_enabled_flag = 1
		"1" + // u(1) sps_scaling_list_data_present_flag = 1
		scalingListData +
		"0" + // u(1) amp_enabled_flag = 0
		"0" + // u(1) sample_adaptive_offset_enabled_flag = 0
		"1" + // u(1) pcm_enabled_flag = 1
		"0111" + // u(4) pcm_sample_bit_depth_luma_minus1 = 7
		"0111" + // u(4) pcm_sample_bit_depth_chroma_minus1 = 7
		"1" + // ue(v) log2_min_pcm_luma_coding_block_size_minus3 = 0
		"011" + // ue(v) log2_diff_max_min_pcm_luma_coding_block_size = 2
		"1" + // u(1) pcm_loop_filter_disabled_flag = 1
		"1" + // ue(v) num_short_term_ref_pic_sets = 0
		"1" + // u(1) long_term_ref_pics_present_flag = 1
		"010" + // ue(v) num_long_term_ref_pics_sps = 1
		"00100" + // ue(v) lt_ref_pic_poc_lsb_sps[0] = 3
		"010" + // ue(v) used_by_curr_pic_lt_sps_flag[0] = 1
		"0" + // u(1) sps_temporal_mvp_enabled_flag = 0
		"0" + // u(1) strong_intra_smoothing_enabled_flag = 0
		"1" + // u(1) vui_parameters_present_flag = 1
		"0" + // u(1) aspect_ratio_info_present_flag = 0
		"1" + // u(1) overscan_info_present_flag = 1
		"1" + // u(1) overscan_appropriate_flag = 1
		"1" + // u(1) video_signal_type_present_flag = 1
		"001" + // u(3) video_format = 1 (PAL)
		"1" + // u(1) video_full_range_flag = 1
		"1" + // u(1) colour_description_present_flag = 1
		"00000001" + // u(8) colour_primaries = 1
		"00000001" + // u(8) transfer_characteristics = 1
		"00000001" + // u(8) matrix_coeffs = 1
		"1" + // u(1) chroma_loc_info_present_flag = 1
		"010" + // ue(v) chroma_sample_loc_type_top_field = 1
		"1" + // ue(v) chroma_sample_loc_type_bottom_field = 0
		"1" + // u(1) neutral_chroma_indication_flag = 1
		"0" + // u(1) field_seq_flag = 0
		"1" + // u(1) frame_field_info_present_flag = 1
		"1" + // u(1) default_display_window_flag = 1
		"010" + // ue(v) def_disp_win_left_offset = 1
		"010" + // ue(v) def_disp_win_right_offset = 1
		"1" + // ue(v) def_disp_win_top_offset = 0
		"1" + // ue(v) def_disp_win_bottom_offset = 0
		"1" + // u(1) vui_timing_info_present_flag = 1
		"0000000000000000000000" + "1111101001" + // u(32) vui_num_units_in_tick = 1001
		"00000000000000000" + "111010100110000" + // u(32) vui_time_scale = 30000
		"1" + // u(1) vui_poc_proportional_to_timing_flag = 1
		"1" + // ue(v) vui_num_ticks_poc_diff_one_minus1 = 0
		"1" + // u(1) hrd_parameters_present_flag = 1
		"1" + // u(1) nal_hrd_parameters_present_flag = 1
		"0" + // u(1) vcl_hrd_parameters_present_flag = 0
		"0" + // u(1) sub_pic_hrd_params_present_flag = 0
		"0000" + // u(4) bit_rate_scale = 0
		"0000" + // u(4) cpb_size_scale = 0
		"10111" + // u(5) initial_cpb_removal_delay_length_minus1 = 23
		"01111" + // u(5) au_cpb_removal_delay_length_minus1 = 15
		"00101" + // u(5) dpb_output_delay_length_minus1 = 5
		"1" + // u(1) fixed_pic_rate_general_flag = 1
		"1" + // ue(v) elemental_duration_in_tc_minus1 = 0
		"1" + // ue(v) cpb_cnt_minus1 = 0
		"1" + // ue(v) bit_rate_value_minus1[0] = 0
		"010" + // ue(v) cpb_size_value_minus1[0] = 1
		"0" + // u(1) cbr_flag[0] = 0
		"1" + // u(1) bitstream_restriction_flag = 1
		"1" + // u(1) tiles_fixed_structure_flag = 1
		"1" + // u(1) motion_vectors_over_pic_boundaries_flag = 1
		"0" + // u(1) restricted_ref_pic_lists_flag = 0
		"1" + // ue(v) min_spatial_segmentation_idc = 0
		"010" + // ue(v) max_bytes_per_pic_denom = 1
		"1" + // ue(v) max_bits_per_min_cu_denom = 0
		"00101" + // ue(v) log2_max_mv_length_horizontal = 4
		"00100" + // ue(v) log2_max_mv_length_vertical = 3
		"0" + // u(1) sps_extension_present_flag = 0
		"1" // rbsp_stop_one_bit
	b, err := binToSlice(in)
	if err != nil {
		t.Fatalf("unexpected binToSlice error: %v", err)
	}

	got, err := ParseSeqParameterSet(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spsID, _ := NewSeqParamSetID(3)
	numTicks := uint32(0)
	want := &SeqParameterSet{
		MaxSubLayersMinus1: 0,
		ProfileTierLevel: ProfileTierLevel{
			GeneralProfile: &LayerProfile{
				TierFlag:   true,
				ProfileIDC: 2,
			},
			GeneralLevelIDC: 93,
		},
		SeqParameterSetID:      spsID,
		ChromaInfo:             ChromaInfo{Format: ChromaFormatMonochrome},
		PicWidthInLumaSamples:  64,
		PicHeightInLumaSamples: 64,
		SubLayerOrderingInfo: []LayerInfo{
			{MaxDecPicBufferingMinus1: 1},
		},
		ScalingList: &ScalingList{DataPresent: true},
		PCM: &PCM{
			SampleBitDepthLumaMinus1:          7,
			SampleBitDepthChromaMinus1:        7,
			Log2DiffMaxMinLumaCodingBlockSize: 2,
			LoopFilterDisabled:                true,
		},
		LongTermRefPics: []LongTermRefPic{
			{PocLsbSps: 3, UsedByCurrPicLtSps: 1},
		},
		VUIParameters: &VUIParameters{
			Overscan: OverscanAppropriate,
			VideoSignalType: &VideoSignalType{
				Format:    VideoFormatPAL,
				FullRange: true,
				ColourDescription: &ColourDescription{
					ColourPrimaries:         1,
					TransferCharacteristics: 1,
					MatrixCoeffs:            1,
				},
			},
			ChromaLocInfo:         &ChromaLocInfo{TopField: 1},
			NeutralChroma:         true,
			FrameFieldInfoPresent: true,
			DefaultDisplayWindow:  &Window{LeftOffset: 1, RightOffset: 1},
			TimingInfo: &TimingInfo{
				NumUnitsInTick:           1001,
				TimeScale:                30000,
				NumTicksPocDiffOneMinus1: &numTicks,
				HRDParameters: &HRDParameters{
					Common: &HRDCommonInf{
						NalHRDPresent: true,
						Parameters: &HRDCommonInfParameters{
							InitialCpbRemovalDelayLengthMinus1: 23,
							AuCpbRemovalDelayLengthMinus1:      15,
							DpbOutputDelayLengthMinus1:         5,
						},
					},
					Layers: []LayerHRDParameters{
						{
							FixedPicRateGeneral:   true,
							FixedPicRateWithinCvs: true,
							NalHRDParameters: []SubLayerHRDParameters{
								{CpbSizeValueMinus1: 1},
							},
						},
					},
				},
			},
			BitstreamRestrictions: &BitstreamRestrictions{
				TilesFixedStructure:       true,
				MVOverPicBoundaries:       true,
				MaxBytesPerPicDenom:       1,
				Log2MaxMvLengthHorizontal: 4,
				Log2MaxMvLengthVertical:   3,
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}

	w, h, err := got.PixelDimensions()
	if err != nil {
		t.Fatalf("unexpected PixelDimensions error: %v", err)
	}
	if w != 64 || h != 64 {
		t.Errorf("unexpected dimensions\nGot: %dx%d\nWant: 64x64\n", w, h)
	}

	fps, ok := got.FPS()
	if !ok || fps != float64(30000)/float64(1001) {
		t.Errorf("unexpected fps\nGot: %v (%v)\nWant: 30000/1001\n", fps, ok)
	}

	profile, err := got.GeneralProfile()
	if err != nil {
		t.Fatalf("unexpected GeneralProfile error: %v", err)
	}
	if profile != ProfileMain10 {
		t.Errorf("unexpected profile: %d", profile)
	}
	tier, err := got.GeneralTier()
	if err != nil {
		t.Fatalf("unexpected GeneralTier error: %v", err)
	}
	if tier != TierHigh {
		t.Errorf("unexpected tier: %v", tier)
	}
	if got.GeneralLevel() != Level3_1 {
		t.Errorf("unexpected level: %v", got.GeneralLevel())
	}
}

func TestParseSeqParameterSetTrailingData(t *testing.T) {
	// A minimal valid SPS followed by a stray non-zero byte.
	in := "0000" + "000" + "1" +
		mainProfileTierLevel +
		"1" + // ue(v) sps_seq_parameter_set_id = 0
		"010" + // ue(v) chroma_format_idc = 1
		"0001000" + // ue(v) pic_width_in_luma_samples = 7
		"0001000" + // ue(v) pic_height_in_luma_samples = 7
		"0" + // u(1) conformance_window_flag = 0
		"1" + "1" + "1" + // bit depths and log2_max_pic_order_cnt
		"0" + // u(1) sps_sub_layer_ordering_info_present_flag = 0
		"1" + "1" + "1" + // single layer ordering info
		"1" + "1" + "1" + "1" + "1" + "1" + // block size fields
		"0" + // u(1) scaling_list_enabled_flag = 0
		"0" + "0" + "0" + // amp, sao, pcm
		"1" + // ue(v) num_short_term_ref_pic_sets = 0
		"0" + // u(1) long_term_ref_pics_present_flag = 0
		"0" + "0" + // mvp, strong intra smoothing
		"0" + // u(1) vui_parameters_present_flag = 0
		"0" + // u(1) sps_extension_present_flag = 0
		"1" // rbsp_stop_one_bit
	b, err := binToSlice(in)
	if err != nil {
		t.Fatalf("unexpected binToSlice error: %v", err)
	}

	if _, err := ParseSeqParameterSet(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var trailing bits.TrailingDataError
	if _, err := ParseSeqParameterSet(append(b, 0x01)); !errors.As(err, &trailing) {
		t.Fatalf("expected TrailingDataError, got: %v", err)
	}
}

func TestParseSeqParameterSetBadID(t *testing.T) {
	in := "0000" + "000" + "1" +
		mainProfileTierLevel +
		"000010001" // ue(v) sps_seq_parameter_set_id = 16
	b, err := binToSlice(in)
	if err != nil {
		t.Fatalf("unexpected binToSlice error: %v", err)
	}

	var tooLarge IDTooLargeError
	_, err = ParseSeqParameterSet(b)
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected IDTooLargeError, got: %v", err)
	}
	if tooLarge.Value != 16 || tooLarge.Max != 15 {
		t.Errorf("unexpected error contents: %+v", tooLarge)
	}
}

func TestParseSeqParameterSetUnimplementedExtension(t *testing.T) {
	in := "0000" + "000" + "1" +
		mainProfileTierLevel +
		"1" + "010" +
		"0001000" + "0001000" + "0" +
		"1" + "1" + "1" +
		"0" + "1" + "1" + "1" +
		"1" + "1" + "1" + "1" + "1" + "1" +
		"0" + "0" + "0" + "0" +
		"1" + "0" + "0" + "0" +
		"0" + // u(1) vui_parameters_present_flag = 0
		"1" + // u(1) sps_extension_present_flag = 1
		"1" + // u(1) sps_range_extension_flag = 1
		"0" + "0" + "0" + // other extension flags
		"0000" + // u(4) sps_extension_4bits = 0
		"1" // rbsp_stop_one_bit
	b, err := binToSlice(in)
	if err != nil {
		t.Fatalf("unexpected binToSlice error: %v", err)
	}

	var unimpl UnimplementedError
	_, err = ParseSeqParameterSet(b)
	if !errors.As(err, &unimpl) {
		t.Fatalf("expected UnimplementedError, got: %v", err)
	}
	if unimpl.Name != "sps_range_extension" {
		t.Errorf("unexpected extension name: %s", unimpl.Name)
	}
}

func TestPixelDimensionsCropTooLarge(t *testing.T) {
	sps := &SeqParameterSet{
		ChromaInfo:             ChromaInfo{Format: ChromaFormat420},
		PicWidthInLumaSamples:  32,
		PicHeightInLumaSamples: 32,
		ConformanceWindow:      &Window{LeftOffset: 20, RightOffset: 20},
	}
	_, _, err := sps.PixelDimensions()
	var tooLarge FieldValueTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected FieldValueTooLargeError, got: %v", err)
	}
}

func TestFPSWithoutTimingInfo(t *testing.T) {
	sps := &SeqParameterSet{}
	if _, ok := sps.FPS(); ok {
		t.Error("expected no fps without vui")
	}
	sps.VUIParameters = &VUIParameters{TimingInfo: &TimingInfo{TimeScale: 25}}
	if _, ok := sps.FPS(); ok {
		t.Error("expected no fps with zero num_units_in_tick")
	}
}

package h265dec

import "fmt"

// Tier represents the general or sub-layer tier, section A.4 of ITU-T H.265.
type Tier uint8

// Tiers indicated by the tier flag.
const (
	TierMain Tier = iota
	TierHigh
)

// String returns the tier name.
func (t Tier) String() string {
	if t == TierHigh {
		return "High"
	}
	return "Main"
}

// tierFromFlag maps the tier_flag syntax element to a Tier.
func tierFromFlag(flag bool) Tier {
	if flag {
		return TierHigh
	}
	return TierMain
}

// Level is a general_level_idc value, which is 30 times the level number.
// Named constants cover the levels defined by annex A; any other value is
// reserved and carried through as is.
type Level uint8

// Levels defined by table A.8 of ITU-T H.265, plus level 8.5 from A.4.2.
const (
	Level1   Level = 30
	Level2   Level = 60
	Level2_1 Level = 63
	Level3   Level = 90
	Level3_1 Level = 93
	Level4   Level = 120
	Level4_1 Level = 123
	Level5   Level = 150
	Level5_1 Level = 153
	Level5_2 Level = 156
	Level6   Level = 180
	Level6_1 Level = 183
	Level6_2 Level = 186
	Level8_5 Level = 255
)

var levelNames = map[Level]string{
	Level1:   "1",
	Level2:   "2",
	Level2_1: "2.1",
	Level3:   "3",
	Level3_1: "3.1",
	Level4:   "4",
	Level4_1: "4.1",
	Level5:   "5",
	Level5_1: "5.1",
	Level5_2: "5.2",
	Level6:   "6",
	Level6_1: "6.1",
	Level6_2: "6.2",
	Level8_5: "8.5",
}

// String returns the level name, or the raw idc for reserved values.
func (l Level) String() string {
	if n, ok := levelNames[l]; ok {
		return n
	}
	return fmt.Sprintf("reserved(%d)", uint8(l))
}

// Profile is a named profile classification derived from the profile_idc and
// constraint-flag vector of a LayerProfile, per annex A of ITU-T H.265.
// ProfileUnknown is the fallback for flag combinations the standard does not
// enumerate; the raw general_profile_idc remains available on the
// LayerProfile itself.
type Profile int

// Profiles from annex A. The grouping comments mirror the annex structure.
const (
	ProfileUnknown Profile = iota

	// Main profile.
	ProfileMain

	// Main 10 and Main 10 Still Picture profiles.
	ProfileMain10
	ProfileMain10StillPicture

	// Main Still Picture profile.
	ProfileMainStillPicture

	// Format range extensions profiles.
	ProfileMonochrome
	ProfileMonochrome10
	ProfileMonochrome12
	ProfileMonochrome16
	ProfileMain12
	ProfileMain422_10
	ProfileMain422_12
	ProfileMain444
	ProfileMain444_10
	ProfileMain444_12
	ProfileMainIntra
	ProfileMain10Intra
	ProfileMain12Intra
	ProfileMain422_10Intra
	ProfileMain422_12Intra
	ProfileMain444Intra
	ProfileMain444_10Intra
	ProfileMain444_12Intra
	ProfileMain444_16Intra
	ProfileMain444StillPicture
	ProfileMain444_16StillPicture

	// High throughput profiles.
	ProfileHighThroughput444
	ProfileHighThroughput444_10
	ProfileHighThroughput444_14
	ProfileHighThroughput444_16Intra

	// Screen content coding extensions profiles.
	ProfileScreenExtendedMain
	ProfileScreenExtendedMain10
	ProfileScreenExtendedMain444
	ProfileScreenExtendedMain444_10

	// High throughput screen content coding extensions profiles.
	ProfileScreenExtendedHighThroughput444
	ProfileScreenExtendedHighThroughput444_10
	ProfileScreenExtendedHighThroughput444_14

	// Scalable Main and Scalable Main 10 profiles.
	ProfileScalableMain
	ProfileScalableMain10

	// Scalable format range extensions profiles.
	ProfileScalableMonochrome
	ProfileScalableMonochrome12
	ProfileScalableMonochrome16
	ProfileScalableMain444

	// Multiview Main profile.
	ProfileMultiviewMain

	// 3D Main profile.
	Profile3DMain
)

// LayerProfile holds the general or sub-layer profile portion of a
// profile_tier_level structure, section 7.3.3 of ITU-T H.265.
type LayerProfile struct {
	ProfileSpace             uint8
	TierFlag                 bool
	ProfileIDC               uint8
	CompatibilityFlags       [32]bool
	ProgressiveSource        bool
	InterlacedSource         bool
	NonPackedConstraint      bool
	FrameOnlyConstraint      bool
	Max14bitConstraint       bool
	Max12bitConstraint       bool
	Max10bitConstraint       bool
	Max8bitConstraint        bool
	Max422ChromaConstraint   bool
	Max420ChromaConstraint   bool
	MaxMonochromeConstraint  bool
	IntraConstraint          bool
	OnePictureOnlyConstraint bool
	LowerBitRateConstraint   bool
	Inbld                    bool
}

// idcOrCompat reports whether the profile indicates idc, either directly or
// via the corresponding compatibility flag.
func (p *LayerProfile) idcOrCompat(idc uint8) bool {
	return p.ProfileIDC == idc || p.CompatibilityFlags[idc]
}

// parseLayerProfile parses the general or sub-layer profile fields. The
// conditional constraint-flag blocks follow section 7.3.3 exactly: the
// format-range family (idc 4 to 11) carries nine constraint flags plus
// either a max-14-bit flag and 33 reserved bits or 34 reserved bits; idc 2
// carries 7 reserved bits, the one-picture-only flag and 35 reserved bits;
// anything else carries 43 reserved bits.
func parseLayerProfile(r *fieldReader) (*LayerProfile, error) {
	p := &LayerProfile{
		ProfileSpace: uint8(r.readBits(2, "profile_space")),
		TierFlag:     r.readFlag("tier_flag"),
		ProfileIDC:   uint8(r.readBits(5, "profile_idc")),
	}
	for j := range p.CompatibilityFlags {
		p.CompatibilityFlags[j] = r.readFlag("profile_compatibility_flag[j]")
	}
	p.ProgressiveSource = r.readFlag("progressive_source_flag")
	p.InterlacedSource = r.readFlag("interlaced_source_flag")
	p.NonPackedConstraint = r.readFlag("non_packed_constraint_flag")
	p.FrameOnlyConstraint = r.readFlag("frame_only_constraint_flag")

	rangeFamily := false
	for idc := uint8(4); idc <= 11; idc++ {
		if p.idcOrCompat(idc) {
			rangeFamily = true
			break
		}
	}
	switch {
	case rangeFamily:
		p.Max12bitConstraint = r.readFlag("max_12bit_constraint_flag")
		p.Max10bitConstraint = r.readFlag("max_10bit_constraint_flag")
		p.Max8bitConstraint = r.readFlag("max_8bit_constraint_flag")
		p.Max422ChromaConstraint = r.readFlag("max_422chroma_constraint_flag")
		p.Max420ChromaConstraint = r.readFlag("max_420chroma_constraint_flag")
		p.MaxMonochromeConstraint = r.readFlag("max_monochrome_constraint_flag")
		p.IntraConstraint = r.readFlag("intra_constraint_flag")
		p.OnePictureOnlyConstraint = r.readFlag("one_picture_only_constraint_flag")
		p.LowerBitRateConstraint = r.readFlag("lower_bit_rate_constraint_flag")
		if p.idcOrCompat(5) || p.idcOrCompat(9) || p.idcOrCompat(10) || p.idcOrCompat(11) {
			p.Max14bitConstraint = r.readFlag("max_14bit_constraint_flag")
			r.readBits(33, "reserved_zero_33bits")
		} else {
			r.readBits(34, "reserved_zero_34bits")
		}
	case p.idcOrCompat(2):
		r.readBits(7, "reserved_zero_7bits")
		p.OnePictureOnlyConstraint = r.readFlag("one_picture_only_constraint_flag")
		r.readBits(35, "reserved_zero_35bits")
	default:
		r.readBits(43, "reserved_zero_43bits")
	}

	if p.idcOrCompat(1) || p.idcOrCompat(2) || p.idcOrCompat(3) ||
		p.idcOrCompat(4) || p.idcOrCompat(5) || p.idcOrCompat(9) || p.idcOrCompat(11) {
		p.Inbld = r.readFlag("inbld_flag")
	} else {
		r.readBits(1, "reserved_zero_bit")
	}

	return p, r.err()
}

// Tier returns the tier indicated by the tier flag.
func (p *LayerProfile) Tier() Tier {
	return tierFromFlag(p.TierFlag)
}

// constraintPattern matches a constraint-flag vector against an annex A
// profile definition. Each element is 0, 1 or -1 for "either".
type constraintPattern struct {
	flags   [10]int8
	profile Profile
}

// constraintVector packs the constraint flags in annex A table order:
// max-14-bit, max-12-bit, max-10-bit, max-8-bit, max-4:2:2, max-4:2:0,
// monochrome, intra, one-picture-only, lower-bit-rate.
func (p *LayerProfile) constraintVector() [10]bool {
	return [10]bool{
		p.Max14bitConstraint,
		p.Max12bitConstraint,
		p.Max10bitConstraint,
		p.Max8bitConstraint,
		p.Max422ChromaConstraint,
		p.Max420ChromaConstraint,
		p.MaxMonochromeConstraint,
		p.IntraConstraint,
		p.OnePictureOnlyConstraint,
		p.LowerBitRateConstraint,
	}
}

func (p constraintPattern) matches(v [10]bool) bool {
	for i, f := range p.flags {
		if f == -1 {
			continue
		}
		if (f == 1) != v[i] {
			return false
		}
	}
	return true
}

// Constraint-flag tables from annex A, one per profile_idc. The leading
// element is the max-14-bit flag, which is "either" for idc values whose
// syntax never carries it.
var profilePatterns = map[uint8][]constraintPattern{
	4: {
		{[10]int8{-1, 1, 1, 1, 1, 1, 1, 0, 0, 1}, ProfileMonochrome},
		{[10]int8{-1, 1, 1, 0, 1, 1, 1, 0, 0, 1}, ProfileMonochrome10},
		{[10]int8{-1, 1, 0, 0, 1, 1, 1, 0, 0, 1}, ProfileMonochrome12},
		{[10]int8{-1, 0, 0, 0, 1, 1, 1, 0, 0, 1}, ProfileMonochrome16},
		{[10]int8{-1, 1, 0, 0, 1, 1, 0, 0, 0, 1}, ProfileMain12},
		{[10]int8{-1, 1, 1, 0, 1, 0, 0, 0, 0, 1}, ProfileMain422_10},
		{[10]int8{-1, 1, 0, 0, 1, 0, 0, 0, 0, 1}, ProfileMain422_12},
		{[10]int8{-1, 1, 1, 1, 0, 0, 0, 0, 0, 1}, ProfileMain444},
		{[10]int8{-1, 1, 1, 0, 0, 0, 0, 0, 0, 1}, ProfileMain444_10},
		{[10]int8{-1, 1, 0, 0, 0, 0, 0, 0, 0, 1}, ProfileMain444_12},
		{[10]int8{-1, 1, 1, 1, 1, 1, 0, 1, 0, -1}, ProfileMainIntra},
		{[10]int8{-1, 1, 1, 0, 1, 1, 0, 1, 0, -1}, ProfileMain10Intra},
		{[10]int8{-1, 1, 0, 0, 1, 1, 0, 1, 0, -1}, ProfileMain12Intra},
		{[10]int8{-1, 1, 1, 0, 1, 0, 0, 1, 0, -1}, ProfileMain422_10Intra},
		{[10]int8{-1, 1, 0, 0, 1, 0, 0, 1, 0, -1}, ProfileMain422_12Intra},
		{[10]int8{-1, 1, 1, 1, 0, 0, 0, 1, 0, -1}, ProfileMain444Intra},
		{[10]int8{-1, 1, 1, 0, 0, 0, 0, 1, 0, -1}, ProfileMain444_10Intra},
		{[10]int8{-1, 1, 0, 0, 0, 0, 0, 1, 0, -1}, ProfileMain444_12Intra},
		{[10]int8{-1, 0, 0, 0, 0, 0, 0, 1, 0, -1}, ProfileMain444_16Intra},
		{[10]int8{-1, 1, 1, 1, 0, 0, 0, 1, 1, -1}, ProfileMain444StillPicture},
		{[10]int8{-1, 0, 0, 0, 0, 0, 0, 1, 1, -1}, ProfileMain444_16StillPicture},
	},
	5: {
		{[10]int8{1, 1, 1, 1, 0, 0, 0, 0, 0, 1}, ProfileHighThroughput444},
		{[10]int8{1, 1, 1, 0, 0, 0, 0, 0, 0, 1}, ProfileHighThroughput444_10},
		{[10]int8{1, 0, 0, 0, 0, 0, 0, 0, 0, 1}, ProfileHighThroughput444_14},
		{[10]int8{0, 0, 0, 0, 0, 0, 0, 1, 0, -1}, ProfileHighThroughput444_16Intra},
	},
	6: {
		{[10]int8{-1, 1, 1, 1, 1, 1, 0, 0, 0, 1}, ProfileMultiviewMain},
	},
	7: {
		{[10]int8{-1, 1, 1, 1, 1, 1, 0, 0, 0, 1}, ProfileScalableMain},
		{[10]int8{-1, 1, 1, 0, 1, 1, 0, 0, 0, 1}, ProfileScalableMain10},
	},
	8: {
		{[10]int8{-1, 1, 1, 1, 1, 1, 0, 0, 0, 1}, Profile3DMain},
	},
	9: {
		{[10]int8{1, 1, 1, 1, 1, 1, 0, 0, 0, 1}, ProfileScreenExtendedMain},
		{[10]int8{1, 1, 1, 0, 1, 1, 0, 0, 0, 1}, ProfileScreenExtendedMain10},
		{[10]int8{1, 1, 1, 1, 0, 0, 0, 0, 0, 1}, ProfileScreenExtendedMain444},
		{[10]int8{1, 1, 1, 0, 0, 0, 0, 0, 0, 1}, ProfileScreenExtendedMain444_10},
	},
	10: {
		{[10]int8{1, 1, 1, 1, 1, 1, 1, 0, 0, 1}, ProfileScalableMonochrome},
		{[10]int8{1, 1, 0, 0, 1, 1, 1, 0, 0, 1}, ProfileScalableMonochrome12},
		{[10]int8{0, 0, 0, 0, 1, 1, 1, 0, 0, 1}, ProfileScalableMonochrome16},
		{[10]int8{1, 1, 1, 1, 0, 0, 0, 0, 0, 1}, ProfileScalableMain444},
	},
	11: {
		{[10]int8{1, 1, 1, 1, 0, 0, 0, 0, 0, 1}, ProfileScreenExtendedHighThroughput444},
		{[10]int8{1, 1, 1, 0, 0, 0, 0, 0, 0, 1}, ProfileScreenExtendedHighThroughput444_10},
		{[10]int8{1, 0, 0, 0, 0, 0, 0, 0, 0, 1}, ProfileScreenExtendedHighThroughput444_14},
	},
}

// Profile classifies the profile_idc and constraint-flag vector into a named
// profile, returning the "lowest" profile indicated by the idc or any
// compatibility flag. Classification never fails: combinations not
// enumerated by annex A give ProfileUnknown. A substream may in reality
// conform to several profiles at once; only the lowest is reported.
func (p *LayerProfile) Profile() Profile {
	switch {
	case p.idcOrCompat(1):
		return ProfileMain
	case p.idcOrCompat(2):
		if p.OnePictureOnlyConstraint {
			return ProfileMain10StillPicture
		}
		return ProfileMain10
	case p.idcOrCompat(3):
		return ProfileMainStillPicture
	}
	for idc := uint8(4); idc <= 11; idc++ {
		if !p.idcOrCompat(idc) {
			continue
		}
		v := p.constraintVector()
		for _, pat := range profilePatterns[idc] {
			if pat.matches(v) {
				return pat.profile
			}
		}
		return ProfileUnknown
	}
	return ProfileUnknown
}

// SubLayerProfileLevel holds one of the up-to-seven optional sub-layer
// profile/level entries of a profile_tier_level structure. Either field may
// be absent independently of the other.
type SubLayerProfileLevel struct {
	Profile  *LayerProfile
	LevelIDC *uint8
}

func parseSubLayerProfileLevel(r *fieldReader, profilePresent, levelPresent bool) (SubLayerProfileLevel, error) {
	var s SubLayerProfileLevel
	if profilePresent {
		p, err := parseLayerProfile(r)
		if err != nil {
			return s, err
		}
		s.Profile = p
	}
	if levelPresent {
		l := uint8(r.readBits(8, "sub_layer_level_idc[i]"))
		s.LevelIDC = &l
	}
	return s, r.err()
}

// ProfileTierLevel is the profile_tier_level structure of section 7.3.3.
// SubLayers always has seven slots regardless of how many are populated;
// slots at and beyond the sub-layer count are empty.
type ProfileTierLevel struct {
	GeneralProfile  *LayerProfile
	GeneralLevelIDC uint8
	SubLayers       [7]SubLayerProfileLevel
}

func parseProfileTierLevel(r *fieldReader, profilePresent bool, maxNumSubLayersMinus1 uint8) (ProfileTierLevel, error) {
	var ptl ProfileTierLevel
	if profilePresent {
		p, err := parseLayerProfile(r)
		if err != nil {
			return ptl, err
		}
		ptl.GeneralProfile = p
	}
	ptl.GeneralLevelIDC = uint8(r.readBits(8, "general_level_idc"))

	if err := validateMaxNumSubLayersMinus1(maxNumSubLayersMinus1); err != nil {
		return ptl, err
	}

	var profilePresentFlags, levelPresentFlags [7]bool
	for i := uint8(0); i < maxNumSubLayersMinus1; i++ {
		profilePresentFlags[i] = r.readFlag("sub_layer_profile_present_flag[i]")
		levelPresentFlags[i] = r.readFlag("sub_layer_level_present_flag[i]")
	}
	if maxNumSubLayersMinus1 > 0 {
		for i := maxNumSubLayersMinus1; i < 8; i++ {
			r.readBits(2, "reserved_zero_2bits[i]")
		}
	}
	if err := r.err(); err != nil {
		return ptl, err
	}

	for i := range ptl.SubLayers {
		s, err := parseSubLayerProfileLevel(r, profilePresentFlags[i], levelPresentFlags[i])
		if err != nil {
			return ptl, err
		}
		ptl.SubLayers[i] = s
	}
	return ptl, r.err()
}

// validateMaxNumSubLayersMinus1 enforces the syntax ceiling of seven
// sub-layers that sizes the fixed arrays above.
func validateMaxNumSubLayersMinus1(v uint8) error {
	if v > 7 {
		return FieldValueTooLargeError{Name: "max_num_sub_layers_minus1", Value: uint64(v)}
	}
	return nil
}

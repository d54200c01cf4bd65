package h265dec

import "math"

// RefPicEntry is one reference picture of a short-term RPS list, in the
// differential coded form of the bitstream. DeltaPocMinus1 plus one is the
// POC distance from the previous entry in the same list, or from the current
// picture for the first entry.
type RefPicEntry struct {
	DeltaPocMinus1 uint32
	UsedByCurrPic  bool
}

// ShortTermRefPicSet is a short-term reference picture set, section 7.3.7 of
// ITU-T H.265. NegativePics lists pictures preceding the current picture in
// output order and PositivePics those following it, both in coding order.
// Sets coded with inter RPS prediction are resolved against their reference
// set at parse time, so both lists always hold explicit entries.
type ShortTermRefPicSet struct {
	NegativePics []RefPicEntry
	PositivePics []RefPicEntry
}

// deltaPocsS0 expands the negative list to absolute POC deltas, which are
// negative and strictly decreasing.
func (s *ShortTermRefPicSet) deltaPocsS0() []int64 {
	d := make([]int64, len(s.NegativePics))
	var acc int64
	for i, e := range s.NegativePics {
		acc -= int64(e.DeltaPocMinus1) + 1
		d[i] = acc
	}
	return d
}

// deltaPocsS1 expands the positive list to absolute POC deltas, which are
// positive and strictly increasing.
func (s *ShortTermRefPicSet) deltaPocsS1() []int64 {
	d := make([]int64, len(s.PositivePics))
	var acc int64
	for i, e := range s.PositivePics {
		acc += int64(e.DeltaPocMinus1) + 1
		d[i] = acc
	}
	return d
}

// parseShortTermRefPicSets reads num_short_term_ref_pic_sets followed by
// that many st_ref_pic_set structures. Each set may predict from an earlier
// one, so the parsed sets accumulate as the loop proceeds.
func parseShortTermRefPicSets(r *fieldReader) ([]ShortTermRefPicSet, error) {
	num := r.readUe("num_short_term_ref_pic_sets")
	if err := r.err(); err != nil {
		return nil, err
	}
	if num == 0 {
		return nil, nil
	}
	sets := make([]ShortTermRefPicSet, 0, num)
	for i := uint32(0); i < num; i++ {
		s, err := parseShortTermRefPicSet(r, i, num, sets)
		if err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	return sets, nil
}

func parseShortTermRefPicSet(r *fieldReader, stRpsIdx, numSets uint32, parsed []ShortTermRefPicSet) (ShortTermRefPicSet, error) {
	var s ShortTermRefPicSet

	interPred := false
	if stRpsIdx != 0 {
		interPred = r.readFlag("inter_ref_pic_set_prediction_flag")
	}
	if !interPred {
		numNegative := r.readUe("num_negative_pics")
		numPositive := r.readUe("num_positive_pics")
		if err := r.err(); err != nil {
			return s, err
		}
		for i := uint32(0); i < numNegative; i++ {
			s.NegativePics = append(s.NegativePics, RefPicEntry{
				DeltaPocMinus1: r.readUe("delta_poc_s0_minus1[i]"),
				UsedByCurrPic:  r.readFlag("used_by_curr_pic_s0_flag[i]"),
			})
		}
		for i := uint32(0); i < numPositive; i++ {
			s.PositivePics = append(s.PositivePics, RefPicEntry{
				DeltaPocMinus1: r.readUe("delta_poc_s1_minus1[i]"),
				UsedByCurrPic:  r.readFlag("used_by_curr_pic_s1_flag[i]"),
			})
		}
		return s, r.err()
	}

	// delta_idx_minus1 is only coded when the set is at the end of the SPS
	// list, which arises for sets coded in slice headers.
	var deltaIdxMinus1 uint32
	if stRpsIdx == numSets {
		deltaIdxMinus1 = r.readUe("delta_idx_minus1")
	}
	deltaRpsSign := r.readFlag("delta_rps_sign")
	absDeltaRpsMinus1 := r.readUe("abs_delta_rps_minus1")
	if err := r.err(); err != nil {
		return s, err
	}

	refIdx := int64(stRpsIdx) - (int64(deltaIdxMinus1) + 1)
	if refIdx < 0 || refIdx >= int64(len(parsed)) {
		return s, InvalidReferenceIndexError{Index: int(refIdx), Count: len(parsed)}
	}
	ref := &parsed[refIdx]

	deltaRps := int64(absDeltaRpsMinus1) + 1
	if deltaRpsSign {
		deltaRps = -deltaRps
	}

	// One used/use-delta flag pair per delta POC of the reference set, plus
	// one for the reference picture itself.
	numDeltaPocs := len(ref.NegativePics) + len(ref.PositivePics)
	used := make([]bool, numDeltaPocs+1)
	useDelta := make([]bool, numDeltaPocs+1)
	for j := 0; j <= numDeltaPocs; j++ {
		used[j] = r.readFlag("used_by_curr_pic_flag[j]")
		useDelta[j] = true
		if used[j] {
			useDelta[j] = r.readFlag("use_delta_flag[j]")
		}
	}
	if err := r.err(); err != nil {
		return s, err
	}

	return deriveShortTermRefPicSet(ref, deltaRps, used, useDelta)
}

// deriveShortTermRefPicSet resolves an inter-predicted set against its
// reference set per the derivation of section 7.4.8, equations 7-59 to 7-71.
// Flag index j addresses the reference set's negative pictures first, then
// its positive pictures, with index NumDeltaPocs for the reference picture
// itself.
func deriveShortTermRefPicSet(ref *ShortTermRefPicSet, deltaRps int64, used, useDelta []bool) (ShortTermRefPicSet, error) {
	var s ShortTermRefPicSet
	refS0 := ref.deltaPocsS0()
	refS1 := ref.deltaPocsS1()
	numNeg := len(refS0)
	numDeltaPocs := numNeg + len(refS1)

	var s0, s1 []int64
	var s0Used, s1Used []bool

	// Negative list: shifted positive deltas in descending order, then the
	// reference picture itself, then shifted negative deltas in ascending
	// order.
	for j := len(refS1) - 1; j >= 0; j-- {
		dPoc := refS1[j] + deltaRps
		if dPoc < 0 && useDelta[numNeg+j] {
			s0 = append(s0, dPoc)
			s0Used = append(s0Used, used[numNeg+j])
		}
	}
	if deltaRps < 0 && useDelta[numDeltaPocs] {
		s0 = append(s0, deltaRps)
		s0Used = append(s0Used, used[numDeltaPocs])
	}
	for j := 0; j < numNeg; j++ {
		dPoc := refS0[j] + deltaRps
		if dPoc < 0 && useDelta[j] {
			s0 = append(s0, dPoc)
			s0Used = append(s0Used, used[j])
		}
	}

	// Positive list mirrors the negative one.
	for j := numNeg - 1; j >= 0; j-- {
		dPoc := refS0[j] + deltaRps
		if dPoc > 0 && useDelta[j] {
			s1 = append(s1, dPoc)
			s1Used = append(s1Used, used[j])
		}
	}
	if deltaRps > 0 && useDelta[numDeltaPocs] {
		s1 = append(s1, deltaRps)
		s1Used = append(s1Used, used[numDeltaPocs])
	}
	for j := 0; j < len(refS1); j++ {
		dPoc := refS1[j] + deltaRps
		if dPoc > 0 && useDelta[numNeg+j] {
			s1 = append(s1, dPoc)
			s1Used = append(s1Used, used[numNeg+j])
		}
	}

	var err error
	if s.NegativePics, err = encodeDeltaPocs(s0, s0Used, true); err != nil {
		return s, err
	}
	if s.PositivePics, err = encodeDeltaPocs(s1, s1Used, false); err != nil {
		return s, err
	}
	return s, nil
}

// encodeDeltaPocs converts absolute POC deltas back to the differential
// minus-one form used by RefPicEntry. The derivation produces deltas that
// are strictly monotonic, so the differences are always at least one.
func encodeDeltaPocs(deltas []int64, used []bool, negative bool) ([]RefPicEntry, error) {
	if len(deltas) == 0 {
		return nil, nil
	}
	entries := make([]RefPicEntry, 0, len(deltas))
	var prev int64
	for i, d := range deltas {
		diff := d - prev
		if negative {
			diff = prev - d
		}
		prev = d
		minus1 := diff - 1
		if minus1 < 0 || minus1 > math.MaxUint32 {
			return nil, FieldValueTooLargeError{Name: "derived delta POC", Value: uint64(diff)}
		}
		entries = append(entries, RefPicEntry{
			DeltaPocMinus1: uint32(minus1),
			UsedByCurrPic:  used[i],
		})
	}
	return entries, nil
}

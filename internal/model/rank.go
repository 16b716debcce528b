package model

import "errors"

// Taxonomy errors.
var (
	ErrUnknownBelt      = errors.New("belt is not part of the program's taxonomy")
	ErrIncomparableRank = errors.New("ranks from different programs cannot be compared")
)

// Program selects which belt taxonomy applies to a member.
// A member's program is fixed by their profile and never changes via promotion.
type Program string

const (
	ProgramAdult Program = "adult"
	ProgramKids  Program = "kids"
)

// Belt is a belt color within a program's ordered sequence.
type Belt string

// Adult program belts.
const (
	BeltWhite  Belt = "white"
	BeltBlue   Belt = "blue"
	BeltPurple Belt = "purple"
	BeltBrown  Belt = "brown"
	BeltBlack  Belt = "black"
)

// Kids program belts (IBJJF 13-step sequence, solid and half colors).
const (
	BeltGreyWhite   Belt = "grey-white"
	BeltGrey        Belt = "grey"
	BeltGreyBlack   Belt = "grey-black"
	BeltYellowWhite Belt = "yellow-white"
	BeltYellow      Belt = "yellow"
	BeltYellowBlack Belt = "yellow-black"
	BeltOrangeWhite Belt = "orange-white"
	BeltOrange      Belt = "orange"
	BeltOrangeBlack Belt = "orange-black"
	BeltGreenWhite  Belt = "green-white"
	BeltGreen       Belt = "green"
	BeltGreenBlack  Belt = "green-black"
)

// adultBelts and kidsBelts are the ordered taxonomies. Index is the ordinal.
// Ordinals are only meaningful within a single program; Rank carries the
// program tag so the two sequences are never compared against each other.
var (
	adultBelts = []Belt{BeltWhite, BeltBlue, BeltPurple, BeltBrown, BeltBlack}
	kidsBelts  = []Belt{
		BeltWhite,
		BeltGreyWhite, BeltGrey, BeltGreyBlack,
		BeltYellowWhite, BeltYellow, BeltYellowBlack,
		BeltOrangeWhite, BeltOrange, BeltOrangeBlack,
		BeltGreenWhite, BeltGreen, BeltGreenBlack,
	}
)

// Belts returns the ordered belt sequence for a program.
// Unknown programs return nil.
func Belts(program Program) []Belt {
	switch program {
	case ProgramAdult:
		return adultBelts
	case ProgramKids:
		return kidsBelts
	default:
		return nil
	}
}

// Ordinal returns the position of belt within the program's sequence.
// Returns ErrUnknownBelt if the belt is not part of the program.
func Ordinal(program Program, belt Belt) (int, error) {
	for i, b := range Belts(program) {
		if b == belt {
			return i, nil
		}
	}
	return 0, ErrUnknownBelt
}

// MaxStripes returns the stripe capacity for a program: 4 for adults,
// 12 for kids. The kids 3x4 cosmetic banding is a presentation concern
// and is not enforced here.
func MaxStripes(program Program) int {
	if program == ProgramKids {
		return 12
	}
	return 4
}

// IsValid reports whether (belt, stripes) is a legal rank for the program.
func IsValid(program Program, belt Belt, stripes int) bool {
	if _, err := Ordinal(program, belt); err != nil {
		return false
	}
	return stripes >= 0 && stripes <= MaxStripes(program)
}

// Rank is a member's position within their program's taxonomy.
type Rank struct {
	Program Program `json:"program"`
	Belt    Belt    `json:"belt"`
	Stripes int     `json:"stripes"`
}

// IsAdvancement reports whether moving from to next is a forward step:
// a higher belt, or more stripes on the same belt. Both ranks must belong
// to the same program; comparing across programs fails with
// ErrIncomparableRank.
func IsAdvancement(from, to Rank) (bool, error) {
	if from.Program != to.Program {
		return false, ErrIncomparableRank
	}
	fromOrd, err := Ordinal(from.Program, from.Belt)
	if err != nil {
		return false, err
	}
	toOrd, err := Ordinal(to.Program, to.Belt)
	if err != nil {
		return false, err
	}
	if toOrd != fromOrd {
		return toOrd > fromOrd, nil
	}
	return to.Stripes > from.Stripes, nil
}

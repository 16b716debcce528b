package model

import (
	"errors"
	"testing"
)

func TestOrdinalAdultSequence(t *testing.T) {
	want := []Belt{BeltWhite, BeltBlue, BeltPurple, BeltBrown, BeltBlack}
	for i, belt := range want {
		got, err := Ordinal(ProgramAdult, belt)
		if err != nil {
			t.Fatalf("Ordinal(adult, %s): %v", belt, err)
		}
		if got != i {
			t.Errorf("Ordinal(adult, %s) = %d, want %d", belt, got, i)
		}
	}
}

func TestOrdinalKidsSequenceLength(t *testing.T) {
	belts := Belts(ProgramKids)
	if len(belts) != 13 {
		t.Fatalf("kids taxonomy has %d belts, want 13", len(belts))
	}
	if belts[0] != BeltWhite {
		t.Errorf("kids sequence starts at %s, want white", belts[0])
	}
	if belts[12] != BeltGreenBlack {
		t.Errorf("kids sequence ends at %s, want green-black", belts[12])
	}
}

func TestOrdinalUnknownBelt(t *testing.T) {
	if _, err := Ordinal(ProgramAdult, BeltGrey); !errors.Is(err, ErrUnknownBelt) {
		t.Errorf("Ordinal(adult, grey) error = %v, want ErrUnknownBelt", err)
	}
	if _, err := Ordinal(ProgramKids, BeltPurple); !errors.Is(err, ErrUnknownBelt) {
		t.Errorf("Ordinal(kids, purple) error = %v, want ErrUnknownBelt", err)
	}
	if _, err := Ordinal(Program("unknown"), BeltWhite); !errors.Is(err, ErrUnknownBelt) {
		t.Errorf("Ordinal(unknown, white) error = %v, want ErrUnknownBelt", err)
	}
}

func TestMaxStripes(t *testing.T) {
	if got := MaxStripes(ProgramAdult); got != 4 {
		t.Errorf("MaxStripes(adult) = %d, want 4", got)
	}
	if got := MaxStripes(ProgramKids); got != 12 {
		t.Errorf("MaxStripes(kids) = %d, want 12", got)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name    string
		program Program
		belt    Belt
		stripes int
		want    bool
	}{
		{"adult white no stripes", ProgramAdult, BeltWhite, 0, true},
		{"adult black max stripes", ProgramAdult, BeltBlack, 4, true},
		{"adult stripes over cap", ProgramAdult, BeltBlue, 5, false},
		{"negative stripes", ProgramAdult, BeltBlue, -1, false},
		{"adult belt not in kids program", ProgramKids, BeltPurple, 0, false},
		{"kids half color", ProgramKids, BeltYellowWhite, 7, true},
		{"kids stripe cap", ProgramKids, BeltGrey, 12, true},
		{"kids stripes over cap", ProgramKids, BeltGrey, 13, false},
		{"kids belt not in adult program", ProgramAdult, BeltGreyBlack, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.program, tt.belt, tt.stripes); got != tt.want {
				t.Errorf("IsValid(%s, %s, %d) = %v, want %v", tt.program, tt.belt, tt.stripes, got, tt.want)
			}
		})
	}
}

func TestIsValidExhaustive(t *testing.T) {
	for _, program := range []Program{ProgramAdult, ProgramKids} {
		for _, belt := range Belts(program) {
			for stripes := 0; stripes <= MaxStripes(program); stripes++ {
				if !IsValid(program, belt, stripes) {
					t.Errorf("IsValid(%s, %s, %d) = false, want true", program, belt, stripes)
				}
			}
			if IsValid(program, belt, MaxStripes(program)+1) {
				t.Errorf("IsValid(%s, %s, %d) = true beyond stripe cap", program, belt, MaxStripes(program)+1)
			}
		}
	}
}

func TestIsAdvancement(t *testing.T) {
	tests := []struct {
		name string
		from Rank
		to   Rank
		want bool
	}{
		{
			"belt up",
			Rank{ProgramAdult, BeltWhite, 4},
			Rank{ProgramAdult, BeltBlue, 0},
			true,
		},
		{
			"stripe up same belt",
			Rank{ProgramAdult, BeltBlue, 1},
			Rank{ProgramAdult, BeltBlue, 2},
			true,
		},
		{
			"stripe down same belt",
			Rank{ProgramAdult, BeltBlue, 2},
			Rank{ProgramAdult, BeltBlue, 1},
			false,
		},
		{
			"belt down",
			Rank{ProgramAdult, BeltPurple, 0},
			Rank{ProgramAdult, BeltBlue, 4},
			false,
		},
		{
			"kids half color step",
			Rank{ProgramKids, BeltGrey, 0},
			Rank{ProgramKids, BeltGreyBlack, 0},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsAdvancement(tt.from, tt.to)
			if err != nil {
				t.Fatalf("IsAdvancement: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsAdvancement = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsAdvancementCrossProgram(t *testing.T) {
	_, err := IsAdvancement(
		Rank{ProgramAdult, BeltWhite, 0},
		Rank{ProgramKids, BeltGrey, 0},
	)
	if !errors.Is(err, ErrIncomparableRank) {
		t.Errorf("cross-program comparison error = %v, want ErrIncomparableRank", err)
	}
}

package utils

import (
	"math"
	"testing"
)

func TestIsValidInput(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{"hello", true},
		{"úpěl", true},
		{"user-name", true},
		{"word2vec", true},
		{"", false},
		{"12345", false},
		{"email@example", false},
		{"www", false},
		{"ééé", false},
		{"ww", true},
		{"\xff\xfe", false},
	}

	for _, tc := range testCases {
		if got := IsValidInput(tc.input); got != tc.expected {
			t.Errorf("IsValidInput(%q) = %v, want %v", tc.input, got, tc.expected)
		}
	}
}

func TestFormatWithCommas(t *testing.T) {
	testCases := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{65535, "65,535"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
		{-12, "-12"},
	}

	for _, tc := range testCases {
		if got := FormatWithCommas(tc.input); got != tc.expected {
			t.Errorf("FormatWithCommas(%d) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestCreateRankList(t *testing.T) {
	if got := CreateRankList(0); len(got) != 0 {
		t.Fatalf("CreateRankList(0) = %v, want empty", got)
	}
	ranks := CreateRankList(4)
	for i, r := range ranks {
		if int(r) != i+1 {
			t.Errorf("rank at %d = %d, want %d", i, r, i+1)
		}
	}

	long := CreateRankList(math.MaxUint16 + 5)
	if got := long[math.MaxUint16-1]; got != math.MaxUint16 {
		t.Errorf("rank at %d = %d, want %d", math.MaxUint16-1, got, math.MaxUint16)
	}
	if got := long[len(long)-1]; got != math.MaxUint16 {
		t.Errorf("last rank = %d, want %d (no wrap)", got, math.MaxUint16)
	}
}

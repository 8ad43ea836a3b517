package validation

import (
	"strings"
	"testing"
)

type testStruct struct {
	ISBN  string  `json:"isbn" validate:"notblank"`
	Cogs  *string `json:"cogs" validate:"required"`
	Month int     `json:"month" validate:"gte=1,lte=12"`
	Limit int     `validate:"min=1"`
}

func ptr(s string) *string { return &s }

func TestStruct_ValidInput(t *testing.T) {
	s := testStruct{ISBN: "9780123456789", Cogs: ptr("4.50"), Month: 2, Limit: 20}

	if errs := Struct(s); len(errs) != 0 {
		t.Errorf("Expected no validation errors, got %v", errs)
	}
}

func TestStruct_MandatoryFields(t *testing.T) {
	testCases := []struct {
		name string
		isbn string
	}{
		{"empty", ""},
		{"whitespace", "   \t"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Struct(testStruct{ISBN: tc.isbn, Month: 1, Limit: 1})

			hasISBN, hasCogs := false, false
			for _, e := range errs {
				if e.Field == "isbn" && strings.Contains(e.Message, "mandatory") {
					hasISBN = true
				}
				if e.Field == "cogs" && strings.Contains(e.Message, "mandatory") {
					hasCogs = true
				}
			}
			if !hasISBN {
				t.Errorf("Expected isbn error, got %v", errs)
			}
			if !hasCogs {
				t.Errorf("Expected cogs error, got %v", errs)
			}
		})
	}
}

func TestStruct_MonthRange(t *testing.T) {
	testCases := []struct {
		month int
		valid bool
	}{
		{0, false},
		{1, true},
		{12, true},
		{13, false},
		{-4, false},
	}

	for _, tc := range testCases {
		errs := Struct(testStruct{ISBN: "x", Cogs: ptr("1"), Month: tc.month, Limit: 1})
		hasMonthError := false
		for _, e := range errs {
			if e.Field == "month" {
				hasMonthError = true
			}
		}
		if tc.valid && hasMonthError {
			t.Errorf("Month %d should be valid but got error", tc.month)
		}
		if !tc.valid && !hasMonthError {
			t.Errorf("Month %d should be invalid but no error", tc.month)
		}
	}
}

func TestStruct_FallsBackToGoFieldName(t *testing.T) {
	errs := Struct(testStruct{ISBN: "x", Cogs: ptr("1"), Month: 1, Limit: 0})
	if len(errs) != 1 || errs[0].Field != "Limit" {
		t.Fatalf("Expected a single Limit error, got %v", errs)
	}
	if !strings.Contains(errs[0].Message, "at least 1") {
		t.Errorf("Unexpected message %q", errs[0].Message)
	}
}

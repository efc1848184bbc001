// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

type testRequest struct {
	Title  string   `validate:"required,max=20"`
	Limit  int      `validate:"min=0,max=100"`
	Offset int      `validate:"min=0"`
	Fields []string `validate:"max=3,dive,recfield"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		input      testRequest
		wantFields []string
		wantMsg    string
	}{
		{
			name:  "valid",
			input: testRequest{Title: "Sherlock", Limit: 10, Fields: []string{"type", "release_year"}},
		},
		{
			name:  "zero values except title",
			input: testRequest{Title: "x"},
		},
		{
			name:       "missing title",
			input:      testRequest{},
			wantFields: []string{"Title"},
			wantMsg:    "Title is required",
		},
		{
			name:       "title too long",
			input:      testRequest{Title: strings.Repeat("x", 21)},
			wantFields: []string{"Title"},
			wantMsg:    "Title must be at most 20 characters",
		},
		{
			name:       "limit out of range",
			input:      testRequest{Title: "x", Limit: 101},
			wantFields: []string{"Limit"},
			wantMsg:    "Limit must be at most 100",
		},
		{
			name:       "negative offset",
			input:      testRequest{Title: "x", Offset: -1},
			wantFields: []string{"Offset"},
			wantMsg:    "Offset must be at least 0",
		},
		{
			name:       "unknown field name",
			input:      testRequest{Title: "x", Fields: []string{"type", "budget"}},
			wantFields: []string{"Fields[1]"},
			wantMsg:    "Fields[1] must name a title field",
		},
		{
			name:       "too many fields",
			input:      testRequest{Title: "x", Fields: []string{"type", "cast", "rating", "duration"}},
			wantFields: []string{"Fields"},
			wantMsg:    "Fields must be at most 3 items",
		},
		{
			name:       "several failures",
			input:      testRequest{Limit: -5},
			wantFields: []string{"Title", "Limit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.input)
			if len(tt.wantFields) == 0 {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want errors")
			}
			if len(verr.Fields) != len(tt.wantFields) {
				t.Errorf("got %d errors (%v), want %d", len(verr.Fields), verr, len(tt.wantFields))
			}
			for _, f := range tt.wantFields {
				if !verr.HasField(f) {
					t.Errorf("missing error for field %s in %v", f, verr)
				}
			}
			if tt.wantMsg != "" && verr.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", verr.Error(), tt.wantMsg)
			}
		})
	}
}

func TestFieldErrorDetails(t *testing.T) {
	verr := ValidateStruct(&testRequest{Title: "x", Limit: 500})
	if verr == nil {
		t.Fatal("expected an error")
	}

	e := verr.Fields[0]
	if e.Field != "Limit" || e.Tag != "max" || e.Param != "100" || e.Value != 500 {
		t.Errorf("error = %+v", e)
	}
}

func TestRequestValidationErrorEmpty(t *testing.T) {
	verr := &RequestValidationError{}
	if verr.Error() != "validation failed" {
		t.Errorf("Error() = %q", verr.Error())
	}
}

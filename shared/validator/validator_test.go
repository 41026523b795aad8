package validator_test

import (
	"roost/shared/validator"
	"strings"
	"testing"
)

type createBookingPayload struct {
	CheckIn  string `json:"check_in"  validate:"required"`
	CheckOut string `json:"check_out" validate:"required"`
	Guests   int    `json:"guests"    validate:"required,gt=0"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name:    "valid payload",
			body:    `{"check_in":"2024-03-10","check_out":"2024-03-15","guests":2}`,
			wantErr: false,
		},
		{
			name:    "missing required field",
			body:    `{"check_in":"2024-03-10","guests":2}`,
			wantErr: true,
		},
		{
			name:    "zero guests",
			body:    `{"check_in":"2024-03-10","check_out":"2024-03-15","guests":0}`,
			wantErr: true,
		},
		{
			name:    "negative guests",
			body:    `{"check_in":"2024-03-10","check_out":"2024-03-15","guests":-1}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{"check_in":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := createBookingPayload{}
			err := validator.Validate(strings.NewReader(tt.body), &payload)

			if tt.wantErr && err == nil {
				t.Error("expected an error, got nil")
			}

			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar(3, "gt=0"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := validator.ValidateVar(0, "gt=0"); err == nil {
		t.Error("expected an error, got nil")
	}
}

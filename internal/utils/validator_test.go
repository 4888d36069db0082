// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong_password"`
	Rating   int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

func TestValidateStructValid(t *testing.T) {
	req := sampleRequest{
		Email:    "shopper@example.com",
		Password: "Str0ng!Pass",
		Rating:   4,
	}

	assert.NoError(t, ValidateStruct(&req))
}

func TestValidateStructMissingRequired(t *testing.T) {
	req := sampleRequest{}

	err := ValidateStruct(&req)
	assert.Error(t, err)

	validationErrors := GetValidationErrors(err)
	assert.Len(t, validationErrors, 2)
	assert.Equal(t, "email", validationErrors[0].Field)
	assert.Equal(t, "required", validationErrors[0].Tag)
	assert.Contains(t, validationErrors[0].Message, "is required")
}

func TestStrongPasswordRules(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"Str0ng!Pass", true},
		{"short1!", false},          // too short
		{"alllowercase1!", false},   // no uppercase
		{"ALLUPPERCASE1!", false},   // no lowercase
		{"NoNumbersHere!", false},   // no digit
		{"NoSpecials123", false},    // no symbol
		{"An0ther$Secret", true},
	}

	for _, tc := range cases {
		req := sampleRequest{Email: "shopper@example.com", Password: tc.password}
		err := ValidateStruct(&req)
		if tc.valid {
			assert.NoError(t, err, "password %q should be accepted", tc.password)
		} else {
			assert.Error(t, err, "password %q should be rejected", tc.password)
		}
	}
}

func TestGetValidationErrorsRangeMessages(t *testing.T) {
	req := sampleRequest{
		Email:    "shopper@example.com",
		Password: "Str0ng!Pass",
		Rating:   9,
	}

	validationErrors := GetValidationErrors(ValidateStruct(&req))
	assert.Len(t, validationErrors, 1)
	assert.Equal(t, "rating", validationErrors[0].Field)
	assert.Equal(t, "max", validationErrors[0].Tag)
	assert.Contains(t, validationErrors[0].Message, "at most 5")
}

func TestGetValidationErrorsNonValidatorError(t *testing.T) {
	assert.Empty(t, GetValidationErrors(nil))
	assert.Empty(t, GetValidationErrors(assert.AnError))
}

package checkout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validForm() Form {
	return Form{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@example.com",
		Phone:     "+234 801 234 5678",
		Address:   "123 Main Street",
		City:      "Lagos",
		State:     "Lagos",
		Notes:     "Please handle with care",
	}
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	form := validForm()
	require.Empty(t, v.Validate(&form))
}

func TestValidateRequiredFieldsInDeclarationOrder(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	form := Form{}
	errs := v.Validate(&form)
	require.Len(t, errs, 7)
	require.Equal(t, "FirstName", errs[0].Field)
	require.Equal(t, "First Name is required", errs[0].Message)
	require.Equal(t, "State", errs[6].Field)
}

func TestValidateTrimsBeforeChecking(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	form := validForm()
	form.City = "   "
	errs := v.Validate(&form)
	require.Len(t, errs, 1)
	require.Equal(t, "City is required", errs[0].Message)
}

func TestValidateRejectsBadEmail(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	form := validForm()
	form.Email = "john.doe-at-example"
	errs := v.Validate(&form)
	require.Len(t, errs, 1)
	require.Equal(t, "Please enter a valid email address", errs[0].Message)
}

func TestValidateRejectsBadPhone(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	form := validForm()
	form.Phone = "123"
	errs := v.Validate(&form)
	require.Len(t, errs, 1)
	require.Equal(t, "Please enter a valid phone number", errs[0].Message)
}

func TestValidateNotesOptional(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	form := validForm()
	form.Notes = ""
	require.Empty(t, v.Validate(&form))
}

func TestValidPhonePatterns(t *testing.T) {
	valid := []string{
		"0801 234 5678",
		"08012345678",
		"+2348012345678",
		"+234 901 234 5678",
		"07012345678",
	}
	for _, number := range valid {
		require.True(t, ValidPhone(number), number)
	}

	invalid := []string{
		"123",
		"0601 234 5678",
		"+1 555 0100",
		"080123456",
		"0851234567890",
	}
	for _, number := range invalid {
		require.False(t, ValidPhone(number), number)
	}
}

package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingInput struct {
	PatientName string `json:"patientName" validate:"required,notblank,max=10"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required,datetime=15:04"`
	Rating      int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Status      string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
}

func validInput() bookingInput {
	return bookingInput{PatientName: "Asha", Date: "2026-10-20", Time: "09:30"}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	return valErr.Fields()
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(validInput()))
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	in := validInput()
	in.PatientName = ""

	fields := fieldsOf(t, Validate(in))
	assert.Equal(t, "is required", fields["patientName"])
}

func TestValidate_DatetimeLayouts(t *testing.T) {
	in := validInput()
	in.Date = "20/10/2026"
	in.Time = "9.30am"

	fields := fieldsOf(t, Validate(in))
	assert.Equal(t, "must match the layout 2006-01-02", fields["date"])
	assert.Equal(t, "must match the layout 15:04", fields["time"])
}

func TestValidate_NumericAndStringBounds(t *testing.T) {
	in := validInput()
	in.Rating = 7
	in.PatientName = "Bartholomew Jones"

	fields := fieldsOf(t, Validate(in))
	assert.Equal(t, "must be at most 5", fields["rating"])
	assert.Equal(t, "must be at most 10 characters", fields["patientName"])
}

func TestValidate_OneOf(t *testing.T) {
	in := validInput()
	in.Status = "pending"

	fields := fieldsOf(t, Validate(in))
	assert.Contains(t, fields["status"], "scheduled completed cancelled")
}

func TestValidate_BlankCountsAsMissing(t *testing.T) {
	in := validInput()
	in.PatientName = "   "

	fields := fieldsOf(t, Validate(in))
	assert.Equal(t, "is required", fields["patientName"])
}

func TestValidationError_Error(t *testing.T) {
	in := validInput()
	in.Date = ""

	var valErr *ValidationError
	require.ErrorAs(t, Validate(in), &valErr)
	assert.Contains(t, valErr.Error(), "field 'date' is required")
}

package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
)

func TestPatchStudentRequestTriState(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		present   bool
		valid     bool
		counselor string
	}{
		{"absent", `{"full_name":"New Name"}`, false, false, ""},
		{"explicit null", `{"assigned_counselor_id":null}`, true, false, ""},
		{"value", `{"assigned_counselor_id":"7c9e6679-7425-40de-944b-e07fc1f90ae7"}`, true, true, "7c9e6679-7425-40de-944b-e07fc1f90ae7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p PatchStudentRequest
			require.NoError(t, json.Unmarshal([]byte(tc.body), &p))
			assert.Equal(t, tc.present, p.AssignedCounselorID.Present)
			assert.Equal(t, tc.valid, p.AssignedCounselorID.Value.Valid)
			assert.Equal(t, tc.counselor, p.AssignedCounselorID.Value.Value)
		})
	}
}

func TestPatchStudentRequestValidate(t *testing.T) {
	v := helper.NewValidator()

	var ok PatchStudentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"full_name":"  Meera Shah ","documents":{"sop":true}}`), &ok))
	ok.Normalize()
	assert.Nil(t, ok.Validate(v))
	assert.Equal(t, "Meera Shah", ok.FullName.Value)

	var bad PatchStudentRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"full_name":"Al",
		"dob":"2999-01-01",
		"application_path":"Agent",
		"assigned_counselor_id":"nope",
		"university_choices":[{"university_name":"UC","course_name":"MSc","intake_month":"Sep"}]
	}`), &bad))
	bad.Normalize()
	errs := bad.Validate(v)
	require.NotNil(t, errs)
	for _, k := range []string{"full_name", "dob", "application_path", "assigned_counselor_id"} {
		assert.Contains(t, errs, k)
	}
	assert.Contains(t, errs, "university_choices[0].university_name")
}

func TestCreateStudentRequestValidation(t *testing.T) {
	v := helper.NewValidator()
	req := CreateStudentRequest{
		FullName:      "Rohan Verma",
		EmailAddress:  " Rohan@Example.com ",
		PhoneNumber:   "9876543210",
		DOB:           "1999-12-01",
		TargetCountry: "Germany",
		DegreeType:    "Masters",
		UniversityChoices: []UniversityChoiceRequest{{
			UniversityName: "TU Munich",
			CourseName:     "MSc Informatics",
			IntakeMonth:    "October",
		}},
	}
	req.Normalize()
	require.NoError(t, v.Struct(&req))
	assert.Equal(t, "rohan@example.com", req.EmailAddress)
	assert.Equal(t, "Direct", req.ApplicationPath)

	req.UniversityChoices = nil
	err := v.Struct(&req)
	require.Error(t, err)
	assert.Contains(t, helper.ValidationErrors(err), "university_choices")
}

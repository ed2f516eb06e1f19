package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_Signup(t *testing.T) {
	ok := SignupRequest{Email: "ada@uni.test", Password: "password1", Name: "Ada", Role: "student"}
	assert.Nil(t, Validate(ok))

	bad := SignupRequest{Email: "not-an-email", Password: "short", Role: "admin"}
	errs := Validate(bad)
	assert.ElementsMatch(t, []FieldError{
		{Field: "email", Rule: "email"},
		{Field: "password", Rule: "min"},
		{Field: "name", Rule: "required"},
		{Field: "role", Rule: "oneof"},
	}, errs)
}

func TestValidate_NestedProjects(t *testing.T) {
	req := ProjectsRequest{Projects: []ProjectRequest{{Title: "ok"}, {Title: ""}}}
	errs := Validate(req)
	assert.Equal(t, []FieldError{{Field: "projects[1].title", Rule: "required"}}, errs)
}

func TestValidate_StudentProfile(t *testing.T) {
	req := StudentProfileRequest{Name: "Ada", GraduationYear: "26", InternshipTypePreference: "volunteer"}
	errs := Validate(req)
	assert.ElementsMatch(t, []FieldError{
		{Field: "graduation_year", Rule: "len"},
		{Field: "internship_type_preference", Rule: "oneof"},
	}, errs)
}

func TestVerifyOTPRequest(t *testing.T) {
	assert.Nil(t, Validate(VerifyOTPRequest{Email: "hr@acme.test", OTP: "123456"}))
	assert.NotNil(t, Validate(VerifyOTPRequest{Email: "hr@acme.test", OTP: "12a456"}))
}

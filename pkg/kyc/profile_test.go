package kyc

import (
	"reflect"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestMergeIsIdempotent(t *testing.T) {
	p := Profile{}
	e := Extracted{Name: strPtr("Jo Doe"), Email: strPtr("JO@Example.COM")}

	p.Merge(e)
	p.Merge(e)

	if p.Name != "Jo Doe" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Email != "jo@example.com" {
		t.Errorf("Email = %q, want lowercased", p.Email)
	}
}

func TestMergeIgnoresNilAndEmpty(t *testing.T) {
	p := Profile{Name: "Kept", Mobile: "01012345678"}
	p.Merge(Extracted{Name: nil, Mobile: strPtr("  ")})

	if p.Name != "Kept" || p.Mobile != "01012345678" {
		t.Errorf("existing values were clobbered: %+v", p)
	}
}

func TestValidateDropsInvalidFields(t *testing.T) {
	p := Profile{
		Name:     "X1",       // digits not allowed
		Email:    "not-an-email",
		Mobile:   "123",      // too short
		Faculty:  "engineering",
		Password: "secret1",
	}

	errs := p.Validate()
	if len(errs) != 3 {
		t.Fatalf("want 3 validation errors, got %d: %v", len(errs), errs)
	}
	if p.Name != "" || p.Email != "" || p.Mobile != "" {
		t.Errorf("invalid fields should be cleared: %+v", p)
	}
	if p.Faculty == "" || p.Password == "" {
		t.Errorf("valid fields must survive: %+v", p)
	}
}

func TestMissingOrder(t *testing.T) {
	p := Profile{Email: "a@b.com", Password: "123456"}
	want := []string{"name", "mobile", "faculty"}
	if got := p.Missing(); !reflect.DeepEqual(got, want) {
		t.Errorf("Missing() = %v, want %v", got, want)
	}
}

func TestCompleteProfile(t *testing.T) {
	p := Profile{
		Name:     "Jo",
		Email:    "a@b.com",
		Mobile:   "01012345678",
		Faculty:  "engineering",
		Password: "123456",
	}
	if errs := p.Validate(); len(errs) != 0 {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if !p.Complete() {
		t.Error("profile should be complete")
	}
}

func TestStringMasksPassword(t *testing.T) {
	p := Profile{Name: "Jo", Password: "supersecret"}
	s := p.String()
	if strings.Contains(s, "supersecret") {
		t.Errorf("String() leaked the password: %s", s)
	}
	if !strings.Contains(s, "password: (provided)") {
		t.Errorf("String() = %s", s)
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name  string
		check func(string) bool
		value string
		want  bool
	}{
		{"name with space", ValidName, "Jo Doe", true},
		{"name minimum two letters", ValidName, "Jo", true},
		{"name single letter", ValidName, "J", false},
		{"name with digits", ValidName, "Jo2", false},
		{"arabic name rejected by pattern", ValidName, "جو", false},
		{"good email", ValidEmail, "a@b.com", true},
		{"email missing tld", ValidEmail, "a@b", false},
		{"email missing at", ValidEmail, "ab.com", false},
		{"egyptian mobile", ValidMobile, "01012345678", true},
		{"mobile with plus", ValidMobile, "+201012345678", true},
		{"mobile too short", ValidMobile, "0101234", false},
		{"mobile with letters", ValidMobile, "0101234567a", false},
		{"canonical faculty", ValidFaculty, "Engineering", true},
		{"free-form faculty", ValidFaculty, "Arts & Design", true},
		{"faculty too short", ValidFaculty, "E", false},
		{"faculty with digits", ValidFaculty, "Eng123", false},
		{"password six chars", ValidPassword, "123456", true},
		{"password five chars", ValidPassword, "12345", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.value); got != tt.want {
				t.Errorf("check(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

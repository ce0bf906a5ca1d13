package kyc

import "strings"

// RequiredFields in collection order. Guidance messages list missing
// fields in this order.
var RequiredFields = []string{"name", "email", "mobile", "faculty", "password"}

// Faculties the university currently admits into. Matching is
// case-insensitive; close variants are accepted by the validator.
var Faculties = []string{
	"oral and dental",
	"pharmacy",
	"commerce and business administration",
	"engineering",
	"computer science",
	"economics and political science",
}

// Profile is the registration data accumulated across an unauthenticated
// conversation. Empty string means not yet collected.
type Profile struct {
	Name     string
	Email    string
	Mobile   string
	Faculty  string
	Password string
}

// Extracted is the per-message extraction result. Nil means the field was
// absent from the message; merging ignores nil and empty values, so
// re-processing the same message is idempotent.
type Extracted struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Mobile   *string `json:"mobile"`
	Faculty  *string `json:"faculty"`
	Password *string `json:"password"`
}

// Merge folds newly extracted values into the profile. Only non-empty
// extracted values overwrite; collected fields are never cleared.
func (p *Profile) Merge(e Extracted) {
	if v := deref(e.Name); v != "" {
		p.Name = v
	}
	if v := deref(e.Email); v != "" {
		p.Email = strings.ToLower(v)
	}
	if v := deref(e.Mobile); v != "" {
		p.Mobile = v
	}
	if v := deref(e.Faculty); v != "" {
		p.Faculty = v
	}
	if v := deref(e.Password); v != "" {
		p.Password = v
	}
}

// Validate drops fields that fail validation and returns one message per
// dropped field. An invalid value is cleared so the user is asked again.
func (p *Profile) Validate() []string {
	var errs []string
	if p.Name != "" && !ValidName(p.Name) {
		errs = append(errs, "Invalid name: "+p.Name)
		p.Name = ""
	}
	if p.Email != "" && !ValidEmail(p.Email) {
		errs = append(errs, "Invalid email: "+p.Email)
		p.Email = ""
	}
	if p.Mobile != "" && !ValidMobile(p.Mobile) {
		errs = append(errs, "Invalid mobile: "+p.Mobile)
		p.Mobile = ""
	}
	if p.Faculty != "" && !ValidFaculty(p.Faculty) {
		errs = append(errs, "Invalid faculty: "+p.Faculty)
		p.Faculty = ""
	}
	if p.Password != "" && !ValidPassword(p.Password) {
		errs = append(errs, "Password must be at least 6 characters long")
		p.Password = ""
	}
	return errs
}

// Missing returns the still-uncollected fields in RequiredFields order.
func (p *Profile) Missing() []string {
	var missing []string
	for _, f := range RequiredFields {
		if p.field(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Complete reports whether every required field has a validated value.
func (p *Profile) Complete() bool {
	return len(p.Missing()) == 0
}

func (p *Profile) field(name string) string {
	switch name {
	case "name":
		return p.Name
	case "email":
		return p.Email
	case "mobile":
		return p.Mobile
	case "faculty":
		return p.Faculty
	case "password":
		return p.Password
	}
	return ""
}

// String renders the profile for prompt injection with the password masked.
func (p *Profile) String() string {
	var b strings.Builder
	b.WriteString("{")
	b.WriteString("name: " + orUnset(p.Name))
	b.WriteString(", email: " + orUnset(p.Email))
	b.WriteString(", mobile: " + orUnset(p.Mobile))
	b.WriteString(", faculty: " + orUnset(p.Faculty))
	if p.Password != "" {
		b.WriteString(", password: (provided)")
	} else {
		b.WriteString(", password: (not set)")
	}
	b.WriteString("}")
	return b.String()
}

func orUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

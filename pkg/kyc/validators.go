package kyc

import (
	"regexp"
	"strings"
)

var (
	emailPattern   = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	mobilePattern  = regexp.MustCompile(`^\+?\d{10,15}$`)
	namePattern    = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	facultyPattern = regexp.MustCompile(`^[a-zA-Z\s&]+$`)
)

const minPasswordLength = 6

// ValidName accepts names of at least 2 characters, letters and spaces only.
func ValidName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return len(trimmed) >= 2 && namePattern.MatchString(trimmed)
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidMobile accepts 10-15 digits with an optional leading plus.
func ValidMobile(mobile string) bool {
	return mobilePattern.MatchString(strings.TrimSpace(mobile))
}

// ValidFaculty accepts the canonical faculties plus reasonable free-form
// names. Applicants transfer between programs often enough that a hard
// whitelist loses real registrations.
func ValidFaculty(faculty string) bool {
	trimmed := strings.TrimSpace(faculty)
	if len(trimmed) < 2 {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, f := range Faculties {
		if lower == f {
			return true
		}
	}

	return facultyPattern.MatchString(trimmed)
}

func ValidPassword(password string) bool {
	return len(strings.TrimSpace(password)) >= minPasswordLength
}

package validation

import (
	"regexp"
	"strings"
	"time"

	"perfectmatch/internal/client/models"
)

var heightRe = regexp.MustCompile(`[^\d.]`)

// NormalizeMobile strips everything but digits.
func NormalizeMobile(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

// NormalizeBloodGroup trims and upper-cases, so "o+" becomes "O+".
func NormalizeBloodGroup(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeHeight keeps digits and the decimal dot only.
func NormalizeHeight(s string) string {
	return heightRe.ReplaceAllString(s, "")
}

// NormalizeDOB reduces any parseable date input to YYYY-MM-DD.
func NormalizeDOB(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format("2006-01-02")
		}
	}
	return s
}

// Normalize returns a copy of the form with every field reduced to the shape
// the backend expects: gender label to enum, date to YYYY-MM-DD, height to
// digits/dot, blood group upper-cased, mobile to bare digits.
func Normalize(f *models.RegistrationForm) *models.RegistrationForm {
	out := *f
	out.Gender = string(models.GenderFromLabel(strings.TrimSpace(f.Gender)))
	out.DOB = NormalizeDOB(f.DOB)
	out.Height = NormalizeHeight(f.Height)
	out.BloodGroup = NormalizeBloodGroup(f.BloodGroup)
	out.Mobile = NormalizeMobile(f.Mobile)
	return &out
}

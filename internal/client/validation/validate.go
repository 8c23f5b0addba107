// Package validation enforces the field-level contracts of the registration
// and update forms before anything is sent to the backend.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"perfectmatch/internal/client/models"
	"perfectmatch/internal/filex"
)

// MaxFileMB caps each attachment upload.
const MaxFileMB = 10

// MinAge is the minimum age at submission time.
const MinAge = 18

var (
	bloodGroupRe = regexp.MustCompile(`(?i)^(A|B|AB|O)[+-]$`)
	nonDigitRe   = regexp.MustCompile(`\D`)
)

// inspectFile is a test seam for filex.Inspect.
var inspectFile = filex.Inspect

// requiredTextFields are the text fields that must be non-empty after
// trimming. Siblings, mama and kaka are optional free text.
var requiredTextFields = []string{
	"name", "gender", "dob", "birthplace", "kuldevat", "gotra",
	"height", "bloodGroup", "education", "profession",
	"fatherName", "fatherProfession", "motherName", "motherProfession",
	"address", "mobile",
}

// RequiredFields returns the required field names in form order. Attachments
// are mandatory at registration and optional on update.
func RequiredFields(update bool) []string {
	fields := make([]string, 0, len(requiredTextFields)+2)
	fields = append(fields, requiredTextFields...)
	if !update {
		fields = append(fields, "profilePhoto", "aadhaar")
	}
	return fields
}

func isEmpty(v string) bool {
	return strings.TrimSpace(v) == ""
}

// Age computes full years between a YYYY-MM-DD birth date and now,
// adjusting down when the birthday has not yet occurred this year.
func Age(dob string, now time.Time) (int, error) {
	d, err := time.Parse("2006-01-02", strings.TrimSpace(dob))
	if err != nil {
		return 0, fmt.Errorf("invalid date: %w", err)
	}
	age := now.Year() - d.Year()
	if now.Month() < d.Month() || (now.Month() == d.Month() && now.Day() < d.Day()) {
		age--
	}
	return age, nil
}

// Field validates a single text field and returns a localized message, or ""
// when the value is acceptable. File fields are handled by File.
func Field(name, value string, now time.Time) string {
	switch name {
	case "name", "birthplace", "kuldevat", "gotra", "height",
		"education", "profession", "fatherName", "fatherProfession",
		"motherName", "motherProfession", "address":
		if isEmpty(value) {
			return "हे फील्ड आवश्यक आहे"
		}
		return ""

	case "gender":
		if isEmpty(value) {
			return "लिंग निवडा"
		}
		g := models.GenderFromLabel(value)
		if g != models.GenderMale && g != models.GenderFemale {
			return "अवैध लिंग"
		}
		return ""

	case "dob":
		if isEmpty(value) {
			return "जन्म तारीख आवश्यक आहे"
		}
		age, err := Age(value, now)
		if err != nil {
			return "तारीख YYYY-MM-DD स्वरूपात टाका"
		}
		if age < MinAge {
			return "वय कमीत कमी 18 वर्षे असावे"
		}
		return ""

	case "bloodGroup":
		if isEmpty(value) {
			return "रक्तगट आवश्यक आहे"
		}
		if !bloodGroupRe.MatchString(strings.TrimSpace(value)) {
			return "उदा. A+, B-, O+, AB+"
		}
		return ""

	case "mobile":
		if isEmpty(value) {
			return "मोबाईल नंबर आवश्यक आहे"
		}
		if len(NormalizeMobile(value)) != 10 {
			return "वैध 10 अंकी नंबर टाका"
		}
		return ""

	default:
		return ""
	}
}

// File validates an attachment field against a local path. An empty path is
// an error at registration and a no-op on update (keep the existing file).
func File(name, path string, update bool) string {
	if isEmpty(path) {
		if update {
			return ""
		}
		if name == "profilePhoto" {
			return "प्रोफाइल फोटो आवश्यक आहे"
		}
		return "आधार कार्ड आवश्यक आहे"
	}

	info, err := inspectFile(path)
	if err != nil {
		return "फाइल वाचता आली नाही"
	}

	isImg := strings.HasPrefix(info.ContentType, "image/")
	switch name {
	case "profilePhoto":
		if !isImg {
			return "फक्त इमेज फाइल निवडा"
		}
	case "aadhaar":
		if !isImg && info.ContentType != "application/pdf" {
			return "इमेज किंवा PDF निवडा"
		}
	}

	if info.Size > MaxFileMB*1024*1024 {
		return fmt.Sprintf("फाइल %dMB पेक्षा कमी असावी", MaxFileMB)
	}
	return ""
}

// Form runs every required field through its rule and returns a map of field
// name to message for the failures only. An empty map means the form may be
// submitted.
func Form(f *models.RegistrationForm, update bool, now time.Time) map[string]string {
	errs := make(map[string]string)
	for _, name := range requiredTextFields {
		if msg := Field(name, f.Field(name), now); msg != "" {
			errs[name] = msg
		}
	}
	for _, name := range []string{"profilePhoto", "aadhaar"} {
		if msg := File(name, f.Field(name), update); msg != "" {
			errs[name] = msg
		}
	}
	return errs
}

// Completion reports the filled share of required fields as a rounded
// percentage, purely for progress display.
func Completion(f *models.RegistrationForm, update bool) int {
	fields := RequiredFields(update)
	done := 0
	for _, name := range fields {
		if !isEmpty(f.Field(name)) {
			done++
		}
	}
	return int(float64(done)/float64(len(fields))*100 + 0.5)
}

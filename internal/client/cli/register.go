package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"perfectmatch/internal/client/models"
	"perfectmatch/internal/client/services"
	"perfectmatch/internal/client/validation"
)

// fieldDef pairs a multipart part name with its interactive prompt.
type fieldDef struct {
	name   string
	prompt string
}

var textFields = []fieldDef{
	{"name", "Full name"},
	{"gender", "Gender (पुरुष/महिला)"},
	{"dob", "Date of birth (YYYY-MM-DD)"},
	{"birthplace", "Birthplace"},
	{"kuldevat", "Kuldevat"},
	{"gotra", "Gotra"},
	{"height", "Height (e.g. 5.8)"},
	{"bloodGroup", "Blood group (e.g. O+)"},
	{"education", "Education"},
	{"profession", "Profession"},
	{"fatherName", "Father's name"},
	{"fatherProfession", "Father's profession"},
	{"motherName", "Mother's name"},
	{"motherProfession", "Mother's profession"},
	{"siblings", "Siblings (optional)"},
	{"mama", "Mama (optional)"},
	{"kaka", "Kaka (optional)"},
	{"address", "Address"},
	{"mobile", "Mobile (10 digits)"},
}

var fileFields = []fieldDef{
	{"profilePhoto", "Profile photo path (image, max 10MB)"},
	{"aadhaar", "Aadhaar path (image or PDF, max 10MB)"},
}

// collectForm walks the user through every form field. Each answer is checked
// right away and re-asked until it passes, mirroring the per-field messages a
// form shows on blur. In update mode an empty answer keeps the value from
// base, and attachments may be skipped entirely.
func collectForm(reader *bufio.Reader, w io.Writer, now time.Time, update bool, base *models.RegistrationForm) (*models.RegistrationForm, error) {
	form := &models.RegistrationForm{}
	if base != nil {
		*form = *base
	}

	for _, fd := range textFields {
		prompt := fd.prompt
		if update && form.Field(fd.name) != "" {
			prompt = fmt.Sprintf("%s [%s]", fd.prompt, form.Field(fd.name))
		}
		for {
			value, err := GetSimpleText(reader, prompt, w)
			if err != nil {
				return nil, err
			}
			if value == "" && update {
				break
			}
			if msg := validation.Field(fd.name, value, now); msg != "" {
				fmt.Fprintln(w, msg)
				continue
			}
			form.SetField(fd.name, value)
			break
		}
	}

	for _, fd := range fileFields {
		prompt := fd.prompt
		if update {
			prompt += " (empty keeps the current file)"
		}
		for {
			path, err := GetSimpleText(reader, prompt, w)
			if err != nil {
				return nil, err
			}
			if msg := validation.File(fd.name, path, update); msg != "" {
				fmt.Fprintln(w, msg)
				continue
			}
			form.SetField(fd.name, path)
			break
		}
	}

	fmt.Fprintf(w, "Form completion: %d%%\n", validation.Completion(form, update))
	return form, nil
}

// progressPrinter reports multipart upload progress on a single line.
func (a *App) progressPrinter() func(loaded, total int64) {
	return func(loaded, total int64) {
		if total <= 0 {
			return
		}
		fmt.Fprintf(a.out, "\rUploading... %d%%", loaded*100/total)
		if loaded >= total {
			fmt.Fprintln(a.out)
		}
	}
}

// Register collects a fresh form, submits it and makes the new profile the
// active one for this device.
func (a *App) Register(ctx context.Context) error {
	form, err := collectForm(a.reader, a.out, time.Now(), false, nil)
	if err != nil {
		return err
	}

	id, err := a.profiles.Register(ctx, form, a.progressPrinter())
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			for field, msg := range verr.Fields {
				fmt.Fprintf(a.out, "%s: %s\n", field, msg)
			}
			return err
		}
		fmt.Fprintln(a.out, "Registration failed:", err)
		return err
	}

	fmt.Fprintf(a.out, "Registered! Your profile id is %s.\n", id)
	return a.Me(ctx)
}

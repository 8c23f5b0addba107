package cli

import (
	"context"
	"fmt"
	"io"
	"text/template"

	"perfectmatch/internal/client/models"
	"perfectmatch/internal/client/services"
)

// Biodata layouts. The classic layout mirrors the printed single-page biodata
// families exchange; detailed adds the attachment links; print wraps the
// classic sheet in the traditional header and a frame suitable for printing.
const (
	TemplateClassic  = "classic"
	TemplateDetailed = "detailed"
	TemplatePrint    = "print"
)

const classicTemplate = `----------------------------------------
नाव: {{.Name}}
लिंग: {{.Gender.Label}}
जन्मतारीख: {{.DOB}}
जन्मस्थळ: {{.Birthplace}}
कुलदैवत: {{.Kuldevat}}
गोत्र: {{.Gotra}}
उंची: {{.Height}}
रक्तगट: {{.BloodGroup}}
शिक्षण: {{.Education}}
व्यवसाय: {{.Profession}}
वडिलांचे नाव: {{.FatherName}}
वडिलांचा व्यवसाय: {{.FatherProfession}}
आईचे नाव: {{.MotherName}}
आईचा व्यवसाय: {{.MotherProfession}}
{{- if .Siblings}}
भावंडे: {{.Siblings}}
{{- end}}
{{- if .Mama}}
मामा: {{.Mama}}
{{- end}}
{{- if .Kaka}}
काका: {{.Kaka}}
{{- end}}
पत्ता: {{.Address}}
मोबाईल: {{.Mobile}}
----------------------------------------
`

const detailedTemplate = classicTemplate + `फोटो: {{if .ProfilePhotoURL}}{{.ProfilePhotoURL}}{{else}}-{{end}}
आधार: {{if .AadhaarURL}}{{.AadhaarURL}}{{else}}-{{end}}
`

const printTemplate = `========================================
        || श्री गणेशाय नमः ||
========================================
` + classicTemplate

var templates = map[string]*template.Template{
	TemplateClassic:  template.Must(template.New(TemplateClassic).Parse(classicTemplate)),
	TemplateDetailed: template.Must(template.New(TemplateDetailed).Parse(detailedTemplate)),
	TemplatePrint:    template.Must(template.New(TemplatePrint).Parse(printTemplate)),
}

// renderProfile writes the profile through the named layout. Unknown names
// fall back to the classic layout.
func renderProfile(w io.Writer, name string, p *models.Profile) error {
	tpl, ok := templates[name]
	if !ok {
		tpl = templates[TemplateClassic]
	}
	return tpl.Execute(w, p)
}

// renderProfile resolves the persisted layout choice for the device.
func (a *App) renderProfile(ctx context.Context, p *models.Profile) error {
	return renderProfile(a.out, a.device.Template(ctx), p)
}

// renderAdminPage filters, paginates and prints one page of the admin
// listing. It returns the total page count so callers can clamp navigation.
func renderAdminPage(w io.Writer, list []models.Profile, query, gender string, page int) int {
	filtered := services.FilterProfiles(list, query, gender)
	items, totalPages := services.Paginate(filtered, page)

	for _, p := range items {
		fmt.Fprintf(w, "%-6s %-24s %-8s %-20s %s\n",
			p.ID, p.Name, p.Gender.Label(), p.Profession, p.Mobile)
	}
	if len(filtered) == 0 {
		fmt.Fprintln(w, "No profiles match.")
	}
	fmt.Fprintf(w, "-- page %d/%d (%d matching) --\n", clampPage(page, totalPages), totalPages, len(filtered))
	return totalPages
}

func clampPage(page, total int) int {
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

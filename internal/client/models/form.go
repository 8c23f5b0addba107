package models

// RegistrationForm holds raw form input before normalization. Text fields
// carry whatever the user typed; the two file fields are local paths.
//
// The same shape serves both registration and update; on update the file
// paths may stay empty to keep the server-side attachments unchanged.
type RegistrationForm struct {
	Name             string
	Gender           string
	DOB              string
	Birthplace       string
	Kuldevat         string
	Gotra            string
	Height           string
	BloodGroup       string
	Education        string
	Profession       string
	FatherName       string
	FatherProfession string
	MotherName       string
	MotherProfession string
	Siblings         string
	Mama             string
	Kaka             string
	Address          string
	Mobile           string

	ProfilePhotoPath string
	AadhaarPath      string
}

// Field returns the raw value of a named text field, or the file path for
// the two attachment fields. Names match the backend's multipart part names.
func (f *RegistrationForm) Field(name string) string {
	switch name {
	case "name":
		return f.Name
	case "gender":
		return f.Gender
	case "dob":
		return f.DOB
	case "birthplace":
		return f.Birthplace
	case "kuldevat":
		return f.Kuldevat
	case "gotra":
		return f.Gotra
	case "height":
		return f.Height
	case "bloodGroup":
		return f.BloodGroup
	case "education":
		return f.Education
	case "profession":
		return f.Profession
	case "fatherName":
		return f.FatherName
	case "fatherProfession":
		return f.FatherProfession
	case "motherName":
		return f.MotherName
	case "motherProfession":
		return f.MotherProfession
	case "siblings":
		return f.Siblings
	case "mama":
		return f.Mama
	case "kaka":
		return f.Kaka
	case "address":
		return f.Address
	case "mobile":
		return f.Mobile
	case "profilePhoto":
		return f.ProfilePhotoPath
	case "aadhaar":
		return f.AadhaarPath
	default:
		return ""
	}
}

// SetField is the write counterpart of Field; unknown names are ignored.
func (f *RegistrationForm) SetField(name, value string) {
	switch name {
	case "name":
		f.Name = value
	case "gender":
		f.Gender = value
	case "dob":
		f.DOB = value
	case "birthplace":
		f.Birthplace = value
	case "kuldevat":
		f.Kuldevat = value
	case "gotra":
		f.Gotra = value
	case "height":
		f.Height = value
	case "bloodGroup":
		f.BloodGroup = value
	case "education":
		f.Education = value
	case "profession":
		f.Profession = value
	case "fatherName":
		f.FatherName = value
	case "fatherProfession":
		f.FatherProfession = value
	case "motherName":
		f.MotherName = value
	case "motherProfession":
		f.MotherProfession = value
	case "siblings":
		f.Siblings = value
	case "mama":
		f.Mama = value
	case "kaka":
		f.Kaka = value
	case "address":
		f.Address = value
	case "mobile":
		f.Mobile = value
	case "profilePhoto":
		f.ProfilePhotoPath = value
	case "aadhaar":
		f.AadhaarPath = value
	}
}

// FormFromProfile pre-fills a form from an existing profile, for the update
// flow. Attachment paths stay empty: files are only re-sent when the user
// picks replacements.
func FormFromProfile(p *Profile) *RegistrationForm {
	return &RegistrationForm{
		Name:             p.Name,
		Gender:           string(p.Gender),
		DOB:              p.DOB,
		Birthplace:       p.Birthplace,
		Kuldevat:         p.Kuldevat,
		Gotra:            p.Gotra,
		Height:           p.Height,
		BloodGroup:       p.BloodGroup,
		Education:        p.Education,
		Profession:       p.Profession,
		FatherName:       p.FatherName,
		FatherProfession: p.FatherProfession,
		MotherName:       p.MotherName,
		MotherProfession: p.MotherProfession,
		Siblings:         p.Siblings,
		Mama:             p.Mama,
		Kaka:             p.Kaka,
		Address:          p.Address,
		Mobile:           p.Mobile,
	}
}

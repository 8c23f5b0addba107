// Package models defines the profile types exchanged with the Perfect Match
// backend and the form used to create or update them.
package models

import (
	"encoding/json"
	"fmt"
)

// Gender is the backend's enum for a profile's gender.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Label returns the localized display label used throughout the UI.
func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "पुरुष"
	case GenderFemale:
		return "महिला"
	default:
		return string(g)
	}
}

// GenderFromLabel maps a display label (or an already-normalized enum value)
// to the backend enum. Unknown input is passed through unchanged so the
// validator can reject it with a field error.
func GenderFromLabel(s string) Gender {
	switch s {
	case "पुरुष", string(GenderMale):
		return GenderMale
	case "महिला", string(GenderFemale):
		return GenderFemale
	default:
		return Gender(s)
	}
}

// Profile is the server-owned record. Field names follow the backend's JSON
// contract. ID is opaque: the backend may serialize it as a number or a
// string, so it is normalized to a string on unmarshal.
type Profile struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Gender           Gender `json:"gender"`
	DOB              string `json:"dob"`
	Birthplace       string `json:"birthplace"`
	Kuldevat         string `json:"kuldevat"`
	Gotra            string `json:"gotra"`
	Height           string `json:"height"`
	BloodGroup       string `json:"bloodGroup"`
	Education        string `json:"education"`
	Profession       string `json:"profession"`
	FatherName       string `json:"fatherName"`
	FatherProfession string `json:"fatherProfession"`
	MotherName       string `json:"motherName"`
	MotherProfession string `json:"motherProfession"`
	Siblings         string `json:"siblings"`
	Mama             string `json:"mama"`
	Kaka             string `json:"kaka"`
	Address          string `json:"address"`
	Mobile           string `json:"mobile"`
	ProfilePhotoURL  string `json:"profilePhotoUrl"`
	AadhaarURL       string `json:"aadhaarUrl"`
}

// profileAlias avoids recursion in UnmarshalJSON.
type profileAlias Profile

type profileWire struct {
	profileAlias
	RawID  json.RawMessage `json:"id"`
	Mobile json.RawMessage `json:"mobile"`
}

// UnmarshalJSON accepts id and mobile as either JSON strings or numbers.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var w profileWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*p = Profile(w.profileAlias)
	p.ID = flexString(w.RawID)
	p.Mobile = flexString(w.Mobile)
	return nil
}

func flexString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return string(raw)
}

func (p *Profile) String() string {
	return fmt.Sprintf("%s (%s, %s)", p.Name, p.Gender.Label(), p.DOB)
}

package models

import (
	"fmt"
	"strings"
)

// VettingStatus is the eligibility review lifecycle stage of a record.
type VettingStatus string

const (
	VettingNotStarted VettingStatus = "NOT_STARTED"
	VettingInProgress VettingStatus = "IN_PROGRESS"
	VettingPassed     VettingStatus = "PASSED"
	VettingFailed     VettingStatus = "FAILED"
)

func (s VettingStatus) IsValid() bool {
	switch s {
	case VettingNotStarted, VettingInProgress, VettingPassed, VettingFailed:
		return true
	}
	return false
}

// ParseVettingStatus accepts the status in any letter case.
func ParseVettingStatus(s string) (VettingStatus, error) {
	v := VettingStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !v.IsValid() {
		return "", fmt.Errorf("unknown vetting status %q", s)
	}
	return v, nil
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// ParseGender accepts the gender in any letter case.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	case "other":
		return GenderOther, nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

type UserType string

const (
	UserTypeStudent  UserType = "STUDENT"
	UserTypeAspirant UserType = "ASPIRANT"
	UserTypeDelegate UserType = "DELEGATE"
	UserTypeIECK     UserType = "IECK"
	UserTypeAdmin    UserType = "ADMIN"
)

func (u UserType) IsValid() bool {
	switch u {
	case UserTypeStudent, UserTypeAspirant, UserTypeDelegate, UserTypeIECK, UserTypeAdmin:
		return true
	}
	return false
}

func ParseUserType(s string) (UserType, error) {
	u := UserType(strings.ToUpper(strings.TrimSpace(s)))
	if !u.IsValid() {
		return "", fmt.Errorf("unknown user type %q", s)
	}
	return u, nil
}

// CouncilPosition is the council seat an aspirant is running for.
type CouncilPosition string

const (
	PositionChair                     CouncilPosition = "CHAIR"
	PositionViceChair                 CouncilPosition = "VICE_CHAIR"
	PositionSecretaryGeneral          CouncilPosition = "SECRETARY_GENERAL"
	PositionFinanceSecretary          CouncilPosition = "FINANCE_SECRETARY"
	PositionAcademicSecretary         CouncilPosition = "ACADEMIC_SECRETARY"
	PositionSportsSecretary           CouncilPosition = "SPORTS_SECRETARY"
	PositionSpecialInterestsSecretary CouncilPosition = "SPECIAL_INTERESTS_SECRETARY"
)

func (p CouncilPosition) IsValid() bool {
	switch p {
	case PositionChair, PositionViceChair, PositionSecretaryGeneral, PositionFinanceSecretary,
		PositionAcademicSecretary, PositionSportsSecretary, PositionSpecialInterestsSecretary:
		return true
	}
	return false
}

func ParseCouncilPosition(s string) (CouncilPosition, error) {
	p := CouncilPosition(strings.ToUpper(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("unknown council position %q", s)
	}
	return p, nil
}

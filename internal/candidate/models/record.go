package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"saku/internal/eligibility"
	dErrors "saku/pkg/domain-errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Registration is the input accepted when a candidate is registered.
type Registration struct {
	StudentID       string          `json:"student_id" validate:"required"`
	FullName        string          `json:"full_name" validate:"required"`
	UserType        UserType        `json:"user_type" validate:"omitempty,oneof=STUDENT ASPIRANT DELEGATE IECK ADMIN"`
	CouncilPosition CouncilPosition `json:"council_position,omitempty" validate:"omitempty,oneof=CHAIR VICE_CHAIR SECRETARY_GENERAL FINANCE_SECRETARY ACADEMIC_SECRETARY SPORTS_SECRETARY SPECIAL_INTERESTS_SECRETARY"`
	Department      string          `json:"department" validate:"required"`
	Course          string          `json:"course"`
	YearOfStudy     int             `json:"year_of_study" validate:"gte=1"`
	Gender          Gender          `json:"gender" validate:"required,oneof=Male Female Other"`
}

// Validate checks the registration tags and returns a CodeValidation error
// naming the first offending field.
func (r Registration) Validate() error {
	if err := validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return dErrors.Newf(dErrors.CodeValidation, "invalid registration: %s failed %q", fe.Field(), fe.Tag())
		}
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid registration")
	}
	return nil
}

// Record is a candidate under eligibility review.
//
// Invariants:
//   - VettingStatus is NOT_STARTED until the first vetting run
//   - Eligibility, IsQualified and VettingStatus change together (see ApplyVerdict)
//   - IsQualified is true only with VettingStatus PASSED
type Record struct {
	ID              uuid.UUID            `json:"id"`
	StudentID       string               `json:"student_id"`
	FullName        string               `json:"full_name"`
	UserType        UserType             `json:"user_type"`
	CouncilPosition CouncilPosition      `json:"council_position,omitempty"`
	Department      string               `json:"department"`
	Course          string               `json:"course"`
	YearOfStudy     int                  `json:"year_of_study"`
	Gender          Gender               `json:"gender"`
	IsQualified     bool                 `json:"is_qualified"`
	VettingStatus   VettingStatus        `json:"vetting_status"`
	Eligibility     *eligibility.Verdict `json:"eligibility,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	VettedAt        *time.Time           `json:"vetted_at,omitempty"`
}

// NewRecord validates reg and builds an unvetted record.
func NewRecord(id uuid.UUID, reg Registration, now time.Time) (*Record, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	userType := reg.UserType
	if userType == "" {
		userType = UserTypeDelegate
	}
	return &Record{
		ID:              id,
		StudentID:       reg.StudentID,
		FullName:        reg.FullName,
		UserType:        userType,
		CouncilPosition: reg.CouncilPosition,
		Department:      reg.Department,
		Course:          reg.Course,
		YearOfStudy:     reg.YearOfStudy,
		Gender:          reg.Gender,
		VettingStatus:   VettingNotStarted,
		CreatedAt:       now,
	}, nil
}

// Registration returns the registration fields of the record.
func (r *Record) Registration() Registration {
	return Registration{
		StudentID:       r.StudentID,
		FullName:        r.FullName,
		UserType:        r.UserType,
		CouncilPosition: r.CouncilPosition,
		Department:      r.Department,
		Course:          r.Course,
		YearOfStudy:     r.YearOfStudy,
		Gender:          r.Gender,
	}
}

// EligibilityInput returns the fields the validator reads.
func (r *Record) EligibilityInput() eligibility.Input {
	return eligibility.Input{YearOfStudy: r.YearOfStudy}
}

// ApplyVerdict writes the verdict, qualification and status together.
func (r *Record) ApplyVerdict(v eligibility.Verdict, now time.Time) {
	verdict := v
	r.Eligibility = &verdict
	r.IsQualified = v.OverallPassed
	if v.OverallPassed {
		r.VettingStatus = VettingPassed
	} else {
		r.VettingStatus = VettingFailed
	}
	vettedAt := now
	r.VettedAt = &vettedAt
}

// IsFemale reports whether the record counts toward the female ratio.
func (r *Record) IsFemale() bool {
	return r.Gender == GenderFemale
}

// DecodeRegistrations reads a JSON array of registrations and validates each.
func DecodeRegistrations(rd io.Reader) ([]Registration, error) {
	var regs []Registration
	if err := json.NewDecoder(rd).Decode(&regs); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "decode candidate registrations")
	}
	for i, reg := range regs {
		if err := reg.Validate(); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("registration %d", i))
		}
	}
	return regs, nil
}

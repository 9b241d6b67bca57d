package signup

import "sort"

// Level is the school level enumeration
type Level string

const (
	LevelElementary Level = "ELEMENTARY"
	LevelMiddle     Level = "MIDDLE"
	LevelHigh       Level = "HIGH"
)

// MaxGrade returns the highest valid grade for the level
func (l Level) MaxGrade() int {
	if l == LevelElementary {
		return 6
	}
	return 3
}

// Valid reports whether the level is one of the known values
func (l Level) Valid() bool {
	switch l {
	case LevelElementary, LevelMiddle, LevelHigh:
		return true
	}
	return false
}

// DefaultMajorName is the sentinel major label used for schools that offer
// no majors; the class-info endpoint requires a major name either way.
const DefaultMajorName = "일반학과"

// Gender tokens accepted by the signup endpoint
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

// MapGender maps a UI gender label onto the signup enumeration token.
// Unknown labels map to "".
func MapGender(label string) string {
	switch label {
	case "남", "남자", "male", "MALE", "m", "M":
		return GenderMale
	case "여", "여자", "female", "FEMALE", "f", "F":
		return GenderFemale
	}
	return ""
}

// RegistrationDraft holds the not-yet-submitted form data. It is owned by
// the wizard for its lifetime and discarded after a successful submission.
type RegistrationDraft struct {
	Email           string
	Password        string
	ConfirmPassword string
	Name            string
	Nickname        string
	BirthDay        string
	Gender          string
	Phone           string

	SchoolLevel         Level
	SchoolCode          string
	EducationOfficeCode string
	SchoolName          string
	MajorName           string
	Grade               int
	ClassNo             string

	AllergyIDs map[int]struct{}

	// IdentityToken is set when the session carries a short-lived
	// external-identity token (social signup)
	IdentityToken string
}

// NewRegistrationDraft creates an empty draft
func NewRegistrationDraft() *RegistrationDraft {
	return &RegistrationDraft{
		AllergyIDs: make(map[int]struct{}),
	}
}

// ToggleAllergy adds or removes an allergy id from the set
func (d *RegistrationDraft) ToggleAllergy(id int) {
	if _, ok := d.AllergyIDs[id]; ok {
		delete(d.AllergyIDs, id)
		return
	}
	d.AllergyIDs[id] = struct{}{}
}

// SortedAllergyIDs returns the allergy set as an ordered slice
func (d *RegistrationDraft) SortedAllergyIDs() []int {
	ids := make([]int, 0, len(d.AllergyIDs))
	for id := range d.AllergyIDs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

package signup

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mealbadge/mealbadge-go/internal/gateway"
)

// Resolver errors
var (
	ErrNoSchoolSelected = errors.New("no school selected")
	ErrGradeOutOfRange  = errors.New("grade out of range for school level")
)

// SchoolDirectory is the backend surface the resolver fetches options from
type SchoolDirectory interface {
	ListMajors(ctx context.Context, educationOfficeCode, schoolCode string) ([]gateway.SelectionOption, error)
	ListClasses(ctx context.Context, educationOfficeCode, schoolCode string, grade int, majorName string) ([]gateway.SelectionOption, error)
}

// Resolver keeps the school/major/grade/class selections and their option
// lists consistent with the user's upward choices. Changing any upstream
// field clears every downstream-dependent field; option lists are replaced
// wholesale, never merged.
//
// Fetch failures degrade to an empty option list and a warn-level log entry.
// They are never returned to the caller: with no selectable options the
// step-advance validation blocks progress on its own. Some school levels
// legitimately have no majors, so an empty major list is not an error state.
type Resolver struct {
	directory SchoolDirectory
	draft     *RegistrationDraft
	logger    zerolog.Logger

	majors  []gateway.SelectionOption
	classes []gateway.SelectionOption
}

// NewResolver creates a Resolver operating on draft
func NewResolver(directory SchoolDirectory, draft *RegistrationDraft, logger zerolog.Logger) *Resolver {
	return &Resolver{
		directory: directory,
		draft:     draft,
		logger:    logger,
	}
}

// Majors returns the current major options
func (r *Resolver) Majors() []gateway.SelectionOption {
	return r.majors
}

// Classes returns the current class options, numerically sorted by label
func (r *Resolver) Classes() []gateway.SelectionOption {
	return r.classes
}

// SetLevel selects a school level and clears school, major, grade and class
// along with their option lists. No network call is made.
func (r *Resolver) SetLevel(level Level) error {
	if !level.Valid() {
		return errors.New("unknown school level")
	}

	r.draft.SchoolLevel = level
	r.clearSchool()
	return nil
}

// SelectSchool selects a school found through the search dialog and fetches
// its major list. Major, grade and class are cleared first.
func (r *Resolver) SelectSchool(ctx context.Context, school gateway.SchoolRecord) {
	r.draft.SchoolCode = school.SchoolCode
	r.draft.EducationOfficeCode = school.EducationOfficeCode
	r.draft.SchoolName = school.SchoolName
	r.clearMajor()

	majors, err := r.directory.ListMajors(ctx, school.EducationOfficeCode, school.SchoolCode)
	if err != nil {
		r.logger.Warn().Err(err).Str("schoolCode", school.SchoolCode).Msg("Major lookup failed, treating school as major-less")
		r.majors = nil
		return
	}
	r.majors = majors
}

// SelectMajor selects a major and clears grade and class. The class fetch is
// deferred until a grade is selected.
func (r *Resolver) SelectMajor(major string) {
	r.draft.MajorName = major
	r.clearGrade()
}

// SelectGrade selects a grade and fetches the class options for the school,
// grade and current major (or the default sentinel when the school has no
// majors). Class is cleared first.
func (r *Resolver) SelectGrade(ctx context.Context, grade int) error {
	if r.draft.SchoolCode == "" {
		return ErrNoSchoolSelected
	}
	if grade < 1 || grade > r.draft.SchoolLevel.MaxGrade() {
		return ErrGradeOutOfRange
	}

	r.draft.Grade = grade
	r.clearClass()

	major := r.draft.MajorName
	if major == "" {
		major = DefaultMajorName
	}

	classes, err := r.directory.ListClasses(ctx, r.draft.EducationOfficeCode, r.draft.SchoolCode, grade, major)
	if err != nil {
		r.logger.Warn().Err(err).Int("grade", grade).Str("schoolCode", r.draft.SchoolCode).Msg("Class lookup failed")
		r.classes = nil
		return nil
	}

	sortClassOptions(classes)
	r.classes = classes
	return nil
}

// SelectClass records the chosen class label
func (r *Resolver) SelectClass(class string) {
	r.draft.ClassNo = class
}

func (r *Resolver) clearSchool() {
	r.draft.SchoolCode = ""
	r.draft.EducationOfficeCode = ""
	r.draft.SchoolName = ""
	r.clearMajor()
	r.majors = nil
}

func (r *Resolver) clearMajor() {
	r.draft.MajorName = ""
	r.clearGrade()
	r.majors = nil
}

func (r *Resolver) clearGrade() {
	r.draft.Grade = 0
	r.clearClass()
}

func (r *Resolver) clearClass() {
	r.draft.ClassNo = ""
	r.classes = nil
}

// sortClassOptions orders class options ascending by the numeric value of
// their label, independent of server order. Non-numeric labels sort after
// numeric ones.
func sortClassOptions(options []gateway.SelectionOption) {
	sort.SliceStable(options, func(i, j int) bool {
		ni, iok := classNumber(options[i].Label)
		nj, jok := classNumber(options[j].Label)
		if iok && jok {
			return ni < nj
		}
		if iok != jok {
			return iok
		}
		return options[i].Label < options[j].Label
	})
}

// classNumber extracts the leading integer from a class label such as "3" or
// "3반"
func classNumber(label string) (int, bool) {
	digits := strings.TrimFunc(label, func(r rune) bool {
		return r < '0' || r > '9'
	})
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

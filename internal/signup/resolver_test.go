package signup

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealbadge/mealbadge-go/internal/gateway"
)

type fakeDirectory struct {
	majors     []gateway.SelectionOption
	classes    []gateway.SelectionOption
	majorsErr  error
	classesErr error
	majorCalls int
	classCalls int
	lastMajor  string
	lastGrade  int
}

func (f *fakeDirectory) ListMajors(_ context.Context, _, _ string) ([]gateway.SelectionOption, error) {
	f.majorCalls++
	return f.majors, f.majorsErr
}

func (f *fakeDirectory) ListClasses(_ context.Context, _, _ string, grade int, majorName string) ([]gateway.SelectionOption, error) {
	f.classCalls++
	f.lastGrade = grade
	f.lastMajor = majorName
	return f.classes, f.classesErr
}

func options(labels ...string) []gateway.SelectionOption {
	opts := make([]gateway.SelectionOption, len(labels))
	for i, label := range labels {
		opts[i] = gateway.SelectionOption{Code: label, Label: label}
	}
	return opts
}

func optionLabels(opts []gateway.SelectionOption) []string {
	labels := make([]string, len(opts))
	for i, opt := range opts {
		labels[i] = opt.Label
	}
	return labels
}

func testSchool() gateway.SchoolRecord {
	return gateway.SchoolRecord{
		SchoolName:          "서울고등학교",
		SchoolCode:          "S001",
		EducationOfficeCode: "B10",
	}
}

func populatedResolver(t *testing.T, dir *fakeDirectory) (*Resolver, *RegistrationDraft) {
	t.Helper()

	draft := NewRegistrationDraft()
	r := NewResolver(dir, draft, zerolog.Nop())

	require.NoError(t, r.SetLevel(LevelHigh))
	r.SelectSchool(context.Background(), testSchool())
	if len(dir.majors) > 0 {
		r.SelectMajor(dir.majors[0].Label)
	}
	require.NoError(t, r.SelectGrade(context.Background(), 2))
	if len(r.Classes()) > 0 {
		r.SelectClass(r.Classes()[0].Label)
	}
	return r, draft
}

func TestSetLevelClearsEverythingDownstream(t *testing.T) {
	dir := &fakeDirectory{majors: options("전자과"), classes: options("1", "2")}
	r, draft := populatedResolver(t, dir)

	require.NoError(t, r.SetLevel(LevelMiddle))

	assert.Equal(t, LevelMiddle, draft.SchoolLevel)
	assert.Empty(t, draft.SchoolCode)
	assert.Empty(t, draft.SchoolName)
	assert.Empty(t, draft.MajorName)
	assert.Zero(t, draft.Grade)
	assert.Empty(t, draft.ClassNo)
	assert.Empty(t, r.Majors())
	assert.Empty(t, r.Classes())
}

func TestSelectSchoolFetchesMajorsOncePerChange(t *testing.T) {
	dir := &fakeDirectory{majors: options("전자과", "기계과")}
	draft := NewRegistrationDraft()
	r := NewResolver(dir, draft, zerolog.Nop())
	require.NoError(t, r.SetLevel(LevelHigh))

	r.SelectSchool(context.Background(), testSchool())
	assert.Equal(t, 1, dir.majorCalls)
	assert.Equal(t, options("전자과", "기계과"), r.Majors())

	r.SelectSchool(context.Background(), testSchool())
	assert.Equal(t, 2, dir.majorCalls)
}

func TestSelectSchoolClearsMajorGradeClass(t *testing.T) {
	dir := &fakeDirectory{majors: options("전자과"), classes: options("1")}
	r, draft := populatedResolver(t, dir)

	r.SelectSchool(context.Background(), testSchool())

	assert.Empty(t, draft.MajorName)
	assert.Zero(t, draft.Grade)
	assert.Empty(t, draft.ClassNo)
	assert.Empty(t, r.Classes())
}

func TestMajorFetchFailureDegradesToNoMajors(t *testing.T) {
	dir := &fakeDirectory{majorsErr: errors.New("boom")}
	draft := NewRegistrationDraft()
	r := NewResolver(dir, draft, zerolog.Nop())
	require.NoError(t, r.SetLevel(LevelMiddle))

	// Failure is swallowed; the school is simply treated as major-less
	r.SelectSchool(context.Background(), testSchool())
	assert.Empty(t, r.Majors())
}

func TestSelectGradeUsesSelectedMajor(t *testing.T) {
	dir := &fakeDirectory{majors: options("전자과"), classes: options("1")}
	draft := NewRegistrationDraft()
	r := NewResolver(dir, draft, zerolog.Nop())
	require.NoError(t, r.SetLevel(LevelHigh))
	r.SelectSchool(context.Background(), testSchool())
	r.SelectMajor("전자과")

	require.NoError(t, r.SelectGrade(context.Background(), 3))

	assert.Equal(t, 1, dir.classCalls)
	assert.Equal(t, 3, dir.lastGrade)
	assert.Equal(t, "전자과", dir.lastMajor)
}

func TestSelectGradeUsesSentinelWithoutMajors(t *testing.T) {
	dir := &fakeDirectory{classes: options("1")}
	draft := NewRegistrationDraft()
	r := NewResolver(dir, draft, zerolog.Nop())
	require.NoError(t, r.SetLevel(LevelMiddle))
	r.SelectSchool(context.Background(), testSchool())

	require.NoError(t, r.SelectGrade(context.Background(), 1))

	assert.Equal(t, DefaultMajorName, dir.lastMajor)
}

func TestSelectGradeBounds(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		grade   int
		wantErr bool
	}{
		{"elementary grade 6 ok", LevelElementary, 6, false},
		{"elementary grade 7 rejected", LevelElementary, 7, true},
		{"high grade 3 ok", LevelHigh, 3, false},
		{"high grade 4 rejected", LevelHigh, 4, true},
		{"grade zero rejected", LevelMiddle, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := &fakeDirectory{classes: options("1")}
			draft := NewRegistrationDraft()
			r := NewResolver(dir, draft, zerolog.Nop())
			require.NoError(t, r.SetLevel(tt.level))
			r.SelectSchool(context.Background(), testSchool())

			err := r.SelectGrade(context.Background(), tt.grade)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrGradeOutOfRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSelectGradeWithoutSchool(t *testing.T) {
	draft := NewRegistrationDraft()
	r := NewResolver(&fakeDirectory{}, draft, zerolog.Nop())
	require.NoError(t, r.SetLevel(LevelHigh))

	assert.ErrorIs(t, r.SelectGrade(context.Background(), 1), ErrNoSchoolSelected)
}

func TestClassOptionsSortedNumerically(t *testing.T) {
	dir := &fakeDirectory{classes: options("10", "2", "1반", "3")}
	draft := NewRegistrationDraft()
	r := NewResolver(dir, draft, zerolog.Nop())
	require.NoError(t, r.SetLevel(LevelHigh))
	r.SelectSchool(context.Background(), testSchool())

	require.NoError(t, r.SelectGrade(context.Background(), 1))

	assert.Equal(t, []string{"1반", "2", "3", "10"}, optionLabels(r.Classes()))
}

func TestClassFetchFailureLeavesEmptyOptions(t *testing.T) {
	dir := &fakeDirectory{classesErr: errors.New("boom")}
	draft := NewRegistrationDraft()
	r := NewResolver(dir, draft, zerolog.Nop())
	require.NoError(t, r.SetLevel(LevelHigh))
	r.SelectSchool(context.Background(), testSchool())

	// Fetch failure never reaches the caller; the option list is just empty
	require.NoError(t, r.SelectGrade(context.Background(), 1))
	assert.Empty(t, r.Classes())
}

package signup

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/mealbadge/mealbadge-go/internal/gateway"
	"github.com/mealbadge/mealbadge-go/internal/pkg/apperrors"
	"github.com/mealbadge/mealbadge-go/internal/session"
	"github.com/mealbadge/mealbadge-go/internal/validation"
)

// Step identifies a wizard step
type Step string

const (
	StepAccount   Step = "account"
	StepSchool    Step = "school"
	StepAllergy   Step = "allergy"
	StepSubmitted Step = "submitted"
)

// SignupGateway is the backend surface the wizard submits to
type SignupGateway interface {
	Signup(ctx context.Context, req *gateway.SignupRequest) (*gateway.TokenResponse, error)
	SignupSocial(ctx context.Context, req *gateway.SocialSignupRequest) (*gateway.TokenResponse, error)
}

// Wizard is the multi-step registration state machine:
// account -> school -> allergy -> submitted.
//
// Transitions are forward-only. That restriction is deliberate: the draft
// accumulates across steps, so nothing is lost by disallowing Back, and
// keeping it explicit (a typed error instead of a missing button) makes the
// decision visible and testable.
type Wizard struct {
	draft    *RegistrationDraft
	fields   *validation.FieldSet
	gateway  SignupGateway
	session  *session.Store
	validate *validator.Validate
	logger   zerolog.Logger

	step Step
}

// NewWizard creates a Wizard on StepAccount
func NewWizard(gw SignupGateway, store *session.Store, draft *RegistrationDraft, fields *validation.FieldSet, logger zerolog.Logger) *Wizard {
	return &Wizard{
		draft:    draft,
		fields:   fields,
		gateway:  gw,
		session:  store,
		validate: newPayloadValidator(),
		logger:   logger,
		step:     StepAccount,
	}
}

// Step returns the current step
func (w *Wizard) Step() Step {
	return w.step
}

// Back always fails; backward navigation is not part of this wizard
func (w *Wizard) Back() error {
	return apperrors.ErrNoBackward
}

// Advance validates the current step and moves forward. The rejection error
// names the first field blocking the transition.
func (w *Wizard) Advance() error {
	switch w.step {
	case StepAccount:
		if err := w.checkAccountStep(); err != nil {
			return err
		}
		w.step = StepSchool
	case StepSchool:
		if err := w.checkSchoolStep(); err != nil {
			return err
		}
		w.step = StepAllergy
	case StepAllergy:
		return &apperrors.CustomError{Err: apperrors.ErrStepIncomplete, Message: "the final step completes through submit"}
	case StepSubmitted:
		return apperrors.ErrAlreadySubmitted
	}
	return nil
}

// Submit assembles the composite payload and calls the signup endpoint
// matching the draft's identity variant. On success the returned session
// token is persisted and the wizard reaches StepSubmitted; on failure the
// wizard stays on the allergy step and the error carries the server-provided
// text when present.
func (w *Wizard) Submit(ctx context.Context) error {
	if w.step == StepSubmitted {
		return apperrors.ErrAlreadySubmitted
	}
	if w.step != StepAllergy {
		return &apperrors.CustomError{Err: apperrors.ErrStepIncomplete, Message: "submit is only available on the final step"}
	}

	payload, err := w.assemblePayload()
	if err != nil {
		return err
	}

	var resp *gateway.TokenResponse
	if w.draft.IdentityToken != "" {
		resp, err = w.gateway.SignupSocial(ctx, &gateway.SocialSignupRequest{
			SignupRequest: *payload,
			IdentityToken: w.draft.IdentityToken,
		})
	} else {
		resp, err = w.gateway.Signup(ctx, payload)
	}
	if err != nil {
		w.logger.Warn().Err(err).Msg("Signup submission failed")
		return submissionError(err)
	}

	if err := w.session.SetToken(resp.Token); err != nil {
		return fmt.Errorf("failed to persist session token: %w", err)
	}

	w.step = StepSubmitted
	return nil
}

// checkAccountStep enforces the step 1 rules: every required field present,
// password confirmation matching, and the three uniqueness-checked fields
// holding a positive verdict. A non-empty field with a pending or failed
// check still blocks the transition.
func (w *Wizard) checkAccountStep() error {
	required := []struct {
		field string
		value string
	}{
		{"email", w.draft.Email},
		{"password", w.draft.Password},
		{"confirmPassword", w.draft.ConfirmPassword},
		{"name", w.draft.Name},
		{"nickname", w.draft.Nickname},
		{"birthDay", w.draft.BirthDay},
		{"gender", w.draft.Gender},
		{"phone", w.draft.Phone},
	}
	for _, f := range required {
		if f.value == "" {
			return w.blockedOn(f.field, "required field is empty")
		}
	}

	if state := validation.CheckNameFormat(w.draft.Name); !state.IsValid() {
		return w.blockedOn("name", state.Message)
	}
	if state := validation.CheckPasswordMatch(w.draft.Password, w.draft.ConfirmPassword); !state.IsValid() {
		return w.blockedOn("confirmPassword", state.Message)
	}
	if MapGender(w.draft.Gender) == "" {
		return w.blockedOn("gender", "unknown gender label")
	}

	if field := w.fields.FirstNotValid(validation.FieldEmail, validation.FieldNickname, validation.FieldPhone); field != "" {
		return w.blockedOn(field, "field has not passed its availability check")
	}

	return nil
}

// checkSchoolStep enforces the step 2 rules. A major is only required when
// the school actually offers majors, which the draft reflects by holding one.
func (w *Wizard) checkSchoolStep() error {
	if !w.draft.SchoolLevel.Valid() {
		return w.blockedOn("schoolLevel", "required field is empty")
	}
	if w.draft.SchoolCode == "" || w.draft.EducationOfficeCode == "" {
		return w.blockedOn("school", "required field is empty")
	}
	if w.draft.Grade < 1 || w.draft.Grade > w.draft.SchoolLevel.MaxGrade() {
		return w.blockedOn("grade", "grade out of range")
	}
	if w.draft.ClassNo == "" {
		return w.blockedOn("classNo", "required field is empty")
	}
	return nil
}

// assemblePayload maps the draft onto the wire payload: gender label to the
// enumeration token, class label coerced to an integer, allergy set ordered.
func (w *Wizard) assemblePayload() (*gateway.SignupRequest, error) {
	classNo, err := strconv.Atoi(w.draft.ClassNo)
	if err != nil {
		n, ok := classNumber(w.draft.ClassNo)
		if !ok {
			return nil, apperrors.NewValidationError("classNo", "class is not numeric")
		}
		classNo = n
	}

	payload := &gateway.SignupRequest{
		Email:               w.draft.Email,
		Password:            w.draft.Password,
		Name:                w.draft.Name,
		Nickname:            w.draft.Nickname,
		BirthDay:            w.draft.BirthDay,
		Gender:              MapGender(w.draft.Gender),
		Phone:               w.draft.Phone,
		SchoolLevel:         string(w.draft.SchoolLevel),
		SchoolCode:          w.draft.SchoolCode,
		EducationOfficeCode: w.draft.EducationOfficeCode,
		SchoolName:          w.draft.SchoolName,
		MajorName:           w.draft.MajorName,
		Grade:               w.draft.Grade,
		ClassNo:             classNo,
		AllergyIDs:          w.draft.SortedAllergyIDs(),
	}

	if err := w.validate.Struct(payload); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) && len(verr) > 0 {
			return nil, apperrors.NewValidationError(verr[0].Field(), "invalid value")
		}
		return nil, fmt.Errorf("payload validation failed: %w", err)
	}

	return payload, nil
}

func (w *Wizard) blockedOn(field, message string) error {
	return &apperrors.CustomError{
		Err:     apperrors.ErrStepIncomplete,
		Message: message,
		Field:   field,
	}
}

// submissionError surfaces the server-provided text when present, else a
// generic failure message
func submissionError(err error) error {
	var ce *apperrors.CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce
	}
	return apperrors.NewCustomError(err, "signup failed, please try again")
}

// newPayloadValidator builds the validator with the custom text rules the
// signup payload uses
func newPayloadValidator() *validator.Validate {
	v := validator.New()

	// Errors are only possible for invalid rule registrations
	_ = v.RegisterValidation("nickname", func(fl validator.FieldLevel) bool {
		return validation.CheckNicknameFormat(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("profilename", func(fl validator.FieldLevel) bool {
		return validation.CheckNameFormat(fl.Field().String()).IsValid()
	})

	return v
}

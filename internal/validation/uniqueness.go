package validation

import (
	"context"

	"github.com/rs/zerolog"
)

// UniquenessGateway is the backend surface needed for uniqueness checks
type UniquenessGateway interface {
	CheckEmail(ctx context.Context, email string) (bool, error)
	CheckNickname(ctx context.Context, nickname string) (bool, error)
	CheckPhone(ctx context.Context, phone string) (bool, error)
}

// Uniqueness field names
const (
	FieldEmail    = "email"
	FieldNickname = "nickname"
	FieldPhone    = "phone"
)

// Checker runs the server-side uniqueness checks for email, nickname and
// phone and records the outcome in a FieldSet. Checks are idempotent queries;
// repeating one at any time simply overwrites the prior verdict.
type Checker struct {
	gateway UniquenessGateway
	fields  *FieldSet
	logger  zerolog.Logger
}

// NewChecker creates a Checker writing verdicts into fields
func NewChecker(gateway UniquenessGateway, fields *FieldSet, logger zerolog.Logger) *Checker {
	return &Checker{
		gateway: gateway,
		fields:  fields,
		logger:  logger,
	}
}

// CheckEmail verifies the email is unused. The format must pass before the
// server round-trip is made.
func (c *Checker) CheckEmail(ctx context.Context, email string) FieldState {
	if state := CheckEmailFormat(email); !state.IsValid() {
		c.fields.Set(FieldEmail, state)
		return state
	}
	return c.check(ctx, FieldEmail, email, c.gateway.CheckEmail, "email already in use")
}

// CheckNickname verifies the nickname is unused
func (c *Checker) CheckNickname(ctx context.Context, nickname string) FieldState {
	if state := CheckNicknameFormat(nickname); !state.IsValid() {
		c.fields.Set(FieldNickname, state)
		return state
	}
	return c.check(ctx, FieldNickname, nickname, c.gateway.CheckNickname, "nickname already in use")
}

// CheckPhone verifies the phone number is unused
func (c *Checker) CheckPhone(ctx context.Context, phone string) FieldState {
	if state := CheckPhoneFormat(phone); !state.IsValid() {
		c.fields.Set(FieldPhone, state)
		return state
	}
	return c.check(ctx, FieldPhone, phone, c.gateway.CheckPhone, "phone number already in use")
}

func (c *Checker) check(ctx context.Context, field, value string, query func(context.Context, string) (bool, error), takenMsg string) FieldState {
	c.fields.Set(field, FieldState{Status: StatusChecking})

	exists, err := query(ctx, value)
	var state FieldState
	switch {
	case err != nil:
		c.logger.Warn().Err(err).Str("field", field).Msg("Uniqueness check failed")
		state = FieldState{Status: StatusError, Message: "could not verify availability"}
	case exists:
		state = FieldState{Status: StatusInvalid, Message: takenMsg}
	default:
		state = FieldState{Status: StatusValid}
	}

	c.fields.Set(field, state)
	return state
}

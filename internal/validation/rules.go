package validation

import (
	"regexp"
	"unicode/utf8"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,4}$`

	// Phone validation pattern - Korean mobile number, dashes optional
	PhonePattern = `^01[016789]-?\d{3,4}-?\d{4}$`

	// Character set for nicknames: Korean syllables, ASCII letters, digits
	NicknameCharsPattern = `^[가-힣a-zA-Z0-9]*$`

	// Character set for names: Korean syllables, ASCII letters, whitespace
	NameCharsPattern = `^[가-힣a-zA-Z\s]*$`

	// Nickname length bounds (in runes)
	NicknameMinLength = 2
	NicknameMaxLength = 10

	// Name max length (in runes)
	NameMaxLength = 10

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email         *regexp.Regexp
	Phone         *regexp.Regexp
	NicknameChars *regexp.Regexp
	NameChars     *regexp.Regexp
}{
	Email:         regexp.MustCompile(EmailPattern),
	Phone:         regexp.MustCompile(PhonePattern),
	NicknameChars: regexp.MustCompile(NicknameCharsPattern),
	NameChars:     regexp.MustCompile(NameCharsPattern),
}

// CheckEmailFormat validates the email format. The uniqueness check may only
// be issued once the format is valid.
func CheckEmailFormat(email string) FieldState {
	if email == "" {
		return FieldState{Status: StatusUnchecked}
	}
	if !CompiledPatterns.Email.MatchString(email) {
		return invalid("invalid email format")
	}
	return valid()
}

// CheckNicknameFormat validates nickname charset and length. Evaluated on
// every value change, independent of the server-side uniqueness check.
func CheckNicknameFormat(nickname string) FieldState {
	if nickname == "" {
		return FieldState{Status: StatusUnchecked}
	}
	if !CompiledPatterns.NicknameChars.MatchString(nickname) {
		return invalid("nickname may only contain Korean, English letters and digits")
	}
	if n := utf8.RuneCountInString(nickname); n < NicknameMinLength || n > NicknameMaxLength {
		return invalid("nickname must be 2 to 10 characters")
	}
	return valid()
}

// CheckNameFormat validates name charset and length
func CheckNameFormat(name string) FieldState {
	if name == "" {
		return FieldState{Status: StatusUnchecked}
	}
	if !CompiledPatterns.NameChars.MatchString(name) {
		return invalid("name may only contain Korean and English letters")
	}
	if utf8.RuneCountInString(name) > NameMaxLength {
		return invalid("name must be at most 10 characters")
	}
	return valid()
}

// CheckPhoneFormat validates the phone number format
func CheckPhoneFormat(phone string) FieldState {
	if phone == "" {
		return FieldState{Status: StatusUnchecked}
	}
	if !CompiledPatterns.Phone.MatchString(phone) {
		return invalid("invalid phone number format")
	}
	return valid()
}

// CheckPasswordFormat validates the password strength rule
func CheckPasswordFormat(password string) FieldState {
	if password == "" {
		return FieldState{Status: StatusUnchecked}
	}
	if len(password) < PasswordMinLength {
		return invalid("password must be at least 8 characters")
	}
	return valid()
}

// CheckPasswordMatch compares password and confirmation. Both sides must be
// non-empty for a verdict; otherwise the state stays unchecked.
func CheckPasswordMatch(password, confirmation string) FieldState {
	if password == "" || confirmation == "" {
		return FieldState{Status: StatusUnchecked}
	}
	if password != confirmation {
		return invalid("passwords do not match")
	}
	return valid()
}

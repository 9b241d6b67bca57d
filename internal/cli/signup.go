package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mealbadge/mealbadge-go/internal/signup"
	"github.com/mealbadge/mealbadge-go/internal/validation"
)

func newSignupCommand(app *App) *cobra.Command {
	var identityToken string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account through the interactive wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := signup.NewRegistrationDraft()
			draft.IdentityToken = identityToken

			fields := validation.NewFieldSet()
			checker := validation.NewChecker(app.Gateway, fields, app.Logger)
			resolver := signup.NewResolver(app.Gateway, draft, app.Logger)
			wizard := signup.NewWizard(app.Gateway, app.Session, draft, fields, app.Logger)

			prompt := &prompter{in: bufio.NewScanner(cmd.InOrStdin()), out: cmd.OutOrStdout()}

			if err := runAccountStep(cmd, wizard, checker, draft, prompt); err != nil {
				return err
			}
			if err := runSchoolStep(cmd, wizard, resolver, app, prompt); err != nil {
				return err
			}
			if err := runAllergyStep(cmd, wizard, draft, prompt); err != nil {
				return err
			}

			cmd.Println("Registration complete. You are now logged in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&identityToken, "identity-token", "", "external-identity token for social signup")

	return cmd
}

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
	eof bool
}

func (p *prompter) ask(label string) string {
	if p.eof {
		return ""
	}
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.in.Scan() {
		p.eof = true
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}

func runAccountStep(cmd *cobra.Command, wizard *signup.Wizard, checker *validation.Checker, draft *signup.RegistrationDraft, prompt *prompter) error {
	for !prompt.eof {
		draft.Email = prompt.ask("Email")
		if state := checker.CheckEmail(cmd.Context(), draft.Email); !state.IsValid() {
			cmd.Println(state.Message)
			continue
		}
		break
	}

	for !prompt.eof {
		draft.Nickname = prompt.ask("Nickname")
		if state := checker.CheckNickname(cmd.Context(), draft.Nickname); !state.IsValid() {
			cmd.Println(state.Message)
			continue
		}
		break
	}

	for !prompt.eof {
		draft.Phone = prompt.ask("Phone")
		if state := checker.CheckPhone(cmd.Context(), draft.Phone); !state.IsValid() {
			cmd.Println(state.Message)
			continue
		}
		break
	}

	for !prompt.eof {
		draft.Password = prompt.ask("Password")
		draft.ConfirmPassword = prompt.ask("Confirm password")
		if state := validation.CheckPasswordFormat(draft.Password); !state.IsValid() {
			cmd.Println(state.Message)
			continue
		}
		if state := validation.CheckPasswordMatch(draft.Password, draft.ConfirmPassword); !state.IsValid() {
			cmd.Println(state.Message)
			continue
		}
		break
	}

	if prompt.eof {
		return io.ErrUnexpectedEOF
	}

	draft.Name = prompt.ask("Name")
	draft.BirthDay = prompt.ask("Birth date (YYYY-MM-DD)")
	draft.Gender = prompt.ask("Gender")

	if err := wizard.Advance(); err != nil {
		return err
	}
	return nil
}

func runSchoolStep(cmd *cobra.Command, wizard *signup.Wizard, resolver *signup.Resolver, app *App, prompt *prompter) error {
	level := signup.Level(strings.ToUpper(prompt.ask("School level (ELEMENTARY/MIDDLE/HIGH)")))
	if err := resolver.SetLevel(level); err != nil {
		return err
	}

	schools, err := app.Gateway.SearchSchools(cmd.Context(), prompt.ask("School name"), string(level))
	if err != nil {
		return err
	}
	if len(schools) == 0 {
		return fmt.Errorf("no schools found")
	}
	for i, school := range schools {
		cmd.Printf("%d) %s (%s)\n", i+1, school.SchoolName, school.Address)
	}
	idx, err := strconv.Atoi(prompt.ask("Select school"))
	if err != nil || idx < 1 || idx > len(schools) {
		return fmt.Errorf("invalid school selection")
	}
	resolver.SelectSchool(cmd.Context(), schools[idx-1])

	if majors := resolver.Majors(); len(majors) > 0 {
		for i, major := range majors {
			cmd.Printf("%d) %s\n", i+1, major.Label)
		}
		idx, err := strconv.Atoi(prompt.ask("Select major"))
		if err != nil || idx < 1 || idx > len(majors) {
			return fmt.Errorf("invalid major selection")
		}
		resolver.SelectMajor(majors[idx-1].Label)
	}

	grade, err := strconv.Atoi(prompt.ask("Grade"))
	if err != nil {
		return fmt.Errorf("invalid grade")
	}
	if err := resolver.SelectGrade(cmd.Context(), grade); err != nil {
		return err
	}

	classes := resolver.Classes()
	if len(classes) == 0 {
		return fmt.Errorf("no classes available for this selection")
	}
	for i, class := range classes {
		cmd.Printf("%d) %s\n", i+1, class.Label)
	}
	idx, err = strconv.Atoi(prompt.ask("Select class"))
	if err != nil || idx < 1 || idx > len(classes) {
		return fmt.Errorf("invalid class selection")
	}
	resolver.SelectClass(classes[idx-1].Label)

	return wizard.Advance()
}

func runAllergyStep(cmd *cobra.Command, wizard *signup.Wizard, draft *signup.RegistrationDraft, prompt *prompter) error {
	raw := prompt.ask("Allergy ids, comma separated (optional)")
	if raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				cmd.Printf("Skipping invalid allergy id %q\n", part)
				continue
			}
			draft.ToggleAllergy(id)
		}
	}

	return wizard.Submit(cmd.Context())
}

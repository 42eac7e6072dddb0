package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/ppl/internal/adapters/render/people"
	"github.com/bnema/ppl/internal/application"
	"github.com/bnema/ppl/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatTOML = "toml"
)

var (
	errInvalidEmail    = errors.New("invalid email address")
	errInvalidPassword = errors.New("password must be at least 6 characters")
)

type fetchOutput struct {
	Search  string             `json:"search" toml:"search"`
	Status  domain.FetchStatus `json:"status" toml:"status"`
	Persons []domain.Person    `json:"persons" toml:"persons"`
}

func newFetchCmd(opts *rootOptions) *cobra.Command {
	var (
		email    string
		password string
		search   string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Log in, fetch persons, and print the filtered list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch format {
			case formatText, formatJSON, formatTOML:
			default:
				return fmt.Errorf("unsupported format %q (text, json or toml)", format)
			}

			form := application.NewLoginForm()
			form.Email.SetValue(email)
			form.Password.SetValue(password)
			validEmail, validPassword, ok := form.Submit()
			if !ok {
				return credentialsError(form)
			}

			app, err := wireApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.controller.Close()

			controller := app.controller
			var (
				mu      sync.Mutex
				persons []domain.Person
			)
			sub := controller.FilteredPersons().Subscribe(func(v []domain.Person) {
				mu.Lock()
				defer mu.Unlock()
				persons = v
			})
			defer sub.Unsubscribe()

			controller.UpdateSearch(search)
			login := func() { controller.Login(validEmail, validPassword) }

			err = app.withMetricsServer(cmd.Context(), func(ctx context.Context) error {
				if format == formatText {
					return runFetchProgress(ctx, cmd.ErrOrStderr(), controller, search, login)
				}
				login()
				return controller.Wait(ctx)
			})
			if err != nil {
				return err
			}

			status, _ := controller.Status().Value()
			if status == domain.FetchStatusError {
				return fmt.Errorf("fetch persons: %w", controller.Err())
			}

			mu.Lock()
			result := fetchOutput{Search: search, Status: status, Persons: persons}
			mu.Unlock()
			if result.Persons == nil {
				result.Persons = []domain.Person{}
			}

			return writeFetchOutput(cmd, format, result)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	cmd.Flags().StringVar(&search, "search", "", "only keep persons whose name contains this text")
	cmd.Flags().StringVar(&format, "format", formatText, "output format: text, json or toml")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func credentialsError(form *application.LoginForm) error {
	var errs []error
	if form.Email.ShowError() {
		errs = append(errs, errInvalidEmail)
	}
	if form.Password.ShowError() {
		errs = append(errs, errInvalidPassword)
	}
	return errors.Join(errs...)
}

func writeFetchOutput(cmd *cobra.Command, format string, result fetchOutput) error {
	var (
		encoded []byte
		err     error
	)

	switch format {
	case formatJSON:
		encoded, err = json.MarshalIndent(result, "", "  ")
		encoded = append(encoded, '\n')
	case formatTOML:
		encoded, err = toml.Marshal(result)
	default:
		var rendered string
		rendered, err = people.Render(result.Persons, people.RenderOptions{
			Search: result.Search,
			Status: result.Status,
		})
		encoded = []byte(rendered + "\n")
	}
	if err != nil {
		return fmt.Errorf("encode %s output: %w", format, err)
	}

	_, err = cmd.OutOrStdout().Write(encoded)
	return err
}

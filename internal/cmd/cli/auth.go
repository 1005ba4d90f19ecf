package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/clambin/ecobee-controller/internal/ecobee"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	keyCmd = cobra.Command{
		Use:   "key [key]",
		Short: "Store the ecobee application key",
		Long:  "Store the ecobee application key. Create one in the ecobee developer portal. If no key is given, key prompts for it.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore(viper.GetViper(), slog.Default())
			if err != nil {
				return err
			}
			var key string
			if len(args) > 0 {
				key = args[0]
			} else if key, err = readKey(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}
			return store.SetAPIKey(key)
		},
	}
	pinCmd = cobra.Command{
		Use:   "pin",
		Short: "Request a PIN to authorize the application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newStore(viper.GetViper(), slog.Default())
			if err != nil {
				return err
			}
			return requestPIN(cmd.Context(), newEcobeeClient(viper.GetViper(), store, nil, slog.Default()), cmd.OutOrStdout())
		},
	}
	authCmd = cobra.Command{
		Use:   "auth",
		Short: "Retrieve API tokens, once the PIN has been registered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newStore(viper.GetViper(), slog.Default())
			if err != nil {
				return err
			}
			return authorize(cmd.Context(), newEcobeeClient(viper.GetViper(), store, nil, slog.Default()), cmd.OutOrStdout())
		},
	}
	refreshCmd = cobra.Command{
		Use:   "refresh",
		Short: "Refresh the API tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newStore(viper.GetViper(), slog.Default())
			if err != nil {
				return err
			}
			if err = newEcobeeClient(viper.GetViper(), store, nil, slog.Default()).RefreshTokens(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "tokens refreshed")
			return nil
		},
	}
)

func readKey(r io.Reader, w io.Writer) (string, error) {
	_, _ = fmt.Fprint(w, "Enter your ecobee application key: ")
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	key := strings.TrimSpace(scanner.Text())
	if key == "" {
		return "", errors.New("no key entered")
	}
	return key, nil
}

// An Authorizer performs ecobee's PIN authorization.
type Authorizer interface {
	Authorize(ctx context.Context) (ecobee.Authorization, error)
	RequestTokens(ctx context.Context) error
	Status(ctx context.Context) (ecobee.Thermostats, error)
}

func requestPIN(ctx context.Context, a Authorizer, w io.Writer) error {
	auth, err := a.Authorize(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, `PIN: %s

Log in to the ecobee portal, go to "My Apps" and add an application with this PIN.
The PIN expires in %d minutes. Once the PIN is registered, run "ecobee auth".
`, auth.PIN, auth.ExpiresIn)
	return nil
}

func authorize(ctx context.Context, a Authorizer, w io.Writer) error {
	if err := a.RequestTokens(ctx); err != nil {
		return fmt.Errorf("tokens: %w", err)
	}
	thermostats, err := a.Status(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "authorized. %d thermostat(s) registered\n", len(thermostats))
	return writeStatus(w, "text", thermostats)
}

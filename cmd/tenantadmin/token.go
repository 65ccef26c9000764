package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jask/tenantadmin/internal/secrets"
)

func newTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the bearer token used in http backend mode",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set [token]",
			Short: "Store the token for backend.base_url (prompts when omitted)",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runTokenSet,
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the stored token for backend.base_url",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				store, err := secrets.DefaultStore()
				if err != nil {
					return err
				}
				if err := store.DeleteToken(cfg.Backend.BaseURL); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "token cleared for %s\n", cfg.Backend.BaseURL)
				return nil
			},
		},
	)
	return cmd
}

func runTokenSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	var token string
	if len(args) == 1 {
		token = args[0]
	} else if token, err = readToken(cmd); err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty token")
	}
	store, err := secrets.DefaultStore()
	if err != nil {
		return err
	}
	if err := store.StoreToken(cfg.Backend.BaseURL, token); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "token stored for %s\n", cfg.Backend.BaseURL)
	return nil
}

func readToken(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.ErrOrStderr(), "Token: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		return string(raw), err
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

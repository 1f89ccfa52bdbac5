package cmd

import (
	"errors"
	"strings"

	"dispatch/utils"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// NewHashPasswordCmd prints a bcrypt hash to paste into the Login sheet's
// password column.
func NewHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Hash a password for the Login sheet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) > 0 {
				password = args[0]
			} else {
				var err error
				password, err = promptPassword()
				if err != nil {
					return err
				}
			}
			if strings.TrimSpace(password) == "" {
				return errors.New("password must not be empty")
			}

			hash, err := utils.HashPassword(password)
			if err != nil {
				return err
			}
			cmd.Println(hash)
			return nil
		},
	}
}

func promptPassword() (string, error) {
	for {
		password1, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Password")
		if err != nil {
			return "", err
		}
		password2, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Confirm password")
		if err != nil {
			return "", err
		}
		if password1 == password2 {
			return password1, nil
		}
		pterm.Warning.Println("Passwords do not match. Please try again.")
	}
}

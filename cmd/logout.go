package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/nanoclass/internal/credential"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := credential.New(s.SettingsRepo()).Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Stored API key removed.")
		return nil
	},
}

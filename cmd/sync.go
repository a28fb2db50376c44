package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push local progress to the remote backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		if a.Sync == nil {
			return fmt.Errorf("sync is not configured; set remote.base_url and remote.api_key in the config file")
		}

		userID := a.Config.User.ID
		if login, _ := cmd.Flags().GetBool("login"); login {
			email, password, err := promptCredentials()
			if err != nil {
				return err
			}
			userID, err = a.SignIn(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Printf("Signed in. Set user.id: %s in the config file to skip the login next time.\n", userID)
		}

		if err := a.Sync.Sync(ctx, userID, false); err != nil {
			return err
		}
		fmt.Println("Progress pushed.")
		return nil
	},
}

func init() {
	syncCmd.Flags().Bool("login", false, "Sign in before syncing")
}

func promptCredentials() (email, password string, err error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Email: ")
	email, err = reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	fmt.Print("Password: ")
	password, err = reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(email), strings.TrimSpace(password), nil
}

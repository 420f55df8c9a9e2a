package cmd

import (
	"fmt"
	"log"

	"github.com/mteja/jobscout/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Store secrets in the OS keychain",
	Run: func(cmd *cobra.Command, _ []string) {
		setup(cmd)
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)

	setupCmd.Flags().String("account", geminiKeyringAccount, "keyring account name to store the secret under")
	setupCmd.Flags().Bool("delete", false, "delete the secret instead of storing one")
}

func setup(cmd *cobra.Command) {
	account := cmd.Flag("account").Value.String()

	if cmd.Flag("delete").Value.String() == "true" {
		if err := secrets.Delete(account); err != nil {
			log.Fatalf("deleting secret %q: %v", account, err)
		}
		fmt.Printf("deleted %q from the %s keychain\n", account, secrets.KeyringService)
		return
	}

	valuePrompt := promptui.Prompt{
		Label: fmt.Sprintf("Secret value for %q", account),
		Mask:  '*',
	}

	value, err := valuePrompt.Run()
	if err != nil {
		log.Fatalf("reading secret value: %v", err)
	}

	if err := secrets.Store(account, value); err != nil {
		log.Fatalf("storing secret %q: %v", account, err)
	}

	fmt.Printf("stored %q in the %s keychain\n", account, secrets.KeyringService)
}

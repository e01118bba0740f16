package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mzigoego/mzigo/auth"
	"github.com/mzigoego/mzigo/pkg/apierr"
)

// accountRoles maps registrable role codes to their display names.
var accountRoles = map[string]string{
	"customer": "Customer (send and track parcels)",
	"rider":    "Rider (carry deliveries)",
}

// isValidRole checks if a given role code can be used for registration.
func isValidRole(role string) bool {
	_, ok := accountRoles[strings.ToLower(role)]
	return ok
}

// promptForInput prompts the user for input and returns the trimmed string.
func promptForInput(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println("Error: Failed to read input.")
		os.Exit(1)
	}
	return strings.TrimSpace(input)
}

// promptForPassword prompts the user for a password securely and returns the trimmed string.
func promptForPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Println("Error: Failed to read password.")
		os.Exit(1)
	}
	fmt.Println() // Print a newline for better formatting
	return strings.TrimSpace(string(password))
}

// requireLogin resolves the session state and reports whether the user is
// logged in, printing a hint when they are not.
func requireLogin(cmd *cobra.Command, a *app) (auth.Snapshot, bool) {
	snap := a.service.Bootstrap(cmd.Context())
	if !snap.IsAuthenticated() {
		if snap.Err != "" {
			cmd.PrintErrln("Error:", snap.Err)
		}
		cmd.PrintErrln("You are not logged in. Run 'mzigo login' first.")
		return snap, false
	}
	return snap, true
}

// printAPIError prints a server failure, including per-field validation
// messages when present.
func printAPIError(cmd *cobra.Command, err error) {
	cmd.PrintErrln("Error:", err.Error())
	for field, msgs := range apierr.FieldsOf(err) {
		for _, msg := range msgs {
			cmd.PrintErrf("  %s: %s\n", field, msg)
		}
	}
}

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/s0up4200/ziclient/credentials"
	"github.com/s0up4200/ziclient/zoominfo"
)

// readPassword reads from the terminal without echo; replaced in tests
var readPassword = term.ReadPassword

// authCmd groups credential commands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage ZoomInfo credentials",
}

// authTestCmd represents the auth test command
var authTestCmd = &cobra.Command{
	Use:     "test",
	Short:   "Verify the configured credentials",
	PreRunE: initializeApp,
	RunE:    runAuthTest,
}

// authLoginCmd represents the auth login command
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the ZoomInfo password in the system keychain",
	Long: `Prompt for the ZoomInfo password, verify it against the API and store it
in the system keychain. Set zoominfo.use_keyring: true to use the stored password.`,
	PreRunE: loadCredentialConfig,
	RunE:    runAuthLogin,
}

// authLogoutCmd represents the auth logout command
var authLogoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Remove the stored ZoomInfo password from the system keychain",
	PreRunE: loadCredentialConfig,
	RunE:    runAuthLogout,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authTestCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
}

func runAuthTest(cmd *cobra.Command, args []string) error {
	if err := client.EnsureAuthenticated(cmd.Context()); err != nil {
		return err
	}

	expiry, _ := client.SessionExpiry()
	fmt.Printf("Authenticated as %s (token valid until %s)\n",
		cfg.ZoomInfo.Username, expiry.Local().Format(time.RFC3339))
	return nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	fmt.Fprintf(os.Stderr, "ZoomInfo password for %s: ", cfg.ZoomInfo.Username)
	raw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	password := strings.TrimSpace(string(raw))
	if password == "" {
		return errors.New("password must not be empty")
	}

	verifier, err := zoominfo.NewClient(cfg.ZoomInfo.URL, zoominfo.Credentials{
		Username: cfg.ZoomInfo.Username,
		Password: password,
	}, logger, zoominfo.WithTimeout(cfg.ZoomInfo.Timeout))
	if err != nil {
		return err
	}
	if err := verifier.EnsureAuthenticated(cmd.Context()); err != nil {
		return err
	}

	if err := credentials.NewStore("").Save(cfg.ZoomInfo.Username, password); err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}

	logger.Info().Str("username", cfg.ZoomInfo.Username).Msg("Stored ZoomInfo password in keychain")
	if !cfg.ZoomInfo.UseKeyring {
		fmt.Println("Set zoominfo.use_keyring: true in your config to use the stored password")
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	err := credentials.NewStore("").Delete(cfg.ZoomInfo.Username)
	if errors.Is(err, credentials.ErrNotFound) {
		fmt.Println("No stored password to remove")
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info().Str("username", cfg.ZoomInfo.Username).Msg("Removed ZoomInfo password from keychain")
	return nil
}

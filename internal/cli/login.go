package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/synbiotools/ice-cli/internal/config"
	"github.com/synbiotools/ice-cli/internal/connectors/ice"
)

var (
	loginURL          string
	loginEmail        string
	loginPrefix       string
	loginTimeout      int
	loginSavePassword bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the registry connection and verify credentials",
	Long: `Connects to the registry with the supplied credentials and, on
success, writes them to the config file. The password is only stored
when --save-password is given; otherwise other commands prompt for it.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginURL, "url", "", "registry base URL (required)")
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "login email (required)")
	loginCmd.Flags().StringVar(&loginPrefix, "prefix", ice.DefaultPartPrefix, "part number prefix")
	loginCmd.Flags().IntVar(&loginTimeout, "timeout", 0, "HTTP timeout in seconds (0 = none)")
	loginCmd.Flags().BoolVar(&loginSavePassword, "save-password", false, "store the password in the config file")
	_ = loginCmd.MarkFlagRequired("url")
	_ = loginCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	password, err := promptPassword(fmt.Sprintf("Password for %s: ", loginEmail))
	if err != nil {
		return err
	}

	client, err := ice.Connect(context.Background(), ice.Config{
		URL:        loginURL,
		Email:      loginEmail,
		Password:   password,
		PartPrefix: loginPrefix,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cfg := &config.Config{Registry: config.Registry{
		URL:            loginURL,
		Email:          loginEmail,
		PartPrefix:     loginPrefix,
		TimeoutSeconds: loginTimeout,
	}}
	if loginSavePassword {
		cfg.Registry.Password = password
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	cmd.Printf("Logged in as %s (%s)\n", client.Session().Name, client.Session().Email)
	cmd.Printf("Configuration written to %s\n", path)
	return nil
}

// promptPassword reads a password without echo when stdin is a
// terminal, falling back to a plain line read otherwise.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(password), nil
	}

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(input), nil
}

// Package main provides hirectl, the hirebase admin CLI.
// Usage: hirectl login --email admin@hirebase.local
//        hirectl campaigns list
//        hirectl links revoke <link-id>
//        hirectl candidates move <candidate-id> interview
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hirebase/internal/config"
	"hirebase/pkg/client"
	"hirebase/pkg/notify"
)

// sessionCookieName matches the cookie the API sets on login.
const sessionCookieName = "hb_session"

var rootCmd = &cobra.Command{
	Use:   "hirectl",
	Short: "Admin CLI for the hirebase recruitment API",
	Long: `hirectl drives the hirebase back office from the terminal.

Authentication is a bearer token in HIREBASE_TOKEN, obtained with
"hirectl login". The API base URL comes from HIREBASE_URL
(default http://localhost:8080/api) or the --url flag.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().String("url", "", "API base URL (overrides HIREBASE_URL)")

	rootCmd.AddCommand(
		loginCmd,
		logoutCmd,
		whoamiCmd,
		campaignsCmd,
		linksCmd,
		candidatesCmd,
		blacklistCmd,
		convocatoriasCmd,
		dashboardCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newAPIClient builds the SDK client with notifications routed to stderr
// and the bearer token from the environment, when present.
func newAPIClient(cmd *cobra.Command) (*client.Client, error) {
	cfg, err := config.LoadCLI()
	if err != nil {
		return nil, err
	}

	baseURL := cfg.BaseURL
	if flagURL, _ := cmd.Flags().GetString("url"); flagURL != "" {
		baseURL = flagURL
	}

	bus := notify.NewBus()
	bus.Subscribe(func(n notify.Notification) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Severity, n.Message)
	})

	c, err := client.New(baseURL,
		client.WithTimeout(cfg.Timeout),
		client.WithBus(bus),
		client.WithUnauthorizedHandler(func(loginURL string) {
			fmt.Fprintln(os.Stderr, "Not authenticated. Run: hirectl login")
		}),
	)
	if err != nil {
		return nil, err
	}

	if token := os.Getenv("HIREBASE_TOKEN"); token != "" {
		c.SetBearer(token)
	}
	return c, nil
}

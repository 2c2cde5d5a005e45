package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"hirebase/pkg/client"
)

// --- login / session ---

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and print the session token",
	Long: `Authenticate against the API and print the session token.

The password is read from HIREBASE_PASSWORD or the --password flag.
A second login while a session is active fails with SESSION_EXISTS;
pass --force to revoke the previous session.

Example:
  export HIREBASE_TOKEN=$(hirectl login --email admin@hirebase.local --password secret --quiet)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		force, _ := cmd.Flags().GetBool("force")
		quiet, _ := cmd.Flags().GetBool("quiet")

		if password == "" {
			password = os.Getenv("HIREBASE_PASSWORD")
		}
		if email == "" || password == "" {
			return fmt.Errorf("--email and a password (--password or HIREBASE_PASSWORD) are required")
		}

		c, err := newAPIClient(cmd)
		if err != nil {
			return err
		}

		session := client.NewSessionStore(c)
		err = session.Login(cmd.Context(), client.Credentials{
			UsernameOrEmail: email,
			Password:        password,
			Force:           force,
		})
		if err != nil {
			if msg := session.LastError(); msg != "" {
				return fmt.Errorf("login failed: %s", msg)
			}
			return err
		}

		token := c.Cookie(sessionCookieName)
		if quiet {
			fmt.Println(token)
			return nil
		}

		user := session.User()
		fmt.Fprintf(os.Stderr, "Logged in as %s\n", user.Email)
		fmt.Fprintln(os.Stderr, "Export the token for subsequent commands:")
		fmt.Printf("export HIREBASE_TOKEN=%s\n", token)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newAPIClient(cmd)
		if err != nil {
			return err
		}
		session := client.NewSessionStore(c)
		if err := session.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newAPIClient(cmd)
		if err != nil {
			return err
		}
		session := client.NewSessionStore(c)
		if err := session.Probe(cmd.Context()); err != nil {
			return err
		}
		if !session.IsAuthenticated() {
			return fmt.Errorf("not authenticated")
		}
		return printJSON(session.User())
	},
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (prefer HIREBASE_PASSWORD)")
	loginCmd.Flags().Bool("force", false, "revoke an existing active session")
	loginCmd.Flags().Bool("quiet", false, "print only the token")
}

// --- campaigns ---

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Manage recruitment campaigns",
}

var campaignsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List campaigns",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newAPIClient(cmd)
		if err != nil {
			return err
		}
		items, err := client.NewCampaigns(c).List(cmd.Context(), listQuery(cmd))
		if err != nil {
			return err
		}
		return printJSON(items)
	},
}

var campaignsGetCmd = &cobra.Command{
	Use:   "get <campaign-id>",
	Short: "Show one campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newAPIClient(cmd)
		if err != nil {
			return err
		}
		item, err := client.NewCampaigns(c).Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(item)
	},
}

var campaignsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a campaign from JSON (--file or stdin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := readJSONInput(cmd)
		if err != nil {
			return err
		}
		c, err := newAPIClient(cmd)
		if err != nil {
			return err
		}
		item, err := client.NewCampaigns(c).Create(cmd.Context(), body)
		if err != nil {
			return err
		}
		return printJSON(item)
	},
}

var campaignsUpdateCmd = &cobra.Command{
	Use:   "update <campaign-id>",
	Short: "Replace a campaign from JSON (--file or stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := readJSONInput(cmd)
		if err != nil {
			return err
		}
		c, err := newAPIClient(cmd)
		if err != nil {
			return err
		}
		item, err := client.NewCampaigns(c).Update(cmd.Context(), args[0], body)
		if err != nil {
			return err
		}
		return printJSON(item)
	},
}

var campaignsDeleteCmd = &cobra.Command{
	Use:   "delete <campaign-id>",
	Short: "Delete a campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newAPIClient(cmd)
		if err != nil {
			return err
		}
		if err := client.NewCampaigns(c).Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Deleted", args[0])
		return nil
	},
}

// --- links ---

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Manage recruitment links",
}

var linksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recruitment links",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newAPIClient(cmd)
		if err != nil {
			return err
		}
		query := listQuery(cmd)
		if campaignID, _ := cmd.Flags().GetString("campaign"); campaignID != "" {
			query.Set("campaign_id", campaignID)
		}
		items, err := client.NewLinks(c).List(cmd.Context(), query)
		if err != nil {
			return err
		}
		return printJSON(items)
	},
}

func linkActionCmd(action, short string, run func(*client.Links, context.Context, string) (client.Link, error)) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <link-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient(cmd)
			if err != nil {
				return err
			}
			item, err := run(client.NewLinks(c), cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(item)
		},
	}
}

// --- candidates ---

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Manage candidates",
}

var candidatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List candidates",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newAPIClient(cmd)
		if err != nil {
			return err
		}
		query := listQuery(cmd)
		if stage, _ := cmd.Flags().GetString("stage"); stage != "" {
			query.Set("stage", stage)
		}
		if campaignID, _ := cmd.Flags().GetString("campaign"); campaignID != "" {
			query.Set("campaign_id", campaignID)
		}
		items, err := client.NewCandidates(c).List(cmd.Context(), query)
		if err != nil {
			return err
		}
		return printJSON(items)
	},
}

var candidatesMoveCmd = &cobra.Command{
	Use:   "move <candidate-id> <stage>",
	Short: "Move a candidate to a pipeline stage",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newAPIClient(cmd)
		if err != nil {
			return err
		}
		item, err := client.NewCandidates(c).MoveStage(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(item)
	},
}

var candidatesReceiveDocCmd = &cobra.Command{
	Use:   "receive-doc <candidate-id> <document-name>",
	Short: "Mark a checklist document as received",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newAPIClient(cmd)
		if err != nil {
			return err
		}
		item, err := client.NewCandidates(c).ReceiveDocument(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(item)
	},
}

// --- blacklist ---

var blacklistCmd = &cobra.Command{
	Use:   "blacklist",
	Short: "Manage the applicant blacklist",
}

var blacklistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List blacklist entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newAPIClient(cmd)
		if err != nil {
			return err
		}
		items, err := client.NewBlacklist(c).List(cmd.Context(), listQuery(cmd))
		if err != nil {
			return err
		}
		return printJSON(items)
	},
}

var blacklistAddCmd = &cobra.Command{
	Use:   "add <email|national_id> <identifier>",
	Short: "Add a blacklist entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newAPIClient(cmd)
		if err != nil {
			return err
		}
		reason, _ := cmd.Flags().GetString("reason")
		item, err := client.NewBlacklist(c).Create(cmd.Context(), map[string]string{
			"kind":       args[0],
			"identifier": args[1],
			"reason":     reason,
		})
		if err != nil {
			return err
		}
		return printJSON(item)
	},
}

// --- convocatorias ---

var convocatoriasCmd = &cobra.Command{
	Use:   "convocatorias",
	Short: "Manage convocatorias",
}

var convocatoriasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List convocatorias",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newAPIClient(cmd)
		if err != nil {
			return err
		}
		items, err := client.NewConvocatorias(c).List(cmd.Context(), listQuery(cmd))
		if err != nil {
			return err
		}
		return printJSON(items)
	},
}

var convocatoriasCloseCmd = &cobra.Command{
	Use:   "close <convocatoria-id>",
	Short: "Close a convocatoria ahead of its window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newAPIClient(cmd)
		if err != nil {
			return err
		}
		item, err := client.NewConvocatorias(c).Close(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(item)
	},
}

// --- dashboard ---

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show resource totals across the back office",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newAPIClient(cmd)
		if err != nil {
			return err
		}

		campaigns := client.NewCampaigns(c)
		links := client.NewLinks(c)
		candidates := client.NewCandidates(c)
		convocatorias := client.NewConvocatorias(c)

		// Fetch all four lists concurrently; totals come from each cache.
		query := url.Values{"limit": {"1"}}
		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error { _, err := campaigns.List(ctx, query); return err })
		g.Go(func() error { _, err := links.List(ctx, query); return err })
		g.Go(func() error { _, err := candidates.List(ctx, query); return err })
		g.Go(func() error { _, err := convocatorias.List(ctx, query); return err })
		if err := g.Wait(); err != nil {
			return err
		}

		return printJSON(map[string]int64{
			"campaigns":     campaigns.Cache().Total(),
			"links":         links.Cache().Total(),
			"candidates":    candidates.Cache().Total(),
			"convocatorias": convocatorias.Cache().Total(),
		})
	},
}

func init() {
	campaignsCreateCmd.Flags().String("file", "", "JSON file ('-' or empty reads stdin)")
	campaignsUpdateCmd.Flags().String("file", "", "JSON file ('-' or empty reads stdin)")
	campaignsCmd.AddCommand(
		campaignsListCmd, campaignsGetCmd,
		campaignsCreateCmd, campaignsUpdateCmd, campaignsDeleteCmd,
	)

	linksListCmd.Flags().String("campaign", "", "filter by campaign ID")
	linksCmd.AddCommand(
		linksListCmd,
		linkActionCmd("expire", "Expire an active link", func(l *client.Links, ctx context.Context, id string) (client.Link, error) {
			return l.Expire(ctx, id)
		}),
		linkActionCmd("revoke", "Permanently revoke a link", func(l *client.Links, ctx context.Context, id string) (client.Link, error) {
			return l.Revoke(ctx, id)
		}),
		linkActionCmd("activate", "Re-activate an expired link", func(l *client.Links, ctx context.Context, id string) (client.Link, error) {
			return l.Activate(ctx, id)
		}),
	)

	candidatesListCmd.Flags().String("stage", "", "filter by pipeline stage")
	candidatesListCmd.Flags().String("campaign", "", "filter by campaign ID")
	candidatesCmd.AddCommand(candidatesListCmd, candidatesMoveCmd, candidatesReceiveDocCmd)

	blacklistAddCmd.Flags().String("reason", "", "why the identifier is blocked")
	blacklistCmd.AddCommand(blacklistListCmd, blacklistAddCmd)

	convocatoriasCmd.AddCommand(convocatoriasListCmd, convocatoriasCloseCmd)

	for _, c := range []*cobra.Command{
		campaignsListCmd, linksListCmd, candidatesListCmd,
		blacklistListCmd, convocatoriasListCmd,
	} {
		c.Flags().String("search", "", "search term")
		c.Flags().Int("limit", 50, "page size")
		c.Flags().Int("offset", 0, "page offset")
	}
}

// readJSONInput reads a JSON object from --file, or stdin when the flag
// is empty or "-".
func readJSONInput(cmd *cobra.Command) (map[string]any, error) {
	path, _ := cmd.Flags().GetString("file")

	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var body map[string]any
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode JSON input: %w", err)
	}
	return body, nil
}

// listQuery builds the common list query parameters from flags.
func listQuery(cmd *cobra.Command) url.Values {
	query := url.Values{}
	if search, _ := cmd.Flags().GetString("search"); search != "" {
		query.Set("search", search)
	}
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", limit))
	}
	if offset, _ := cmd.Flags().GetInt("offset"); offset > 0 {
		query.Set("offset", fmt.Sprintf("%d", offset))
	}
	return query
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

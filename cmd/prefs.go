package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/matheuskafuri/classicnews/internal/prefs"
	"github.com/matheuskafuri/classicnews/internal/theme"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change local preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show consent, theme and visited articles",
	RunE: withStore(func(cmd *cobra.Command, store *prefs.Store, args []string) error {
		showPrefs(cmd.OutOrStdout(), store)
		return nil
	}),
}

var prefsAcceptCmd = &cobra.Command{
	Use:   "accept",
	Short: "Allow storing theme and visited articles",
	RunE: withStore(func(cmd *cobra.Command, store *prefs.Store, args []string) error {
		store.Accept()
		if !store.Consented() {
			return fmt.Errorf("preference storage is not writable")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Local storage accepted.")
		return nil
	}),
}

var prefsRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Withdraw consent and delete stored theme and visited articles",
	RunE: withStore(func(cmd *cobra.Command, store *prefs.Store, args []string) error {
		store.Revoke()
		fmt.Fprintln(cmd.OutOrStdout(), "Local storage revoked, stored data removed.")
		return nil
	}),
}

var prefsThemeCmd = &cobra.Command{
	Use:       "theme light|dark",
	Short:     "Store the preferred theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(theme.Light), string(theme.Dark)},
	RunE: withStore(func(cmd *cobra.Command, store *prefs.Store, args []string) error {
		name, ok := theme.Parse(args[0])
		if !ok {
			return fmt.Errorf("unknown theme %q, want light or dark", args[0])
		}
		if !store.Consented() {
			return fmt.Errorf("local storage not accepted, run 'classicnews prefs accept' first")
		}
		store.SetTheme(string(name))
		fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s.\n", name.Palette().Label)
		return nil
	}),
}

func init() {
	prefsCmd.AddCommand(prefsShowCmd, prefsAcceptCmd, prefsRevokeCmd, prefsThemeCmd)
}

// withStore runs fn with the configured preference store open.
func withStore(fn func(cmd *cobra.Command, store *prefs.Store, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := oneShot(cmd)
		if err != nil {
			return err
		}
		store := openPrefs(cfg)
		defer store.Close()
		return fn(cmd, store, args)
	}
}

func showPrefs(w io.Writer, store *prefs.Store) {
	label := color.New(color.Bold).SprintFunc()
	switch {
	case store.Consented():
		fmt.Fprintf(w, "%s %s\n", label("consent:"), color.GreenString("accepted"))
	case store.Decided():
		fmt.Fprintf(w, "%s %s\n", label("consent:"), color.RedString("revoked"))
	default:
		fmt.Fprintf(w, "%s %s\n", label("consent:"), "not given")
	}

	t := store.Theme()
	if t == "" {
		t = "auto"
	}
	fmt.Fprintf(w, "%s %s\n", label("theme:"), t)

	ids := store.VisitedIDs()
	fmt.Fprintf(w, "%s %d/%d\n", label("visited:"), len(ids), prefs.MaxVisited)
	for _, id := range ids {
		fmt.Fprintf(w, "  %s\n", id)
	}
}

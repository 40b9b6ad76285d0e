package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/newbery/pyenv-uv-plugin/internal/reconcile"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered uv-managed installations",
	Long:  `Probe every registered installation and show its version, id, path, and whether it holds the version alias.`,
	RunE:  runList,
}

// listEntry represents one probed installation for display.
type listEntry struct {
	Version string `json:"version"`
	ID      string `json:"id"`
	Path    string `json:"path"`
	// Alias is true when the X.Y.Z alias currently points at this
	// installation.
	Alias bool `json:"alias"`
}

var listPrinter = message.NewPrinter(language.English)

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	opts, err := buildOptions(ctx)
	if err != nil {
		return err
	}

	records := reconcile.Collect(ctx, cmd.ErrOrStderr(), opts.VersionsDir, opts.Prefix, opts.Prober)
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No uv-managed installations registered.")
		return nil
	}

	entries := make([]listEntry, 0, len(records))
	versions := make(map[string]bool)
	for _, r := range records {
		aliasPath := filepath.Join(opts.VersionsDir, r.Version)
		owned, target, _ := opts.Links.Owns(aliasPath)
		entries = append(entries, listEntry{
			Version: r.Version,
			ID:      r.ID,
			Path:    r.Path,
			Alias:   owned && target == filepath.Clean(r.Path),
		})
		versions[r.Version] = true
	}

	sort.Slice(entries, func(i, j int) bool {
		vi, ei := semver.StrictNewVersion(entries[i].Version)
		vj, ej := semver.StrictNewVersion(entries[j].Version)
		if ei == nil && ej == nil && !vi.Equal(vj) {
			return vi.LessThan(vj)
		}
		if entries[i].Version != entries[j].Version {
			return entries[i].Version < entries[j].Version
		}
		return entries[i].ID < entries[j].ID
	})

	if listJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "VERSION\tID\tALIAS\tPATH")
	for _, e := range entries {
		alias := ""
		if e.Alias {
			alias = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Version, e.ID, alias, e.Path)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	listPrinter.Fprintf(cmd.OutOrStdout(), "\n%d installations, %d distinct versions\n", len(entries), len(versions))
	return nil
}

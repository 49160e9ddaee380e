package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/errorbook"
	"github.com/abhisek/lexiz/internal/stats"
	"github.com/abhisek/lexiz/internal/vocab"
)

var errorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "Manage the error set",
}

var errorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List words in the error set",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		entries := errorbook.Collect(env.words, env.book)
		if len(entries) == 0 {
			fmt.Println("The error set is empty.")
			return nil
		}
		fmt.Printf("%-6s  %-20s  %-24s  %5s  %s\n", "ID", "Word", "Meaning", "Wrong", "Last wrong")
		fmt.Println(strings.Repeat("─", 80))
		for _, e := range entries {
			last := "-"
			if e.LastWrongAt != nil {
				last = e.LastWrongAt.Local().Format("2006-01-02 15:04")
			}
			fmt.Printf("%-6s  %-20s  %-24s  %5d  %s\n",
				e.ID, truncate(e.English, 20), truncate(e.Chinese, 24), e.TimesWrong, last)
		}
		fmt.Printf("\n%d words\n", len(entries))
		return nil
	},
}

var errorsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the error set as JSON or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = formatOf(out)
		}
		if format == "xlsx" && out == "" {
			return fmt.Errorf("xlsx export needs --out")
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		entries := errorbook.Collect(env.words, env.book)
		if len(entries) == 0 {
			fmt.Fprintln(os.Stderr, "The error set is empty, nothing to export.")
			return nil
		}

		var w io.Writer = os.Stdout
		if out != "" {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()
			w = f
		}

		switch format {
		case "json":
			err = errorbook.ExportJSON(w, entries, time.Now())
		case "xlsx":
			err = errorbook.ExportXLSX(w, entries)
		default:
			return fmt.Errorf("unknown format %q (want json or xlsx)", format)
		}
		if err != nil {
			return err
		}
		if out != "" {
			fmt.Fprintf(os.Stderr, "Exported %d words to %s\n", len(entries), out)
		}
		return nil
	},
}

var errorsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge an exported error set into the local one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vocabOut, _ := cmd.Flags().GetString("vocab-out")

		entries, err := readEntries(args[0])
		if err != nil {
			return err
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		res := errorbook.Merge(env.words, env.book, entries)

		// New words get ids that exist only in res.Words, so their history
		// is kept only when that vocabulary is written out.
		ids := res.Known()
		if res.Added > 0 && vocabOut != "" {
			if err := writeVocab(vocabOut, res.Words); err != nil {
				return err
			}
			fmt.Printf("Wrote %d words to %s\n", len(res.Words), vocabOut)
			ids = res.Touched
		}

		if err := saveStats(cmd.Context(), env, ids); err != nil {
			return err
		}

		fmt.Printf("Imported %d words: %d updated, %d new.\n", len(entries), res.Updated, res.Added)
		if res.Added > 0 && vocabOut == "" {
			fmt.Fprintf(os.Stderr, "warning: %d new words were skipped because they are not in %s; pass --vocab-out to keep them\n",
				res.Added, env.cfg.VocabPath)
		}
		return nil
	},
}

func writeVocab(path string, words []vocab.Item) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return vocab.WriteJSON(f, words)
}

func saveStats(ctx context.Context, e *env, ids []string) error {
	records := make([]stats.WordStats, 0, len(ids))
	for _, id := range ids {
		ws, _ := e.book.Get(id)
		records = append(records, ws)
	}
	if err := e.store.StatsRepo().SaveAll(ctx, records); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

var errorsRemoveCmd = &cobra.Command{
	Use:   "remove <id>...",
	Short: "Take words out of the error set",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.StatsRepo()
		for _, id := range args {
			removed, err := repo.ClearError(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("clear %s: %w", id, err)
			}
			if removed {
				fmt.Printf("Removed %s\n", id)
			} else {
				fmt.Fprintf(os.Stderr, "warning: %s is not in the error set\n", id)
			}
		}
		return nil
	},
}

func init() {
	errorsExportCmd.Flags().String("out", "", "Output file (JSON goes to stdout when empty)")
	errorsExportCmd.Flags().String("format", "", "json or xlsx (default from --out extension, else json)")
	errorsImportCmd.Flags().String("vocab-out", "", "Write the vocabulary including new words to this JSON file")

	errorsCmd.AddCommand(errorsListCmd)
	errorsCmd.AddCommand(errorsExportCmd)
	errorsCmd.AddCommand(errorsImportCmd)
	errorsCmd.AddCommand(errorsRemoveCmd)
}

func formatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return "xlsx"
	}
	return "json"
}

func readEntries(path string) ([]errorbook.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if formatOf(path) == "xlsx" {
		return errorbook.ImportXLSX(f)
	}
	return errorbook.ImportJSON(f)
}

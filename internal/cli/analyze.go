package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"resume-review/internal/analyses"
	"resume-review/internal/bootstrap"
	"resume-review/internal/extract"
	"resume-review/internal/report"
)

func newAnalyzeCmd(opts Options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a resume and store the result in history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			up, err := readUpload(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				entry, err := app.AnalysesService.Analyze(cmd.Context(), up)
				if err != nil {
					f := analyses.Classify(err)
					return fmt.Errorf("%s: %s", f.Code, f.Message)
				}
				if asJSON {
					return writeJSON(cmd, entry)
				}
				fmt.Fprintln(cmd.OutOrStdout(), report.Entry(opts.Styles, entry))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the stored history entry as JSON")
	return cmd
}

func newExtractCmd(opts Options) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Print the text recovered from a document",
		Long:  `Runs only the text recovery step. Nothing is sent to the language model or stored.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			if mode == "" {
				mode = opts.Config().Extractor
			}
			text, err := extract.New(mode).Extract(cmd.Context(), data)
			if err != nil {
				if errors.Is(err, extract.ErrTextTooShort) {
					return fmt.Errorf("%s: %s", analyses.CodeRecovery, err)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "extractor", "", "Extraction mode: heuristic, pdf or auto (default from EXTRACTOR)")
	return cmd
}

func readUpload(path string) (analyses.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return analyses.Upload{}, fmt.Errorf("read %s: %w", path, err)
	}
	return analyses.Upload{
		FileName:    filepath.Base(path),
		ContentType: contentTypeFor(path),
		Data:        data,
	}, nil
}

func contentTypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ""
	}
	if ext == ".pdf" {
		return "application/pdf"
	}
	ct := mime.TypeByExtension(ext)
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return ct
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

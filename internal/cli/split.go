package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	renamed "github.com/renamed-to/renamed-go"
)

// downloadConcurrency bounds parallel result downloads.
const downloadConcurrency = 4

// SplitCmd creates the split command.
func SplitCmd(env *Env) *cobra.Command {
	var (
		mode          string
		pagesPerSplit int
		outputDir     string
	)

	cmd := &cobra.Command{
		Use:   "split <file.pdf>",
		Short: "Split a PDF into separate documents",
		Long: `Split a PDF into separate documents.

The split runs asynchronously on the server; the command polls until the
job finishes. With --output, every resulting document is downloaded into
the given directory.`,
		Example: `  renamed split scans.pdf
  renamed split scans.pdf --mode pages --pages-per-split 2
  renamed split scans.pdf --output ./parts`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, env, args[0], mode, pagesPerSplit, outputDir)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "auto", "Split mode: auto, pages, blank")
	cmd.Flags().IntVar(&pagesPerSplit, "pages-per-split", 0, "Pages per document (mode=pages)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory to download the split documents into")

	return cmd
}

func runSplit(cmd *cobra.Command, env *Env, path, mode string, pagesPerSplit int, outputDir string) error {
	switch renamed.SplitMode(mode) {
	case renamed.SplitModeAuto, renamed.SplitModePages, renamed.SplitModeBlank:
	default:
		return fmt.Errorf("invalid mode %q: must be auto, pages, or blank", mode)
	}

	client, err := env.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := cmd.Context()

	job, err := client.Documents.PDFSplitWithContext(ctx, renamed.File(path), &renamed.PdfSplitOptions{
		Mode:          renamed.SplitMode(mode),
		PagesPerSplit: pagesPerSplit,
	})
	if err != nil {
		return err
	}

	result, err := job.WaitContext(ctx, func(status *renamed.JobStatusResponse) {
		fmt.Fprintf(env.ErrOut, "\r%s %d%%", status.Status, status.Progress)
	})
	fmt.Fprintln(env.ErrOut)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Out, "%s: %d pages -> %d documents\n",
		result.OriginalFilename, result.TotalPages, len(result.Documents))
	for _, doc := range result.Documents {
		fmt.Fprintf(env.Out, "  %s (pages %s)\n", doc.Filename, doc.Pages)
	}

	if outputDir == "" {
		return nil
	}
	return downloadAll(cmd, env, client, result.Documents, outputDir)
}

// downloadAll fetches every split document into dir, a few at a time.
func downloadAll(cmd *cobra.Command, env *Env, client *renamed.Client, docs []renamed.SplitDocument, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(downloadConcurrency)

	for _, doc := range docs {
		doc := doc
		g.Go(func() error {
			data, err := client.Documents.DownloadWithContext(ctx, doc.DownloadURL)
			if err != nil {
				return fmt.Errorf("download %s: %w", doc.Filename, err)
			}
			target := filepath.Join(dir, doc.Filename)
			if err := os.WriteFile(target, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", target, err)
			}
			fmt.Fprintf(env.Out, "downloaded %s\n", target)
			return nil
		})
	}
	return g.Wait()
}

package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/votecloud/votecloud/pkg/errors"
	"github.com/votecloud/votecloud/pkg/render/cloud"
	"github.com/votecloud/votecloud/pkg/score"
	"github.com/votecloud/votecloud/pkg/store"
)

const defaultOutput = "leaderboard.png"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	labels  string // file with the label universe
	votes   string // file with one event per vote
	dataDir string // FileStore directory to read instead of label/vote files
	output  string // output PNG path, "-" for stdout
	seed    uint64 // 0 draws a fresh seed
	size    int    // canvas edge length in pixels
}

// renderCommand creates the render command for drawing a word cloud offline.
//
// Inputs are either two list files (--labels and --votes) or a data
// directory written by `votecloud serve` (--data). List files are JSON
// arrays of strings, or plain text with one entry per line.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{output: defaultOutput, size: cloud.DefaultSize}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a word cloud PNG from labels and votes",
		Example: `  votecloud render --labels names.txt --votes votes.json -o cloud.png
  votecloud render --data ./data --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.labels, "labels", "l", "", "file with every label that should appear (JSON array or one per line)")
	cmd.Flags().StringVarP(&opts.votes, "votes", "e", "", "file with one label per vote (JSON array or one per line)")
	cmd.Flags().StringVarP(&opts.dataDir, "data", "d", "", "read contacts.json and votes.json from this directory")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output PNG file, - for stdout")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for reproducible output (0 = random)")
	cmd.Flags().IntVar(&opts.size, "size", opts.size, "canvas edge length in pixels")
	cmd.MarkFlagsMutuallyExclusive("data", "labels")
	cmd.MarkFlagsMutuallyExclusive("data", "votes")
	cmd.MarkFlagFilename("labels", "json", "txt")
	cmd.MarkFlagFilename("votes", "json", "txt")
	cmd.MarkFlagFilename("output", "png")
	cmd.MarkFlagDirname("data")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts renderOpts) error {
	universe, events, err := loadBallot(ctx, opts)
	if err != nil {
		return err
	}
	ranking := score.Aggregate(universe, events)
	c.Logger.Debug("aggregated votes", "labels", len(ranking), "votes", len(events))

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %d labels...", len(ranking)))
	spinner.Start()

	res, err := cloud.Render(ranking,
		cloud.WithSeed(opts.seed),
		cloud.WithSize(opts.size),
		cloud.WithLogger(c.Logger))
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d labels", len(ranking)))

	if opts.output == "-" {
		_, err := c.Out.Write(res.PNG)
		return err
	}
	if err := writeOutput(opts.output, res.PNG); err != nil {
		return err
	}

	ui := c.ui()
	ui.success("Rendered word cloud")
	ui.file(opts.output)
	ui.stats(res.Placed, res.Dropped, ranking)
	if res.Dropped > 0 {
		ui.warning("%d labels did not fit on the canvas", res.Dropped)
	}
	return nil
}

// loadBallot returns the label universe and vote events named by opts.
func loadBallot(ctx context.Context, opts renderOpts) (universe, events []string, err error) {
	if opts.dataDir != "" {
		if _, err := os.Stat(opts.dataDir); err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeNotFound, err, "data directory %s", opts.dataDir)
		}
		s, err := store.NewFileStore(opts.dataDir)
		if err != nil {
			return nil, nil, err
		}
		defer s.Close()
		return store.Ballot(ctx, s)
	}

	if opts.labels == "" && opts.votes == "" {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "nothing to render: pass --labels/--votes or --data")
	}
	if opts.labels != "" {
		if universe, err = readList(opts.labels); err != nil {
			return nil, nil, err
		}
	}
	if opts.votes != "" {
		if events, err = readList(opts.votes); err != nil {
			return nil, nil, err
		}
	}
	return universe, events, nil
}

// readList reads a JSON array of strings (.json) or one entry per line.
// Blank lines are skipped.
func readList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var list []string
		if err := json.NewDecoder(f).Decode(&list); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s: expected a JSON array of strings", path)
		}
		return list, nil
	}

	var list []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			list = append(list, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return list, nil
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeStorage, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
	}
	return nil
}

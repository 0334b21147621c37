package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flipkit/pkg/flip"
	"github.com/matzehuels/flipkit/pkg/observability"
	"github.com/matzehuels/flipkit/pkg/render/frames"
	"github.com/matzehuels/flipkit/pkg/render/term"
	"github.com/matzehuels/flipkit/pkg/scene"
)

// playOpts holds the command-line flags for the play command.
type playOpts struct {
	fps    int     // simulated frame rate
	frames string  // directory for PNG frames, empty to skip
	scale  float64 // PNG pixel scale
	debug  bool    // freeze every transition at its start
	print  bool    // print the settled layout of every frame
}

// playRow summarizes one transition.
type playRow struct {
	frame  int
	name   string
	report flip.Report
	steps  int
}

// playResult is what runPlay did.
type playResult struct {
	rows    []playRow
	stats   observability.StatsSnapshot
	written int
}

// playCommand creates the play command, which runs a scene headlessly.
func (c *CLI) playCommand() *cobra.Command {
	var opts playOpts

	cmd := &cobra.Command{
		Use:   "play [scene]",
		Short: "Play every transition of a scene headlessly",
		Long: `Play loads a scene, runs the transition into each of its frames on a
simulated clock and prints a summary of what moved. With --frames every
animation frame is written as a PNG image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("fps") {
				opts.fps = c.config.FPS
			}
			if !cmd.Flags().Changed("scale") {
				opts.scale = c.config.Scale
			}
			res, err := runPlay(cmd.Context(), args[0], opts, c.config, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), summaryTable(res))
			if opts.debug {
				printInfo(cmd.OutOrStdout(), "Debug mode: every transition stopped at its first frame")
			}
			if res.written > 0 {
				printSuccess(cmd.OutOrStdout(), "Wrote %d frames", res.written)
				printFile(cmd.OutOrStdout(), opts.frames)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.fps, "fps", defaultFPS, "simulated frame rate")
	cmd.Flags().StringVar(&opts.frames, "frames", "", "write PNG frames to this directory")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "PNG pixel scale")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "apply the start of each transition and stop")
	cmd.Flags().BoolVar(&opts.print, "print", false, "print the settled layout of every frame")

	return cmd
}

// runPlay plays the scene at path and returns per-transition results. The
// settled layout of each frame goes to out when opts.print is set.
func runPlay(ctx context.Context, path string, opts playOpts, cfg Config, out io.Writer) (*playResult, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Infof("Loaded scene %s: %d frames, %d nodes", s.Name, len(s.Frames), s.TotalNodes(0))

	stats := &observability.Stats{}
	observability.SetAnimationHooks(stats)
	defer observability.Reset()

	sess, err := newSession(s, logger, opts.debug)
	if err != nil {
		return nil, err
	}

	var rec *frames.Recorder
	var spin *Spinner
	if opts.frames != "" {
		rec, err = frames.NewRecorder(opts.frames, frames.WithScale(opts.scale))
		if err != nil {
			return nil, err
		}
		if _, err := rec.Record(sess.doc); err != nil {
			return nil, err
		}
		spin = newSpinner(ctx, "Writing frames")
		spin.Start()
		defer spin.Stop()
	}

	termOpts := term.Options{Columns: cfg.Columns, Color: cfg.Color}
	if opts.print {
		fmt.Fprintln(out, term.Render(sess.doc, termOpts))
	}

	fps := opts.fps
	if fps <= 0 {
		fps = defaultFPS
	}
	interval := time.Second / time.Duration(fps)
	now := time.Now()

	res := &playResult{}
	for i := 1; i < sess.frames(); i++ {
		rep, err := sess.goTo(i)
		if err != nil {
			return nil, err
		}

		steps := 0
		for steps < maxSettleSteps && !sess.loop.Idle() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			now = now.Add(interval)
			sess.loop.Step(now)
			steps++
			if rec != nil {
				if _, err := rec.Record(sess.doc); err != nil {
					return nil, err
				}
				spin.SetMessage(fmt.Sprintf("Writing frames (%d)", rec.Count()))
			}
		}
		if !sess.loop.Idle() {
			logger.Warn("transition did not settle", "frame", i, "steps", steps)
		}

		logger.Debug("frame settled", "frame", i, "transition", rep.ID, "steps", steps)
		res.rows = append(res.rows, playRow{frame: i, name: s.Frames[i].Name, report: rep, steps: steps})
		if opts.print {
			fmt.Fprintln(out, term.Render(sess.doc, termOpts))
		}
	}

	if rec != nil {
		res.written = rec.Count()
	}
	res.stats = stats.Snapshot()
	prog.done(fmt.Sprintf("Played %d transitions", len(res.rows)))
	return res, nil
}

// summaryTable renders the per-transition results.
func summaryTable(res *playResult) string {
	rows := make([][]string, 0, len(res.rows))
	for _, r := range res.rows {
		name := r.name
		if name == "" {
			name = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(r.frame),
			name,
			strconv.Itoa(r.report.Started),
			strconv.Itoa(r.report.Skipped),
			strconv.Itoa(r.report.Appeared),
			strconv.Itoa(r.report.Exited),
			strconv.Itoa(r.steps),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Frame", "Name", "Animated", "Skipped", "Appeared", "Exited", "Steps").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 {
				return StyleNumber
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	s := res.stats
	footer := StyleDim.Render(fmt.Sprintf("%d started · %d completed · %d abandoned · %d frames",
		s.Started, s.Completed, s.Abandoned, s.Frames))
	return t.Render() + "\n" + footer
}

package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flipkit/pkg/anim"
	"github.com/matzehuels/flipkit/pkg/buildinfo"
	"github.com/matzehuels/flipkit/pkg/flip"
	"github.com/matzehuels/flipkit/pkg/scene"
	"github.com/matzehuels/flipkit/pkg/surface"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "flipkit"

	// defaultFPS is the frame rate of playback and the demo.
	defaultFPS = 60

	// maxSettleSteps bounds headless playback of one transition.
	maxSettleSteps = 60 * 30
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Flipkit plays FLIP layout animations",
		Long:         `Flipkit animates layout changes with the FLIP technique: it measures boxes before and after an update, inverts the difference and plays it back with springs or tweens. Scenes are described in TOML, YAML or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/flipkit/config.toml)")

	// Register all subcommands
	root.AddCommand(c.playCommand())
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Session - one scene bound to an engine
// =============================================================================

// session is a scene being played: the document, the scheduler driving it
// and the flipper carrying snapshots between frames.
type session struct {
	scene   *scene.Scene
	doc     *surface.Document
	loop    *anim.Loop
	flipper *flip.Flipper
	frame   int
}

// newSession builds frame 0 of s. debug forces debug mode on top of the
// scene options.
func newSession(s *scene.Scene, logger *log.Logger, debug bool) (*session, error) {
	doc, err := s.Document(0)
	if err != nil {
		return nil, err
	}
	opts, err := s.FlipOptions()
	if err != nil {
		return nil, err
	}
	opts.Debug = opts.Debug || debug

	loop := anim.NewLoop()
	engine := flip.New(loop, flip.WithLogger(logger))
	f := flip.NewFlipper(engine, doc, opts)
	for id, cb := range s.Callbacks(loop, f.Registry(), doc) {
		f.On(id, cb)
	}
	return &session{scene: s, doc: doc, loop: loop, flipper: f}, nil
}

// goTo captures the current layout, applies frame i and starts the
// transition.
func (s *session) goTo(i int) (flip.Report, error) {
	s.flipper.Capture()
	if err := s.scene.Apply(s.doc, i); err != nil {
		return flip.Report{}, err
	}
	s.frame = i
	return s.flipper.Flip(), nil
}

// frames returns the number of frames in the scene.
func (s *session) frames() int { return len(s.scene.Frames) }

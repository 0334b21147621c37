package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flipkit/pkg/cache"
	"github.com/matzehuels/flipkit/pkg/errors"
	"github.com/matzehuels/flipkit/pkg/render/tree"
	"github.com/matzehuels/flipkit/pkg/scene"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	frame    int
	format   string
	output   string
	detailed bool
	scale    float64
	noCache  bool
}

// treeFormats are the supported diagram formats.
var treeFormats = []string{"dot", "svg", "pdf", "png"}

// treeCommand creates the tree command, which diagrams the node tree of a
// scene frame.
func (c *CLI) treeCommand() *cobra.Command {
	var opts treeOpts

	cmd := &cobra.Command{
		Use:   "tree [scene]",
		Short: "Diagram the node tree of a scene frame",
		Long: `Tree builds one frame of a scene and writes its node tree as a Graphviz
diagram. Flip ids are filled, inverse relationships are dashed and nodes
taken out of the flow are greyed out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("scale") {
				opts.scale = c.config.Scale
			}
			store := c.openCache(cmd.Context(), opts.noCache)
			defer store.Close()
			path, err := runTree(cmd.Context(), args[0], opts, store)
			if err != nil {
				return err
			}
			if path != "" {
				printSuccess(cmd.OutOrStdout(), "Rendered frame %d", opts.frame)
				printFile(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.frame, "frame", 0, "frame index to diagram")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "svg", "output format: dot, svg, pdf, png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: scene name with format extension, - for stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include geometry and style in labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "PNG pixel scale")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render even if a cached diagram exists")

	return cmd
}

// treeOutputPath derives the output file when none was given.
func treeOutputPath(scenePath, output, format string) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(filepath.Base(scenePath), filepath.Ext(scenePath))
	return base + ".tree." + format
}

// openCache returns the diagram cache, or a null cache when disabled or
// unavailable.
func (c *CLI) openCache(ctx context.Context, disabled bool) cache.Cache {
	if disabled {
		return cache.NewNullCache()
	}
	logger := loggerFromContext(ctx)
	dir, err := c.config.cacheDir()
	if err != nil {
		logger.Debug("no cache dir", "err", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// runTree renders the requested frame and writes it. It returns the path
// written, or "" when the diagram went to stdout.
func runTree(ctx context.Context, path string, opts treeOpts, store cache.Cache) (string, error) {
	logger := loggerFromContext(ctx)

	if err := errors.ValidateFormat(opts.format, treeFormats...); err != nil {
		return "", err
	}

	s, err := scene.Load(path)
	if err != nil {
		return "", err
	}
	doc, err := s.Document(opts.frame)
	if err != nil {
		return "", err
	}
	logger.Debugf("Diagramming frame %d of %s (%d nodes)", opts.frame, s.Name, s.TotalNodes(opts.frame))

	data, err := cachedRender(ctx, store, tree.ToDOT(doc, tree.Options{Detailed: opts.detailed}), opts.format, opts.scale)
	if err != nil {
		return "", err
	}

	if opts.output == "-" {
		_, err := os.Stdout.Write(data)
		return "", err
	}
	out := treeOutputPath(path, opts.output, opts.format)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "write %s", out)
	}
	return out, nil
}

// cachedRender renders dot unless store already holds the result.
func cachedRender(ctx context.Context, store cache.Cache, dot, format string, scale float64) ([]byte, error) {
	if format == "dot" {
		return []byte(dot), nil
	}
	logger := loggerFromContext(ctx)
	key := cache.DiagramKey(dot, format, scale)

	if data, hit, err := store.Get(ctx, key); err != nil {
		logger.Debug("cache read failed", "err", err)
	} else if hit {
		logger.Debug("diagram served from cache", "format", format)
		return data, nil
	}

	data, err := renderTree(dot, format, scale)
	if err != nil {
		return nil, err
	}
	if err := store.Set(ctx, key, data, cache.DiagramTTL); err != nil {
		logger.Debug("cache write failed", "err", err)
	}
	return data, nil
}

func renderTree(dot, format string, scale float64) ([]byte, error) {
	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg":
		return tree.RenderSVG(dot)
	case "pdf":
		return tree.RenderPDF(dot)
	case "png":
		return tree.RenderPNG(dot, scale)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/letolabs/treemachine/pkg/config"
	"github.com/letolabs/treemachine/pkg/pipeline"
	"github.com/letolabs/treemachine/pkg/source"
)

// outputOpts are the flags controlling what a resolving command writes.
type outputOpts struct {
	output        string
	formats       string
	branchLengths bool
	detailed      bool
}

func (o *outputOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&o.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated, default newick)")
	cmd.Flags().BoolVar(&o.branchLengths, "branch-lengths", false, "include branch lengths in Newick output")
	cmd.Flags().BoolVar(&o.detailed, "detailed", false, "annotate drawn nodes with their ids and depths")
}

func (o *outputOpts) pipelineOptions(refresh bool) pipeline.Options {
	return pipeline.Options{
		Formats:       parseFormats(o.formats),
		BranchLengths: o.branchLengths,
		Detailed:      o.detailed,
		Refresh:       refresh,
	}
}

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		out   outputOpts
		cache cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "resolve [input.json]",
		Short: "Resolve ranked candidates from a JSON document",
		Long: `Resolve reads nodes with their descendant sets and candidate edges in rank
order, accepts each candidate compatible with those accepted before it, and
writes the resulting tree.

Without --output, text formats (newick, json, dot) go to stdout and drawings
are written next to the input file.`,
		Example: `  treemachine resolve candidates.json
  treemachine resolve candidates.json -f newick,svg -o out/tree
  treemachine resolve candidates.json --branch-lengths --no-cache`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := out.pipelineOptions(cache.refresh)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := cache.apply(cfg); err != nil {
				return err
			}
			return c.runResolve(cmd.Context(), cfg, source.NewFileSource(args[0]), opts, out.output, args[0])
		},
	}

	out.register(cmd)
	cache.register(cmd)
	return cmd
}

// runResolve executes the pipeline for src and writes its artifacts.
// input names the default base path for drawings.
func (c *CLI) runResolve(ctx context.Context, cfg *config.Config, src source.Source, opts pipeline.Options, output, input string) error {
	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, src, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %d candidates", result.Stats.EdgeCount))

	if err := writeArtifacts(result, opts.Formats, output, input); err != nil {
		return err
	}

	rep := result.Report
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.ResolveHit)
	printDetail("%d accepted · %d rejected · %d removed", len(rep.Accepted), len(rep.Rejected), len(rep.Removed))
	for _, r := range rep.Rejected {
		c.Logger.Debug("rejected", "edge", r.Edge.ID, "reason", r.Reason, "offender", r.Offender.ID)
	}
	return nil
}

// textFormats may be written to stdout.
var textFormats = map[string]bool{
	pipeline.FormatNewick: true,
	pipeline.FormatJSON:   true,
	pipeline.FormatDOT:    true,
}

// writeArtifacts writes each artifact. A single text artifact with no
// output path goes to stdout; everything else is written to files.
func writeArtifacts(result *pipeline.Result, formats []string, output, input string) error {
	if len(formats) == 1 {
		format := formats[0]
		data := result.Artifacts[format]
		if output == "" && textFormats[format] {
			_, err := os.Stdout.Write(data)
			return err
		}
		path := output
		if path == "" {
			path = basePath("", input) + "." + format
		}
		return writeFile(path, data)
	}

	base := basePath(output, input)
	for _, format := range formats {
		if err := writeFile(base+"."+format, result.Artifacts[format]); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .json, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

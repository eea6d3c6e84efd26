package pipeline

import (
	"bytes"
	"fmt"

	tmio "github.com/letolabs/treemachine/pkg/io"
	"github.com/letolabs/treemachine/pkg/render/nodelink"
	"github.com/letolabs/treemachine/pkg/resolve"
	"github.com/letolabs/treemachine/pkg/tree"
)

// PNGScale is the scale factor for PNG output.
const PNGScale = 2.0

// Render generates output artifacts in the requested formats. The Newick
// artifact is terminated with ";" and a newline, as Newick files are.
func Render(root *tree.Node, rep *resolve.Report, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string
	dotFor := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(root, nodelink.Options{Detailed: opts.Detailed, BranchLengths: opts.BranchLengths})
		}
		return dot
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatNewick:
			data = []byte(root.Newick(opts.BranchLengths) + ";\n")
		case FormatJSON:
			data, err = renderJSON(root, rep, opts)
		case FormatDOT:
			data = []byte(dotFor())
		case FormatSVG:
			data, err = nodelink.RenderSVG(dotFor())
		case FormatPNG:
			data, err = nodelink.RenderPNG(dotFor(), PNGScale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(dotFor())
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderJSON(root *tree.Node, rep *resolve.Report, opts Options) ([]byte, error) {
	res := tmio.NewResult(resolve.NewRankResolver().Description(), rep)
	res.Newick = root.Newick(opts.BranchLengths)

	var buf bytes.Buffer
	if err := tmio.WriteResult(&buf, res); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/opckit/opckit/pkg/manifest"
)

// Options configures package-graph rendering.
type Options struct {
	// Detailed includes content type, size, and relationship ids in labels.
	// When false, only partnames are shown.
	Detailed bool

	// External includes external targets as nodes. When false, external
	// relationships are omitted entirely.
	External bool
}

// ToDOT converts a package manifest to Graphviz DOT format. The package
// root is rendered as a distinct source node; each part becomes a box and
// each relationship a directed edge labelled with its reltype's short name.
// The resulting DOT string can be rendered with [SVG] or [PNG].
func ToDOT(m manifest.Manifest, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph opc {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
	buf.WriteString("  \"/\" [label=\"package\", shape=circle, fillcolor=lightgrey];\n")

	for _, p := range m.Parts {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", p.PartName, partLabel(p, opts.Detailed))
	}
	if opts.External {
		for _, r := range m.Rels {
			if r.External {
				fmt.Fprintf(&buf, "  %q [style=\"rounded,filled,dashed\", fillcolor=lightyellow];\n", r.Target)
			}
		}
	}

	buf.WriteString("\n")
	for _, r := range m.Rels {
		if r.External && !opts.External {
			continue
		}
		attrs := fmt.Sprintf("label=%q", edgeLabel(r, opts.Detailed))
		if r.External {
			attrs += ", style=dashed"
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", r.Source, r.Target, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func partLabel(p manifest.PartInfo, detailed bool) string {
	if !detailed {
		return p.PartName
	}
	return fmt.Sprintf("%s\n%s\n%d bytes", p.PartName, p.ContentType, p.Size)
}

// edgeLabel reduces a reltype URI to its final path segment, e.g.
// ".../relationships/slide" becomes "slide".
func edgeLabel(r manifest.RelInfo, detailed bool) string {
	short := r.RelType
	if i := strings.LastIndex(short, "/"); i >= 0 {
		short = short[i+1:]
	}
	if detailed {
		return r.ID + ": " + short
	}
	return short
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// PNG renders a DOT graph to PNG using Graphviz.
func PNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

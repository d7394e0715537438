package render

import (
	"strings"
	"testing"

	"github.com/opckit/opckit/pkg/manifest"
)

func testManifest() manifest.Manifest {
	return manifest.Manifest{
		Parts: []manifest.PartInfo{
			{PartName: "/ppt/presentation.xml", ContentType: "application/xml", Size: 15},
			{PartName: "/ppt/slides/slide1.xml", ContentType: "application/xml", Size: 8},
		},
		Rels: []manifest.RelInfo{
			{Source: "/", ID: "rId1", RelType: "http://example/relationships/officeDocument", Target: "/ppt/presentation.xml"},
			{Source: "/ppt/presentation.xml", ID: "rId1", RelType: "http://example/relationships/slide", Target: "/ppt/slides/slide1.xml"},
			{Source: "/ppt/slides/slide1.xml", ID: "rId2", RelType: "http://example/relationships/hyperlink", Target: "https://example.com/", External: true},
		},
	}
}

func TestToDOTNodesAndEdges(t *testing.T) {
	dot := ToDOT(testManifest(), Options{})

	for _, want := range []string{
		`"/" [label="package"`,
		`"/ppt/presentation.xml" [label="/ppt/presentation.xml"]`,
		`"/" -> "/ppt/presentation.xml" [label="officeDocument"]`,
		`"/ppt/presentation.xml" -> "/ppt/slides/slide1.xml" [label="slide"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
}

func TestToDOTExternalOmittedByDefault(t *testing.T) {
	dot := ToDOT(testManifest(), Options{})
	if strings.Contains(dot, "https://example.com/") {
		t.Error("external target rendered without External option")
	}
}

func TestToDOTExternalIncluded(t *testing.T) {
	dot := ToDOT(testManifest(), Options{External: true})
	if !strings.Contains(dot, `"https://example.com/"`) {
		t.Error("external target node missing")
	}
	if !strings.Contains(dot, "style=dashed") {
		t.Error("external edge should be dashed")
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	dot := ToDOT(testManifest(), Options{Detailed: true})
	if !strings.Contains(dot, "15 bytes") {
		t.Error("detailed part label missing size")
	}
	if !strings.Contains(dot, "rId1: slide") {
		t.Error("detailed edge label missing relationship id")
	}
}

func TestEdgeLabelShortens(t *testing.T) {
	r := manifest.RelInfo{ID: "rId9", RelType: "http://example/relationships/image"}
	if got := edgeLabel(r, false); got != "image" {
		t.Errorf("edgeLabel = %q", got)
	}
	bare := manifest.RelInfo{ID: "rId9", RelType: "custom"}
	if got := edgeLabel(bare, false); got != "custom" {
		t.Errorf("edgeLabel = %q, want pass-through for non-URI reltype", got)
	}
}

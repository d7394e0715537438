package zippkg

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/opckit/opckit/pkg/opc"
)

// buildTestPackage assembles a small three-part graph with one external
// relationship, mirroring the shape of a minimal presentation file.
func buildTestPackage(t *testing.T) *opc.Package {
	t.Helper()
	pkg := opc.NewPackage()

	pres := opc.NewPart("/ppt/presentation.xml", opc.CTPresentation, []byte("<presentation/>"), pkg)
	slide := opc.NewPart("/ppt/slides/slide1.xml", opc.CTSlide, []byte("<slide/>"), pkg)
	image := opc.NewPart("/ppt/media/image1.png", opc.CTPNG, []byte("PNGDATA"), pkg)

	pkg.AddRelationship(opc.RTOfficeDocument, pres, "rId1")
	pres.AddRelationship(opc.RTSlide, slide, "rId1")
	slide.AddRelationship(opc.RTImage, image, "rId1")
	slide.AddExternalRelationship(opc.RTHyperlink, "https://example.com/", "rId2")
	return pkg
}

func TestRoundTrip(t *testing.T) {
	pkg := buildTestPackage(t)

	var buf bytes.Buffer
	if err := NewWriter(&buf).Write(pkg.Rels(), pkg.Parts()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	got, err := opc.Open(r, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	wantOrder := partNames(pkg.Parts())
	gotOrder := partNames(got.Parts())
	if len(gotOrder) != len(wantOrder) {
		t.Fatalf("parts = %v, want %v", gotOrder, wantOrder)
	}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("parts = %v, want %v", gotOrder, wantOrder)
		}
	}

	// Blobs and content types survive the trip.
	for _, orig := range pkg.Parts() {
		var match opc.Part
		for _, p := range got.Parts() {
			if p.PartName() == orig.PartName() {
				match = p
				break
			}
		}
		if match == nil {
			t.Fatalf("part %s missing after round trip", orig.PartName())
		}
		if match.ContentType() != orig.ContentType() {
			t.Errorf("%s content type = %q, want %q", orig.PartName(), match.ContentType(), orig.ContentType())
		}
		if !bytes.Equal(match.Blob(), orig.Blob()) {
			t.Errorf("%s blob changed across round trip", orig.PartName())
		}
	}

	// The external relationship is preserved with its literal target.
	pres, err := got.Rels().PartWithRelType(opc.RTOfficeDocument)
	if err != nil {
		t.Fatalf("main part: %v", err)
	}
	slide, err := pres.Rels().PartWithRelType(opc.RTSlide)
	if err != nil {
		t.Fatalf("slide part: %v", err)
	}
	ext, err := slide.Rels().SingleOfType(opc.RTHyperlink)
	if err != nil {
		t.Fatalf("hyperlink rel: %v", err)
	}
	if !ext.IsExternal() || ext.TargetRef() != "https://example.com/" {
		t.Errorf("external rel = (%v, %q)", ext.IsExternal(), ext.TargetRef())
	}
}

func TestWriteSkipsEmptySidecars(t *testing.T) {
	pkg := buildTestPackage(t)

	var buf bytes.Buffer
	if err := NewWriter(&buf).Write(pkg.Rels(), pkg.Parts()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	names := memberNames(t, &buf)
	if _, ok := names["ppt/media/_rels/image1.png.rels"]; ok {
		t.Error("leaf part got an empty relationship sidecar")
	}
	for _, want := range []string{
		contentTypesMember,
		packageRelsMember,
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slides/slide1.xml",
		"ppt/slides/_rels/slide1.xml.rels",
		"ppt/media/image1.png",
	} {
		if _, ok := names[want]; !ok {
			t.Errorf("member %s missing", want)
		}
	}
}

func TestBuildContentTypes(t *testing.T) {
	parts := []opc.Part{
		opc.NewPart("/ppt/presentation.xml", opc.CTPresentation, nil, nil),
		opc.NewPart("/ppt/media/image1.png", opc.CTPNG, nil, nil),
		opc.NewPart("/ppt/media/photo.jpeg", opc.CTJPEG, nil, nil),
	}
	data, err := buildContentTypes(parts)
	if err != nil {
		t.Fatalf("buildContentTypes: %v", err)
	}
	s := string(data)

	// xml content types are never defaulted away; parts with non-default
	// extensions become overrides.
	if !strings.Contains(s, `Extension="png"`) {
		t.Error("png default missing")
	}
	if !strings.Contains(s, `Extension="jpeg"`) {
		t.Error("jpeg default missing")
	}
	if !strings.Contains(s, `Extension="rels"`) {
		t.Error("rels default missing")
	}
	if !strings.Contains(s, `PartName="/ppt/presentation.xml"`) {
		t.Error("presentation override missing")
	}
	if strings.Contains(s, `PartName="/ppt/media/image1.png"`) {
		t.Error("png part should ride its extension default, not an override")
	}
}

func TestMemberName(t *testing.T) {
	if got := memberName("/ppt/slides/slide1.xml"); got != "ppt/slides/slide1.xml" {
		t.Errorf("memberName = %q", got)
	}
}

func partNames(parts []opc.Part) []opc.PartName {
	names := make([]opc.PartName, len(parts))
	for i, p := range parts {
		names[i] = p.PartName()
	}
	return names
}

func memberNames(t *testing.T, buf *bytes.Buffer) map[string]bool {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reopen archive: %v", err)
	}
	names := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		names[f.Name] = true
	}
	return names
}

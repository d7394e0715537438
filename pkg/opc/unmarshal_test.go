package opc

import (
	"errors"
	"testing"
)

// fakeReader is an in-memory physical reader.
type fakeReader struct {
	parts    []SerializedPart
	rels     []SerializedRel
	partsErr error
	relsErr  error
}

func (r *fakeReader) SerializedParts() ([]SerializedPart, error) { return r.parts, r.partsErr }
func (r *fakeReader) SerializedRels() ([]SerializedRel, error)   { return r.rels, r.relsErr }

// tracedPart records its AfterUnmarshal invocation.
type tracedPart struct {
	*BasePart
	calls *[]string
}

func (p *tracedPart) AfterUnmarshal() error {
	*p.calls = append(*p.calls, string(p.PartName()))
	return nil
}

func TestUnmarshalBuildsGraph(t *testing.T) {
	// The relationship records reference parts in both directions, which
	// only works because wiring happens after every part is constructed.
	r := &fakeReader{
		parts: []SerializedPart{
			{PartName: "/ppt/presentation.xml", ContentType: CTPresentation, Blob: []byte("<p/>")},
			{PartName: "/ppt/slides/slide1.xml", ContentType: CTSlide, Blob: []byte("<s/>")},
			{PartName: "/ppt/media/image1.png", ContentType: CTPNG, Blob: []byte{0x89, 'P', 'N', 'G'}},
		},
		rels: []SerializedRel{
			{SourceURI: "/", ID: "rId1", RelType: RTOfficeDocument, Target: "/ppt/presentation.xml"},
			{SourceURI: "/ppt/presentation.xml", ID: "rId1", RelType: RTSlide, Target: "/ppt/slides/slide1.xml"},
			{SourceURI: "/ppt/slides/slide1.xml", ID: "rId1", RelType: RTImage, Target: "/ppt/media/image1.png"},
			{SourceURI: "/ppt/slides/slide1.xml", ID: "rId2", RelType: RTHyperlink, Target: "https://example.com/", External: true},
		},
	}

	pkg, err := Open(r, NewFactory())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	main, err := pkg.MainPart()
	if err != nil {
		t.Fatalf("MainPart: %v", err)
	}
	if main.PartName() != "/ppt/presentation.xml" {
		t.Errorf("main part = %s", main.PartName())
	}
	if main.ContentType() != CTPresentation {
		t.Errorf("content type = %s", main.ContentType())
	}

	got := partNames(pkg.Parts())
	want := []string{"/ppt/presentation.xml", "/ppt/slides/slide1.xml", "/ppt/media/image1.png"}
	if len(got) != len(want) {
		t.Fatalf("Parts = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("Parts = %v, want %v", got, want)
		}
	}

	slide, err := main.Rels().PartWithRelType(RTSlide)
	if err != nil {
		t.Fatalf("slide lookup: %v", err)
	}
	ext, err := slide.Rels().ByID("rId2")
	if err != nil {
		t.Fatalf("external rel: %v", err)
	}
	if !ext.IsExternal() || ext.TargetRef() != "https://example.com/" {
		t.Errorf("external rel = (%v, %q)", ext.IsExternal(), ext.TargetRef())
	}

	// Back-reference to the owning package.
	if slide.Package() != pkg {
		t.Error("part does not reference its owning package")
	}
}

func TestUnmarshalMissingTargetFailsLoudly(t *testing.T) {
	r := &fakeReader{
		parts: []SerializedPart{
			{PartName: "/a.xml", ContentType: CTXML},
		},
		rels: []SerializedRel{
			{SourceURI: "/", ID: "rId1", RelType: RTOfficeDocument, Target: "/missing.xml"},
		},
	}

	_, err := Open(r, NewFactory())
	if !errors.Is(err, ErrMalformedPackage) {
		t.Fatalf("Open = %v, want ErrMalformedPackage", err)
	}
}

func TestUnmarshalUnknownSourceFailsLoudly(t *testing.T) {
	r := &fakeReader{
		parts: []SerializedPart{
			{PartName: "/a.xml", ContentType: CTXML},
		},
		rels: []SerializedRel{
			{SourceURI: "/missing.xml", ID: "rId1", RelType: RTImage, Target: "/a.xml"},
		},
	}

	_, err := Open(r, NewFactory())
	if !errors.Is(err, ErrMalformedPackage) {
		t.Fatalf("Open = %v, want ErrMalformedPackage", err)
	}
}

func TestUnmarshalReaderErrorPropagates(t *testing.T) {
	readErr := errors.New("truncated archive")

	if _, err := Open(&fakeReader{partsErr: readErr}, NewFactory()); !errors.Is(err, readErr) {
		t.Errorf("parts error = %v, want the reader's error unchanged", err)
	}
	if _, err := Open(&fakeReader{relsErr: readErr}, NewFactory()); !errors.Is(err, readErr) {
		t.Errorf("rels error = %v, want the reader's error unchanged", err)
	}
}

func TestUnmarshalAfterHookOrdering(t *testing.T) {
	var calls []string
	factory := NewFactory()
	factory.Register(CTSlide, func(name PartName, ct string, blob []byte, pkg *Package) (Part, error) {
		return &tracedPart{BasePart: NewPart(name, ct, blob, pkg), calls: &calls}, nil
	})
	factory.Register(CTPresentation, func(name PartName, ct string, blob []byte, pkg *Package) (Part, error) {
		return &tracedPart{BasePart: NewPart(name, ct, blob, pkg), calls: &calls}, nil
	})

	r := &fakeReader{
		parts: []SerializedPart{
			{PartName: "/ppt/presentation.xml", ContentType: CTPresentation},
			{PartName: "/ppt/slides/slide1.xml", ContentType: CTSlide},
		},
		rels: []SerializedRel{
			{SourceURI: "/", ID: "rId1", RelType: RTOfficeDocument, Target: "/ppt/presentation.xml"},
			{SourceURI: "/ppt/presentation.xml", ID: "rId1", RelType: RTSlide, Target: "/ppt/slides/slide1.xml"},
		},
	}

	if _, err := Open(r, factory); err != nil {
		t.Fatalf("Open: %v", err)
	}

	// Hooks run in construction order, after all wiring.
	if len(calls) != 2 || calls[0] != "/ppt/presentation.xml" || calls[1] != "/ppt/slides/slide1.xml" {
		t.Errorf("AfterUnmarshal order = %v", calls)
	}
}

func TestFactoryFallback(t *testing.T) {
	factory := NewFactory()
	part, err := factory.New("/unknown.bin", "application/x-unknown", []byte{1, 2}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := part.(*BasePart); !ok {
		t.Errorf("unregistered content type should yield *BasePart, got %T", part)
	}
}

func TestFactoryConstructorErrorAbortsUnmarshal(t *testing.T) {
	parseErr := errors.New("bad payload")
	factory := NewFactory()
	factory.Register(CTSlide, func(name PartName, ct string, blob []byte, pkg *Package) (Part, error) {
		return nil, parseErr
	})

	r := &fakeReader{
		parts: []SerializedPart{{PartName: "/s.xml", ContentType: CTSlide}},
	}
	if _, err := Open(r, factory); !errors.Is(err, parseErr) {
		t.Errorf("Open = %v, want constructor error", err)
	}
}

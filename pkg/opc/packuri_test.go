package opc

import (
	"errors"
	"testing"
)

func TestParsePartName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PartName
		wantErr bool
	}{
		{name: "Simple", input: "/ppt/presentation.xml", want: "/ppt/presentation.xml"},
		{name: "Nested", input: "/ppt/slides/slide1.xml", want: "/ppt/slides/slide1.xml"},
		{name: "Normalized", input: "/ppt/slides/../media/image1.png", want: "/ppt/media/image1.png"},
		{name: "TrailingSlash", input: "/ppt/slides/", want: "/ppt/slides"},
		{name: "NotRooted", input: "ppt/presentation.xml", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
		{name: "Root", input: "/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePartName(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePartName(%q) expected error, got %q", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidPartName) {
					t.Errorf("error = %v, want ErrInvalidPartName", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParsePartName(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePartName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPartNameComponents(t *testing.T) {
	p := PartName("/ppt/slides/slide1.xml")

	if got := p.BaseURI(); got != "/ppt/slides" {
		t.Errorf("BaseURI = %q, want /ppt/slides", got)
	}
	if got := p.Filename(); got != "slide1.xml" {
		t.Errorf("Filename = %q, want slide1.xml", got)
	}
	if got := p.Ext(); got != "xml" {
		t.Errorf("Ext = %q, want xml", got)
	}
	if got := p.RelsURI(); got != "/ppt/slides/_rels/slide1.xml.rels" {
		t.Errorf("RelsURI = %q, want /ppt/slides/_rels/slide1.xml.rels", got)
	}
}

func TestPartNameExtCasing(t *testing.T) {
	if got := PartName("/ppt/media/image1.PNG").Ext(); got != "png" {
		t.Errorf("Ext = %q, want png", got)
	}
	if got := PartName("/docProps/core").Ext(); got != "" {
		t.Errorf("Ext = %q, want empty", got)
	}
}

func TestPartNameIdx(t *testing.T) {
	tests := []struct {
		input  PartName
		want   int
		wantOK bool
	}{
		{input: "/ppt/slides/slide1.xml", want: 1, wantOK: true},
		{input: "/ppt/slides/slide42.xml", want: 42, wantOK: true},
		{input: "/ppt/presentation.xml", wantOK: false},
		{input: "/docProps/core.xml", wantOK: false},
	}

	for _, tt := range tests {
		got, ok := tt.input.Idx()
		if ok != tt.wantOK {
			t.Errorf("%s: ok = %v, want %v", tt.input, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("%s: idx = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestPartNameRelativeRef(t *testing.T) {
	tests := []struct {
		name     string
		partname PartName
		baseURI  string
		want     string
	}{
		{
			name:     "FromRoot",
			partname: "/ppt/presentation.xml",
			baseURI:  "/",
			want:     "ppt/presentation.xml",
		},
		{
			name:     "SameDir",
			partname: "/ppt/slides/slide2.xml",
			baseURI:  "/ppt/slides",
			want:     "slide2.xml",
		},
		{
			name:     "ChildDir",
			partname: "/ppt/slides/slide1.xml",
			baseURI:  "/ppt",
			want:     "slides/slide1.xml",
		},
		{
			name:     "SiblingDir",
			partname: "/ppt/media/image1.png",
			baseURI:  "/ppt/slides",
			want:     "../media/image1.png",
		},
		{
			name:     "UpTwoLevels",
			partname: "/docProps/core.xml",
			baseURI:  "/ppt/slides",
			want:     "../../docProps/core.xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.partname.RelativeRef(tt.baseURI); got != tt.want {
				t.Errorf("RelativeRef(%q) = %q, want %q", tt.baseURI, got, tt.want)
			}
		})
	}
}

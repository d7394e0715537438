package errors

import "testing"

func TestValidateExtractPath(t *testing.T) {
	tests := []struct {
		name string
		rel  string
		ok   bool
	}{
		{name: "Simple", rel: "ppt/slides/slide1.xml", ok: true},
		{name: "Empty", rel: "", ok: false},
		{name: "Traversal", rel: "../etc/passwd", ok: false},
		{name: "EmbeddedTraversal", rel: "a/../../b", ok: false},
		{name: "Backslash", rel: `ppt\slide.xml`, ok: false},
		{name: "NullByte", rel: "a\x00b", ok: false},
		{name: "ControlChar", rel: "a\x07b", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExtractPath(tt.rel)
			if (err == nil) != tt.ok {
				t.Errorf("ValidateExtractPath(%q) = %v, want ok=%v", tt.rel, err, tt.ok)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidPath {
				t.Errorf("code = %q", GetCode(err))
			}
		})
	}
}

func TestValidateOutputFile(t *testing.T) {
	if err := ValidateOutputFile("out.pptx"); err != nil {
		t.Errorf("plain filename rejected: %v", err)
	}
	if err := ValidateOutputFile(""); err == nil {
		t.Error("empty path accepted")
	}
	if err := ValidateOutputFile("dir/"); err == nil {
		t.Error("directory path accepted")
	}
}

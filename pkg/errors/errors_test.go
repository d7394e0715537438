package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/opckit/opckit/pkg/opc"
)

func TestErrorFormatting(t *testing.T) {
	plain := New(ErrCodeNotFound, "no part %s", "/a.xml")
	if got := plain.Error(); got != "NOT_FOUND: no part /a.xml" {
		t.Errorf("Error() = %q", got)
	}

	cause := stderrors.New("boom")
	wrapped := Wrap(ErrCodeInternal, cause, "inspect failed")
	if got := wrapped.Error(); got != "INTERNAL_ERROR: inspect failed: boom" {
		t.Errorf("Error() = %q", got)
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("wrapped error lost its cause")
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := New(ErrCodeInvalidPartName, "bad name")
	if !Is(err, ErrCodeInvalidPartName) {
		t.Error("Is failed on direct error")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is matched wrong code")
	}

	deep := fmt.Errorf("outer: %w", err)
	if GetCode(deep) != ErrCodeInvalidPartName {
		t.Errorf("GetCode(deep) = %q", GetCode(deep))
	}
	if GetCode(stderrors.New("plain")) != "" {
		t.Error("GetCode on plain error should be empty")
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeMalformedPackage, "truncated archive")
	if got := UserMessage(err); got != "truncated archive" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestFromOPC(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "NotFound", err: opc.ErrNotFound, want: ErrCodeNotFound},
		{name: "Ambiguous", err: opc.ErrAmbiguous, want: ErrCodeAmbiguousRelType},
		{name: "ExternalTarget", err: opc.ErrExternalTarget, want: ErrCodeExternalTarget},
		{name: "Malformed", err: opc.ErrMalformedPackage, want: ErrCodeMalformedPackage},
		{name: "InvalidPartName", err: opc.ErrInvalidPartName, want: ErrCodeInvalidPartName},
		{name: "Unknown", err: stderrors.New("mystery"), want: ErrCodeInternal},
		{name: "Wrapped", err: fmt.Errorf("ctx: %w", opc.ErrNotFound), want: ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromOPC(tt.err, "op failed")
			if got.Code != tt.want {
				t.Errorf("code = %q, want %q", got.Code, tt.want)
			}
			if !stderrors.Is(got, tt.err) {
				t.Error("cause not preserved")
			}
		})
	}
}

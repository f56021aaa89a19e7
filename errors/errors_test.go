package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "phase and kind only",
			err:  &Error{Phase: PhaseSelect, Kind: KindRuntimeUnavailable},
			want: "[select] runtime_unavailable",
		},
		{
			name: "with detail",
			err:  New(PhaseValidate, KindValidation, "ratio out of range: %v", 1.5),
			want: "[validate] validation: ratio out of range: 1.5",
		},
		{
			name: "with path",
			err:  &Error{Phase: PhasePack, Kind: KindIO, Path: []string{"fd", "7"}, Detail: "flush failed"},
			want: "[pack] io at fd.7: flush failed",
		},
		{
			name: "with cause",
			err:  Wrap(PhaseIO, KindIO, fmt.Errorf("disk full"), "write output"),
			want: "[io] io: write output (caused by: disk full)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	err := New(PhasePack, KindGuestFailure, "exit 1")
	if !stderrors.Is(err, &Error{Phase: PhasePack, Kind: KindGuestFailure}) {
		t.Error("Is should match same phase and kind")
	}
	if stderrors.Is(err, &Error{Phase: PhasePack, Kind: KindIO}) {
		t.Error("Is should not match different kind")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Wrap(PhaseInit, KindInstantiation, cause, "instantiate module")
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
}

func TestIsKind(t *testing.T) {
	inner := New(PhasePack, KindOutOfBounds, "offset=10")
	outer := fmt.Errorf("syscall: %w", inner)

	if !IsKind(outer, KindOutOfBounds) {
		t.Error("IsKind should see through fmt.Errorf wrapping")
	}
	if IsKind(outer, KindGuestFailure) {
		t.Error("IsKind matched wrong kind")
	}
	if IsKind(nil, KindIO) {
		t.Error("IsKind(nil) should be false")
	}
}

func TestGuestFailure_TrimsLog(t *testing.T) {
	err := GuestFailure(2, "error: malformed GLB\n")
	if strings.HasSuffix(err.Detail, "\n") {
		t.Errorf("log should be trimmed: %q", err.Detail)
	}
	if !strings.Contains(err.Detail, "exit 2") {
		t.Errorf("detail should carry exit code: %q", err.Detail)
	}
}

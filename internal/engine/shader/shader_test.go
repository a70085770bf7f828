package shader

import (
	"errors"
	"testing"
)

func TestCleanLog(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"nul terminated", []byte("ERROR: 0:3: 'foo' : undeclared\n\x00\x00"), "ERROR: 0:3: 'foo' : undeclared"},
		{"empty", []byte{0}, ""},
		{"no terminator", []byte("  warning  "), "warning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanLog(tt.in); got != tt.want {
				t.Errorf("cleanLog() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompileErrorMessage(t *testing.T) {
	var err error = &CompileError{Stage: "fragment", Log: "0:12: syntax error"}

	if got, want := err.Error(), "fragment shader: 0:12: syntax error"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	var ce *CompileError
	if !errors.As(err, &ce) || ce.Stage != "fragment" {
		t.Errorf("errors.As failed to recover stage")
	}
}

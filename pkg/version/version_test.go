package version

import (
	"errors"
	"testing"
)

func TestCurrent(t *testing.T) {
	if got := Current().String(); got != Version {
		t.Errorf("Current() = %s, want %s", got, Version)
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		name       string
		version    string
		constraint string
		wantErr    error
		wantAnyErr bool
	}{
		{"Empty constraint", "0.4.0", "", nil, false},
		{"Satisfied", "0.4.0", ">= 0.3", nil, false},
		{"Caret", "1.2.0", "^1.0", nil, false},
		{"Tilde", "0.4.3", "~0.4.1", nil, false},
		{"Too old", "0.2.9", ">= 0.3", ErrUnsatisfied, true},
		{"Major mismatch", "2.0.0", "^1.0", ErrUnsatisfied, true},
		{"Bad constraint", "0.4.0", ">>> what", nil, true},
		{"Bad version", "not-a-version", ">= 0.1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckVersion(tt.version, tt.constraint)
			if (err != nil) != tt.wantAnyErr {
				t.Fatalf("CheckVersion() error = %v, wantErr %v", err, tt.wantAnyErr)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckVersion() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	if err := Check(">= 0.1.0"); err != nil {
		t.Errorf("Check() error = %v", err)
	}
	if err := Check("< 0.1.0"); !errors.Is(err, ErrUnsatisfied) {
		t.Errorf("Check() error = %v, want ErrUnsatisfied", err)
	}
}

package game

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateEntryText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrRequired},
		{"short", "Hello", nil},
		{"exactly 300", strings.Repeat("a", 300), nil},
		{"301", strings.Repeat("a", 301), ErrTooLong},
		{"300 multibyte", strings.Repeat("日", 300), nil},
		{"whitespace only", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateEntryText(tt.input); !errors.Is(got, tt.want) {
				t.Errorf("ValidateEntryText() = %v, want %v", got, tt.want)
			}
		})
	}

	if ErrTooLong.Error() != "max 300 characters" {
		t.Errorf("message = %q", ErrTooLong.Error())
	}
}

func TestDraftLifecycle(t *testing.T) {
	var d Draft
	if d.Active() {
		t.Error("zero Draft should be inactive")
	}

	d.Begin("Hello")
	if !d.Active() || d.Text() != "Hello" {
		t.Errorf("after Begin: active=%v text=%q", d.Active(), d.Text())
	}

	d.Clear()
	if d.Active() || d.Text() != "" {
		t.Errorf("after Clear: active=%v text=%q", d.Active(), d.Text())
	}
}

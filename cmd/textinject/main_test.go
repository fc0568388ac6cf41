package main

import (
	"strings"
	"testing"
)

func TestReadText(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{"joined args", []string{"hello", "world"}, "", "hello world"},
		{"no args", nil, "", ""},
		{"stdin", []string{"-"}, "from\nstdin", "from\nstdin"},
		{"dash among args", []string{"a", "-"}, "ignored", "a -"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readText(tt.args, strings.NewReader(tt.stdin))
			if err != nil {
				t.Fatalf("readText() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("readText() = %q, want %q", got, tt.want)
			}
		})
	}
}

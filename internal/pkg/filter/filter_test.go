package filter

import (
	"errors"
	"testing"
)

func TestAdmits(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		candidate string
		ctx       Context
		want      bool
	}{
		{
			name:      "simple containment",
			lines:     []string{`"ct" in $_url`},
			candidate: "/mdr/ct/packages",
			want:      true,
		},
		{
			name:      "containment miss",
			lines:     []string{`"ct" in $_url`},
			candidate: "/mdr/sdtm/1-8/domains",
			want:      false,
		},
		{
			name:      "negated containment",
			lines:     []string{`"draft" not in $_url`},
			candidate: "/mdr/sdtm/1-8",
			want:      true,
		},
		{
			name:      "equality",
			lines:     []string{`$_url == "/mdr/ct/packages"`},
			candidate: "/mdr/ct/packages",
			want:      true,
		},
		{
			name:      "inequality",
			lines:     []string{`$_url != "/mdr/ct/packages"`},
			candidate: "/mdr/ct/packages",
			want:      false,
		},
		{
			name:      "and combinator",
			lines:     []string{`"ct" in $_url and "packages" in $_url`},
			candidate: "/mdr/ct/packages",
			want:      true,
		},
		{
			name:      "and short circuits",
			lines:     []string{`"ct" in $_url and "codelists" in $_url`},
			candidate: "/mdr/ct/packages",
			want:      false,
		},
		{
			name:      "or combinator",
			lines:     []string{`"adam" in $_url or "sdtm" in $_url`},
			candidate: "/mdr/sdtm/1-8",
			want:      true,
		},
		{
			name:      "not with parentheses",
			lines:     []string{`not ("draft" in $_url or "qa" in $_url)`},
			candidate: "/mdr/sdtm/1-8",
			want:      true,
		},
		{
			name:      "precedence, and binds tighter than or",
			lines:     []string{`"nope" in $_url and "nope" in $_url or "sdtm" in $_url`},
			candidate: "/mdr/sdtm/1-8",
			want:      true,
		},
		{
			name:      "lines are OR-ed",
			lines:     []string{`"adam" in $_url`, `"sdtm" in $_url`},
			candidate: "/mdr/sdtm/1-8",
			want:      true,
		},
		{
			name:      "blank lines ignored",
			lines:     []string{"", "   ", `"sdtm" in $_url`},
			candidate: "/mdr/sdtm/1-8",
			want:      true,
		},
		{
			name:      "context field",
			lines:     []string{`"Terminology" in label`},
			candidate: "/mdr/ct/packages",
			ctx:       Context{"label": "Controlled Terminology"},
			want:      true,
		},
		{
			name:      "missing context field is false, not an error",
			lines:     []string{`"Terminology" in label`},
			candidate: "/mdr/ct/packages",
			want:      false,
		},
		{
			name:      "missing field stays false under not in",
			lines:     []string{`"Terminology" not in label`},
			candidate: "/mdr/ct/packages",
			want:      false,
		},
		{
			name:      "single quoted literal",
			lines:     []string{`'ct' in $_url`},
			candidate: "/mdr/ct/packages",
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Compile(tt.lines)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}

			if got := set.Admits(tt.candidate, tt.ctx); got != tt.want {
				t.Errorf("Admits(%q) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"unbalanced parenthesis", `("ct" in $_url`},
		{"trailing closing parenthesis", `"ct" in $_url)`},
		{"unterminated string", `"ct in $_url`},
		{"single equals", `$_url = "/mdr"`},
		{"bare operand", `$_url`},
		{"missing right operand", `"ct" in`},
		{"not without in", `"ct" not $_url`},
		{"stray character", `"ct" in $_url; import os`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile([]string{tt.line})
			if err == nil {
				t.Fatalf("Compile(%q) expected error", tt.line)
			}

			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("Compile(%q) error = %T, want *SyntaxError", tt.line, err)
			}

			if serr.Line != 1 {
				t.Errorf("SyntaxError.Line = %d, want 1", serr.Line)
			}
		})
	}
}

func TestCompileErrorNamesLine(t *testing.T) {
	_, err := Compile([]string{`"ct" in $_url`, ``, `("broken" in $_url`})

	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("error = %v, want *SyntaxError", err)
	}

	if serr.Line != 3 {
		t.Errorf("SyntaxError.Line = %d, want 3", serr.Line)
	}
}

func TestOpenPass(t *testing.T) {
	set, err := Compile(nil)
	if err != nil {
		t.Fatalf("Compile(nil) error = %v", err)
	}

	if !set.Admits("/anything/at/all", nil) {
		t.Error("empty set should admit everything")
	}

	if !OpenPass().Admits("/anything", nil) {
		t.Error("OpenPass() should admit everything")
	}
}

// Adding OR-ed lines never shrinks the admitted set.
func TestMonotonicity(t *testing.T) {
	candidates := []string{
		"/mdr/ct/packages",
		"/mdr/sdtm/1-8",
		"/mdr/adam/adamig-1-1",
		"/mdr/root/cdash/1-0",
	}

	narrow, err := Compile([]string{`"ct" in $_url`})
	if err != nil {
		t.Fatal(err)
	}

	wide, err := Compile([]string{`"ct" in $_url`, `"sdtm" in $_url`})
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range candidates {
		if narrow.Admits(c, nil) && !wide.Admits(c, nil) {
			t.Errorf("candidate %q admitted by narrow set but not by wider set", c)
		}
	}
}

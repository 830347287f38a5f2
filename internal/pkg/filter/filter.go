// Package filter compiles admission filter files into a restricted boolean
// expression set evaluated against candidate URLs.
//
// Each non-blank line of a filter file is one expression over string values:
// literals, the bound variable $_url, and fields of the evaluation context.
// Supported operators are `in`, `not in`, `==`, `!=`, `and`, `or`, `not` and
// parentheses. Lines are OR-ed together: a candidate is admitted as soon as
// one line evaluates true. The grammar is closed on purpose, a filter file is
// configuration, never code.
package filter

import (
	"bufio"
	"os"
	"strings"
)

// URLVar is the variable bound to the candidate URL in every evaluation.
const URLVar = "$_url"

// Context carries the optional fetched-resource attributes an expression can
// reference by bare identifier. A field absent from the context makes the
// comparison referencing it evaluate false.
type Context map[string]string

// Set is an immutable compiled filter set.
type Set struct {
	exprs    []expr
	sources  []string
	openPass bool
}

// OpenPass returns a set admitting every candidate, used when no filter file
// is supplied.
func OpenPass() *Set {
	return &Set{openPass: true}
}

// Compile compiles filter lines into a Set. Blank and whitespace-only lines
// are ignored. The returned error, if any, is a *SyntaxError naming the
// offending line and position.
func Compile(lines []string) (*Set, error) {
	set := &Set{}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		e, err := parse(line)
		if err != nil {
			if serr, ok := err.(*SyntaxError); ok {
				serr.Line = i + 1
			}
			return nil, err
		}

		set.exprs = append(set.exprs, e)
		set.sources = append(set.sources, line)
	}

	if len(set.exprs) == 0 {
		set.openPass = true
	}

	return set, nil
}

// CompileFile reads and compiles a filter file. An empty path yields an
// open-pass set.
func CompileFile(path string) (*Set, error) {
	if path == "" {
		return OpenPass(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return Compile(lines)
}

// Admits evaluates the candidate URL against the set. ctx may be nil.
func (s *Set) Admits(candidate string, ctx Context) bool {
	if s.openPass {
		return true
	}

	bound := Context{URLVar: candidate}
	for k, v := range ctx {
		bound[k] = v
	}

	for _, e := range s.exprs {
		if e.eval(bound) {
			return true
		}
	}

	return false
}

// Len returns the number of compiled expressions.
func (s *Set) Len() int {
	return len(s.exprs)
}

package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	m "uscc.dev/pkg/asmcheck/internal/model"
)

// defaultCaseNames is the curated assembly corpus, in run order.
var defaultCaseNames = []string{
	"emit02",
	"emit03",
	"emit04",
	"emit05",
	"emit06",
	"emit07",
	"emit08",
	"emit09",
	"emit10",
	"emit11",
	"emit12",
	"quicksort",
	"test015",
	"test016",
	"opt01",
	"opt02",
	"opt03",
	"opt04",
	"opt05",
	"opt06",
	"opt07",
}

// DefaultCaseNames returns a copy of the built-in corpus case names.
func DefaultCaseNames() []string {
	names := make([]string, len(defaultCaseNames))
	copy(names, defaultCaseNames)

	return names
}

// CorpusLayout describes where case sources and golden files live.
// A relative ExpectedDir is interpreted inside CorpusDir.
type CorpusLayout struct {
	CorpusDir   m.Path
	ExpectedDir m.Path
	SourceExt   string
}

// NewCase builds a TestCase for name following the corpus path convention:
// <corpus>/<name><ext> and <corpus>/<expected>/<name>.output.
func NewCase(name string, layout CorpusLayout) m.TestCase {
	corpus := string(layout.CorpusDir)
	if corpus == "" {
		corpus = "."
	}

	expected := string(layout.ExpectedDir)
	if !filepath.IsAbs(expected) {
		expected = filepath.Join(corpus, expected)
	}

	ext := layout.SourceExt
	if ext == "" {
		ext = m.DefaultSourceExt
	}

	return m.TestCase{
		Name:   name,
		Source: m.Path(filepath.Join(corpus, name+ext)),
		Golden: m.Path(filepath.Join(expected, name+m.GoldenExt)),
	}
}

// BuildCases builds one TestCase per name, preserving order.
func BuildCases(names []string, layout CorpusLayout) []m.TestCase {
	cases := make([]m.TestCase, 0, len(names))
	for _, name := range names {
		cases = append(cases, NewCase(name, layout))
	}

	return cases
}

// Registry is the ordered, explicit list of cases the harness runs.
type Registry struct {
	cases []m.TestCase
	index map[string]int
}

// NewRegistry registers cases in the given order. Names must be non-empty
// and unique.
func NewRegistry(cases ...m.TestCase) (*Registry, error) {
	registry := &Registry{
		cases: make([]m.TestCase, 0, len(cases)),
		index: make(map[string]int, len(cases)),
	}

	for _, tc := range cases {
		if strings.TrimSpace(tc.Name) == "" {
			return nil, fmt.Errorf("case with source %q has no name", tc.Source)
		}

		if _, ok := registry.index[tc.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCase, tc.Name)
		}

		registry.index[tc.Name] = len(registry.cases)
		registry.cases = append(registry.cases, tc)
	}

	return registry, nil
}

// Cases returns all registered cases in registration order.
func (r *Registry) Cases() []m.TestCase {
	cases := make([]m.TestCase, len(r.cases))
	copy(cases, r.cases)

	return cases
}

// Len returns the number of registered cases.
func (r *Registry) Len() int {
	return len(r.cases)
}

// Lookup returns the case registered under name.
func (r *Registry) Lookup(name string) (m.TestCase, bool) {
	i, ok := r.index[name]
	if !ok {
		return m.TestCase{}, false
	}

	return r.cases[i], true
}

// Select returns the named cases in registration order. An empty selection
// returns every case.
func (r *Registry) Select(names []string) ([]m.TestCase, error) {
	if len(names) == 0 {
		return r.Cases(), nil
	}

	wanted := make(map[string]struct{}, len(names))

	var unknown []string

	for _, name := range names {
		if _, ok := r.index[name]; !ok {
			unknown = append(unknown, name)
			continue
		}

		wanted[name] = struct{}{}
	}

	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCase, strings.Join(unknown, ", "))
	}

	selected := make([]m.TestCase, 0, len(wanted))
	for _, tc := range r.cases {
		if _, ok := wanted[tc.Name]; ok {
			selected = append(selected, tc)
		}
	}

	return selected, nil
}

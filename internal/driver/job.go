package driver

import (
	"fmt"
	"strings"

	"uregex/internal/escape"
)

// Job is one set to render, with every option resolved.
type Job struct {
	Name     string
	Members  string // set syntax
	DontCare string // set syntax, may be empty
	Dialect  string // escape.DialectICU or escape.DialectRE2
	OnlyBMP  bool
	Verify   bool
}

// Jobs resolves every [[set]] against [defaults], in manifest order.
func (m *Manifest) Jobs() ([]Job, error) {
	d := m.Config.Defaults
	jobs := make([]Job, 0, len(m.Config.Sets))
	for _, s := range m.Config.Sets {
		j := Job{
			Name:     strings.TrimSpace(s.Name),
			Members:  s.Members,
			DontCare: d.DontCare,
			Dialect:  d.Dialect,
			OnlyBMP:  d.OnlyBMP,
			Verify:   d.Verify,
		}
		if s.Dialect != nil {
			j.Dialect = *s.Dialect
		}
		if s.OnlyBMP != nil {
			j.OnlyBMP = *s.OnlyBMP
		}
		if s.DontCare != nil {
			j.DontCare = *s.DontCare
		}
		if s.Verify != nil {
			j.Verify = *s.Verify
		}
		dialect, err := escape.Dialect(j.Dialect)
		if err != nil {
			return nil, fmt.Errorf("set %q: %w", j.Name, err)
		}
		j.Dialect = dialect
		jobs = append(jobs, j)
	}
	return jobs, nil
}

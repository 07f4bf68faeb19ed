package status

import (
	"fmt"
	"strings"
)

// Canonical is the single authoritative status of a record within a domain.
type Canonical string

// String returns the status code.
func (c Canonical) String() string {
	return string(c)
}

// Display is what the rendering layer receives: a label and a severity tier.
// Renderers map Severity to their own visual encoding and never parse Label.
type Display struct {
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
}

// Entry is one row of a domain's presentation table.
type Entry struct {
	Status   Canonical
	Label    string
	Severity Severity
}

// Domain describes one family of records: enumeration, table, aliases and deriver.
// A Domain is immutable once built and safe for concurrent use.
type Domain struct {
	table   map[Canonical]Display
	aliases map[string]Canonical
	derive  Deriver
	name    string
	order   []Canonical
}

type domainConfig struct {
	aliases  map[string]Canonical
	derive   Deriver
	produces []Canonical
}

// DomainOption customizes a Domain at construction.
type DomainOption func(*domainConfig)

// WithAlias maps a legacy raw code to a canonical status.
func WithAlias(raw string, to Canonical) DomainOption {
	return func(c *domainConfig) {
		if c.aliases == nil {
			c.aliases = make(map[string]Canonical)
		}
		c.aliases[normalize(raw)] = to
	}
}

// WithDeriver installs a threshold override. produces lists every status the
// deriver can return; each must be part of the enumeration.
func WithDeriver(d Deriver, produces ...Canonical) DomainOption {
	return func(c *domainConfig) {
		c.derive = d
		c.produces = produces
	}
}

// NewDomain builds a domain from its enumeration and presentation table.
// The table must cover every status exactly once, with a non-empty label that is
// unique within the domain and a valid severity.
func NewDomain(name string, statuses []Canonical, entries []Entry, opts ...DomainOption) (*Domain, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &TableError{Domain: name, Reason: "domain name is empty"}
	}
	if len(statuses) == 0 {
		return nil, &TableError{Domain: name, Reason: "enumeration is empty"}
	}

	cfg := domainConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	declared := make(map[Canonical]bool, len(statuses))
	for _, s := range statuses {
		if s == "" || normalize(string(s)) != string(s) {
			return nil, &TableError{Domain: name, Reason: fmt.Sprintf("status %q is not a normalized code", s)}
		}
		if declared[s] {
			return nil, &TableError{Domain: name, Reason: fmt.Sprintf("status %q declared twice", s)}
		}
		declared[s] = true
	}

	table := make(map[Canonical]Display, len(entries))
	labels := make(map[string]Canonical, len(entries))
	for _, e := range entries {
		if !declared[e.Status] {
			return nil, &TableError{Domain: name, Reason: fmt.Sprintf("entry for undeclared status %q", e.Status)}
		}
		if _, dup := table[e.Status]; dup {
			return nil, &TableError{Domain: name, Reason: fmt.Sprintf("duplicate entry for status %q", e.Status)}
		}
		if strings.TrimSpace(e.Label) == "" {
			return nil, &TableError{Domain: name, Reason: fmt.Sprintf("empty label for status %q", e.Status)}
		}
		if other, dup := labels[e.Label]; dup {
			return nil, &TableError{Domain: name, Reason: fmt.Sprintf("label %q used by both %q and %q", e.Label, other, e.Status)}
		}
		if !e.Severity.Valid() {
			return nil, &TableError{Domain: name, Reason: fmt.Sprintf("invalid severity %d for status %q", int(e.Severity), e.Status)}
		}
		table[e.Status] = Display{Label: e.Label, Severity: e.Severity}
		labels[e.Label] = e.Status
	}

	for _, s := range statuses {
		if _, ok := table[s]; !ok {
			return nil, &TableError{Domain: name, Reason: fmt.Sprintf("missing entry for status %q", s)}
		}
	}

	for raw, to := range cfg.aliases {
		if !declared[to] {
			return nil, &TableError{Domain: name, Reason: fmt.Sprintf("alias %q points to undeclared status %q", raw, to)}
		}
	}

	if cfg.derive != nil {
		if len(cfg.produces) == 0 {
			return nil, &TableError{Domain: name, Reason: "deriver declares no output statuses"}
		}
		for _, s := range cfg.produces {
			if !declared[s] {
				return nil, &TableError{Domain: name, Reason: fmt.Sprintf("deriver produces undeclared status %q", s)}
			}
		}
	}

	order := make([]Canonical, len(statuses))
	copy(order, statuses)

	return &Domain{
		name:    name,
		order:   order,
		table:   table,
		aliases: cfg.aliases,
		derive:  cfg.derive,
	}, nil
}

// MustDomain is like NewDomain but panics on an invalid table.
// It is meant for package-level catalog declarations.
func MustDomain(name string, statuses []Canonical, entries []Entry, opts ...DomainOption) *Domain {
	d, err := NewDomain(name, statuses, entries, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the domain name.
func (d *Domain) Name() string {
	return d.name
}

// Statuses returns the enumeration in declaration order.
func (d *Domain) Statuses() []Canonical {
	out := make([]Canonical, len(d.order))
	copy(out, d.order)
	return out
}

// Contains reports whether s is part of the enumeration.
func (d *Domain) Contains(s Canonical) bool {
	_, ok := d.table[s]
	return ok
}

// HasDeriver reports whether the domain applies a threshold override.
func (d *Domain) HasDeriver() bool {
	return d.derive != nil
}

// Entries returns the presentation table in declaration order.
func (d *Domain) Entries() []Entry {
	out := make([]Entry, 0, len(d.order))
	for _, s := range d.order {
		disp := d.table[s]
		out = append(out, Entry{Status: s, Label: disp.Label, Severity: disp.Severity})
	}
	return out
}

// Present maps a canonical status to its display status.
func (d *Domain) Present(s Canonical) (Display, error) {
	disp, ok := d.table[s]
	if !ok {
		return Display{}, &UnknownStatusError{Domain: d.name, Status: string(s)}
	}
	return disp, nil
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

package auth

import (
	"errors"
	"strings"
)

// ErrUnknownMember is returned when a name is not part of the household.
var ErrUnknownMember = errors.New("not a family member")

// Directory is the configured list of household members.
type Directory struct {
	members []string
}

// NewDirectory builds a directory from names, dropping blanks and
// case-insensitive duplicates while keeping the first spelling.
func NewDirectory(names []string) *Directory {
	d := &Directory{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, exists := d.Lookup(n); exists {
			continue
		}
		d.members = append(d.members, n)
	}
	return d
}

// Members returns the member names in configured order.
func (d *Directory) Members() []string {
	out := make([]string, len(d.members))
	copy(out, d.members)
	return out
}

// Lookup finds name ignoring case and returns its configured spelling.
func (d *Directory) Lookup(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, m := range d.members {
		if strings.EqualFold(m, name) {
			return m, true
		}
	}
	return "", false
}

// Select resolves name to a member or returns ErrUnknownMember.
func (d *Directory) Select(name string) (string, error) {
	m, ok := d.Lookup(name)
	if !ok {
		return "", ErrUnknownMember
	}
	return m, nil
}

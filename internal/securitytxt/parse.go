// SPDX-License-Identifier: AGPL-3.0-or-later
package securitytxt

import (
	"fmt"
	"strings"
	"time"
)

const pgpSignedHeader = "-----BEGIN PGP SIGNED MESSAGE-----"

// Fields holds the parsed fields of a security.txt file. Keys are
// lower-cased field names; values keep file order.
type Fields struct {
	Values map[string][]string
	Signed bool
}

// Get returns the values of a field, case-insensitively.
func (f Fields) Get(name string) []string {
	return f.Values[strings.ToLower(name)]
}

// Parse reads every "Field: value" line, skipping comments and the PGP
// armor lines of a signed file.
func Parse(body string) Fields {
	f := Fields{Values: map[string][]string{}}
	if strings.Contains(body, pgpSignedHeader) {
		f.Signed = true
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-----") {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || strings.ContainsAny(name, " \t") {
			continue
		}
		f.Values[name] = append(f.Values[name], strings.TrimSpace(value))
	}
	return f
}

// ParseExpires parses an Expires value. RFC 9116 requires an RFC 3339
// date-time; a bare date is accepted too and read as midnight UTC.
func ParseExpires(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("expires %q is not an RFC 3339 date-time", s)
}

// SPDX-License-Identifier: AGPL-3.0-or-later

// Package securitytxt builds and parses RFC 9116 security.txt files.
package securitytxt

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// WellKnownPath is where RFC 9116 places the file, relative to the site root.
const WellKnownPath = ".well-known/security.txt"

// DefaultExpiresInDays is used when neither Expires nor ExpiresInDays is set.
const DefaultExpiresInDays = 365

// Document is the `security` block of the robotsgen config file.
type Document struct {
	Contacts           []string `yaml:"contact"`
	Expires            string   `yaml:"expires"`
	ExpiresInDays      int      `yaml:"expires-in-days"`
	Encryption         []string `yaml:"encryption"`
	Acknowledgments    []string `yaml:"acknowledgments"`
	PreferredLanguages []string `yaml:"preferred-languages"`
	Canonical          []string `yaml:"canonical"`
	Policy             []string `yaml:"policy"`
	Hiring             []string `yaml:"hiring"`
}

// LoadDocument reads the `security` block from a YAML config file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var wrapper struct {
		Security *Document `yaml:"security"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if wrapper.Security == nil {
		return nil, fmt.Errorf("config file %s has no security block", path)
	}
	return wrapper.Security, nil
}

// Build renders doc. A missing Expires is computed from now; a missing
// Canonical defaults to the well-known URL on siteURL. Missing contacts are
// not an error here, validation reports them.
func Build(doc *Document, siteURL string, now time.Time, comments bool) string {
	var b strings.Builder

	if comments {
		b.WriteString("# security.txt generated by robotsgen\n")
		b.WriteString("# https://www.rfc-editor.org/rfc/rfc9116\n\n")
	}

	writeAll(&b, "Contact", doc.Contacts)
	b.WriteString("Expires: " + expires(doc, now) + "\n")
	writeAll(&b, "Encryption", doc.Encryption)
	writeAll(&b, "Acknowledgments", doc.Acknowledgments)
	if len(doc.PreferredLanguages) > 0 {
		b.WriteString("Preferred-Languages: " + strings.Join(doc.PreferredLanguages, ", ") + "\n")
	}

	canonical := doc.Canonical
	if len(canonical) == 0 && siteURL != "" {
		canonical = []string{strings.TrimSuffix(siteURL, "/") + "/" + WellKnownPath}
	}
	writeAll(&b, "Canonical", canonical)
	writeAll(&b, "Policy", doc.Policy)
	writeAll(&b, "Hiring", doc.Hiring)

	return b.String()
}

func expires(doc *Document, now time.Time) string {
	if s := strings.TrimSpace(doc.Expires); s != "" {
		return s
	}
	days := doc.ExpiresInDays
	if days <= 0 {
		days = DefaultExpiresInDays
	}
	return now.UTC().AddDate(0, 0, days).Truncate(time.Second).Format(time.RFC3339)
}

func writeAll(b *strings.Builder, field string, values []string) {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			b.WriteString(field + ": " + v + "\n")
		}
	}
}

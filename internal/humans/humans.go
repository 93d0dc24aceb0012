// SPDX-License-Identifier: AGPL-3.0-or-later

// Package humans builds humanstxt.org style humans.txt files.
package humans

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Filename is the conventional name at the site root.
const Filename = "humans.txt"

// Member is a person listed under TEAM or THANKS.
type Member struct {
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Contact  string `yaml:"contact"`
	Twitter  string `yaml:"twitter"`
	Location string `yaml:"location"`
}

// Site describes the SITE section.
type Site struct {
	LastUpdate string   `yaml:"last-update"`
	Language   string   `yaml:"language"`
	Doctype    string   `yaml:"doctype"`
	Standards  []string `yaml:"standards"`
	Components []string `yaml:"components"`
	Software   []string `yaml:"software"`
	IDE        string   `yaml:"ide"`
}

// Document is the `humans` block of the robotsgen config file.
type Document struct {
	Team   []Member `yaml:"team"`
	Thanks []Member `yaml:"thanks"`
	Site   Site     `yaml:"site"`
}

// LoadDocument reads the `humans` block from a YAML config file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var wrapper struct {
		Humans *Document `yaml:"humans"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if wrapper.Humans == nil {
		return nil, fmt.Errorf("config file %s has no humans block", path)
	}
	return wrapper.Humans, nil
}

// Build renders doc. Empty sections are omitted except SITE, which always
// carries at least the last update date.
func Build(doc *Document, now time.Time) string {
	var b strings.Builder

	if len(doc.Team) > 0 {
		b.WriteString("/* TEAM */\n")
		writeMembers(&b, doc.Team)
	}

	if len(doc.Thanks) > 0 {
		b.WriteString("/* THANKS */\n")
		writeMembers(&b, doc.Thanks)
	}

	b.WriteString("/* SITE */\n")
	last := doc.Site.LastUpdate
	if last == "" {
		last = now.UTC().Format("2006/01/02")
	}
	field(&b, "Last update", last)
	field(&b, "Language", doc.Site.Language)
	field(&b, "Doctype", doc.Site.Doctype)
	field(&b, "Standards", strings.Join(doc.Site.Standards, ", "))
	field(&b, "Components", strings.Join(doc.Site.Components, ", "))
	field(&b, "Software", strings.Join(doc.Site.Software, ", "))
	field(&b, "IDE", doc.Site.IDE)

	return b.String()
}

func writeMembers(b *strings.Builder, members []Member) {
	for _, m := range members {
		label := m.Role
		if label == "" {
			label = "Name"
		}
		field(b, label, m.Name)
		field(b, "Contact", m.Contact)
		field(b, "Twitter", m.Twitter)
		field(b, "From", m.Location)
		b.WriteString("\n")
	}
}

func field(b *strings.Builder, name, value string) {
	if value = strings.TrimSpace(value); value != "" {
		b.WriteString("\t" + name + ": " + value + "\n")
	}
}

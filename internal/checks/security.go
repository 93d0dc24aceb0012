// SPDX-License-Identifier: AGPL-3.0-or-later
package checks

import (
	"context"
	"fmt"
	"strings"

	"github.com/bartekus/robotsgen/internal/runner"
	"github.com/bartekus/robotsgen/internal/securitytxt"
)

// SecurityContact requires at least one Contact field (RFC 9116 §2.5.3).
type SecurityContact struct{ id string }

func NewSecurityContact() runner.Check { return &SecurityContact{id: "security:contact"} }

func (c *SecurityContact) ID() string { return c.id }

func (c *SecurityContact) Run(ctx context.Context, in *runner.Input) []runner.Finding {
	if len(securitytxt.Parse(in.Text).Get("contact")) > 0 {
		return nil
	}
	return []runner.Finding{{
		Check:    c.id,
		Severity: in.Problem(),
		Message:  "missing required Contact field (RFC 9116 §2.5.3)",
	}}
}

// SecurityExpires requires exactly one parseable, unexpired Expires field
// (RFC 9116 §2.5.5).
type SecurityExpires struct{ id string }

func NewSecurityExpires() runner.Check { return &SecurityExpires{id: "security:expires"} }

func (c *SecurityExpires) ID() string { return c.id }

func (c *SecurityExpires) Run(ctx context.Context, in *runner.Input) []runner.Finding {
	values := securitytxt.Parse(in.Text).Get("expires")
	if len(values) == 0 {
		return []runner.Finding{{
			Check:    c.id,
			Severity: in.Problem(),
			Message:  "missing required Expires field (RFC 9116 §2.5.5)",
		}}
	}

	t, err := securitytxt.ParseExpires(values[0])
	if err != nil {
		return []runner.Finding{{
			Check:    c.id,
			Severity: in.Problem(),
			Message:  err.Error(),
		}}
	}

	now := in.Time()
	switch {
	case now.After(t):
		return []runner.Finding{{
			Check:    c.id,
			Severity: in.Problem(),
			Message:  fmt.Sprintf("file expired on %s (RFC 9116 §2.5.5)", t.Format("2006-01-02")),
		}}
	case t.After(now.AddDate(1, 0, 0)):
		return []runner.Finding{{
			Check:    c.id,
			Severity: runner.SeverityWarning,
			Message:  fmt.Sprintf("Expires %s is more than a year ahead; RFC 9116 recommends less", t.Format("2006-01-02")),
		}}
	}
	return []runner.Finding{{
		Check:    c.id,
		Severity: runner.SeverityInfo,
		Message:  fmt.Sprintf("expires on %s", t.Format("2006-01-02")),
	}}
}

var singleOccurrenceFields = []string{"Expires", "Preferred-Languages"}

// SecuritySingleFields rejects repeated fields that RFC 9116 allows once.
type SecuritySingleFields struct{ id string }

func NewSecuritySingleFields() runner.Check {
	return &SecuritySingleFields{id: "security:single-fields"}
}

func (c *SecuritySingleFields) ID() string { return c.id }

func (c *SecuritySingleFields) Run(ctx context.Context, in *runner.Input) []runner.Finding {
	fields := securitytxt.Parse(in.Text)
	var out []runner.Finding
	for _, name := range singleOccurrenceFields {
		if n := len(fields.Get(name)); n > 1 {
			out = append(out, runner.Finding{
				Check:    c.id,
				Severity: in.Problem(),
				Message:  fmt.Sprintf("%s must appear at most once, found %d", name, n),
			})
		}
	}
	return out
}

var webResourceFields = []string{"Contact", "Encryption", "Policy", "Acknowledgments", "Hiring", "Canonical"}

// SecurityHTTPS flags web resources served over plain http.
type SecurityHTTPS struct{ id string }

func NewSecurityHTTPS() runner.Check { return &SecurityHTTPS{id: "security:https"} }

func (c *SecurityHTTPS) ID() string { return c.id }

func (c *SecurityHTTPS) Run(ctx context.Context, in *runner.Input) []runner.Finding {
	fields := securitytxt.Parse(in.Text)
	var out []runner.Finding
	for _, name := range webResourceFields {
		for _, v := range fields.Get(name) {
			if strings.HasPrefix(strings.ToLower(v), "http://") {
				out = append(out, runner.Finding{
					Check:    c.id,
					Severity: runner.SeverityWarning,
					Message:  fmt.Sprintf("%s %s should use https", name, v),
				})
			}
		}
	}
	return out
}

// SecuritySignature reports whether the file is PGP signed.
type SecuritySignature struct{ id string }

func NewSecuritySignature() runner.Check { return &SecuritySignature{id: "security:signature"} }

func (c *SecuritySignature) ID() string { return c.id }

func (c *SecuritySignature) Run(ctx context.Context, in *runner.Input) []runner.Finding {
	msg := "file is not PGP signed (optional, RFC 9116 §2.3)"
	if securitytxt.Parse(in.Text).Signed {
		msg = "PGP signature detected"
	}
	return []runner.Finding{{
		Check:    c.id,
		Severity: runner.SeverityInfo,
		Message:  msg,
	}}
}

// SPDX-License-Identifier: AGPL-3.0-or-later
package securitytxt

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestBuild(t *testing.T) {
	doc := &Document{
		Contacts:           []string{"mailto:security@example.com", " https://example.com/report "},
		Encryption:         []string{"https://example.com/pgp.asc"},
		PreferredLanguages: []string{"en", "de"},
		Policy:             []string{"https://example.com/policy"},
	}

	got := Build(doc, "https://example.com", fixedNow, false)

	want := "Contact: mailto:security@example.com\n" +
		"Contact: https://example.com/report\n" +
		"Expires: 2027-01-02T03:04:05Z\n" +
		"Encryption: https://example.com/pgp.asc\n" +
		"Preferred-Languages: en, de\n" +
		"Canonical: https://example.com/.well-known/security.txt\n" +
		"Policy: https://example.com/policy\n"
	assert.Equal(t, want, got)
}

func TestBuild_ExplicitExpiresAndDays(t *testing.T) {
	got := Build(&Document{Expires: "2030-01-01T00:00:00Z"}, "", fixedNow, true)
	assert.Contains(t, got, "Expires: 2030-01-01T00:00:00Z\n")
	assert.Contains(t, got, "# security.txt generated by robotsgen")
	assert.NotContains(t, got, "Canonical:")

	got = Build(&Document{ExpiresInDays: 30}, "", fixedNow, false)
	assert.Contains(t, got, "Expires: 2026-02-01T03:04:05Z\n")
}

func TestParse(t *testing.T) {
	body := "-----BEGIN PGP SIGNED MESSAGE-----\nHash: SHA256\n\n# comment\nContact: mailto:a@example.com\ncontact: https://example.com/c\nExpires: 2030-01-01T00:00:00Z\nnot a field line\n-----BEGIN PGP SIGNATURE-----\nabc\n-----END PGP SIGNATURE-----\n"

	f := Parse(body)

	assert.True(t, f.Signed)
	assert.Equal(t, []string{"mailto:a@example.com", "https://example.com/c"}, f.Get("Contact"))
	assert.Equal(t, []string{"2030-01-01T00:00:00Z"}, f.Get("expires"))
	assert.Empty(t, f.Get("Policy"))
}

func TestParseExpires(t *testing.T) {
	_, err := ParseExpires("2030-01-01T00:00:00+02:00")
	assert.NoError(t, err)
	_, err = ParseExpires("2030-01-01T00:00:00Z")
	assert.NoError(t, err)
	_, err = ParseExpires("2024/13/45")
	assert.Error(t, err)

	day, err := ParseExpires("2030-06-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC), day)

	_, err = ParseExpires("2030-06-15T10:00:00")
	assert.Error(t, err, "date-time without zone")
}

func TestLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robotsgen.yaml")
	content := "site-url: https://example.com\nsecurity:\n  contact:\n    - mailto:sec@example.com\n  expires-in-days: 90\n  preferred-languages: [en]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"mailto:sec@example.com"}, doc.Contacts)
	assert.Equal(t, 90, doc.ExpiresInDays)
	assert.Equal(t, []string{"en"}, doc.PreferredLanguages)

	missing := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(missing, []byte("site-url: x\n"), 0o644))
	_, err = LoadDocument(missing)
	assert.Error(t, err)
}

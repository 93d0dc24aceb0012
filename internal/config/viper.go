// SPDX-License-Identifier: AGPL-3.0-or-later
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix GitHub Actions puts in front of action inputs.
const EnvPrefix = "INPUT"

var allKeys = []string{
	KeySiteURL, KeyPublicDir, KeyOutputDir, KeyFilename, KeyUserAgent,
	KeyDisallow, KeyAllow, KeyCrawlDelay, KeySitemaps, KeyComments,
	KeyStrict, KeyDebug, KeyUpload, KeyArtifactName, KeyRetentionDays,
	KeyMaxSizeKB, KeyRequireSitemap, KeyStateDir, KeyConfigFile,
}

// NewViper returns a viper instance wired to the given flag set and to the
// INPUT_* environment. Flags that are not part of the set are ignored, so
// commands can expose only the inputs they use.
func NewViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	for _, key := range allKeys {
		// Actions keeps hyphens in input names (INPUT_SITE-URL); shells
		// cannot export those, so the underscore spelling is accepted too.
		upper := strings.ToUpper(key)
		envHyphen := EnvPrefix + "_" + upper
		envUnderscore := EnvPrefix + "_" + strings.ReplaceAll(upper, "-", "_")
		if err := v.BindEnv(key, envHyphen, envUnderscore); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}

		if flags == nil {
			continue
		}
		if f := flags.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", key, err)
			}
		}
	}

	return v, nil
}

// SetDefaults registers the documented defaults. Calling it twice is harmless.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPublicDir, DefaultPublicDir)
	v.SetDefault(KeyFilename, DefaultFilename)
	v.SetDefault(KeyUserAgent, DefaultUserAgent)
	v.SetDefault(KeyComments, true)
	v.SetDefault(KeyArtifactName, DefaultArtifactName)
	v.SetDefault(KeyRetentionDays, DefaultRetentionDays)
	v.SetDefault(KeyMaxSizeKB, DefaultMaxSizeKB)
	v.SetDefault(KeyStateDir, DefaultStateDir)
}

// RegisterFlags adds the generation inputs to a flag set.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeySiteURL, "", "absolute site URL (http:// or https://)")
	fs.String(KeyPublicDir, DefaultPublicDir, "directory holding the built site")
	fs.String(KeyOutputDir, "", "directory to write to (defaults to --public-dir)")
	fs.String(KeyFilename, DefaultFilename, "output file name")
	fs.String(KeyUserAgent, DefaultUserAgent, "User-agent the rules apply to")
	fs.String(KeyDisallow, "", "comma or newline separated Disallow paths")
	fs.String(KeyAllow, "", "comma or newline separated Allow paths")
	fs.String(KeyCrawlDelay, "", "Crawl-delay value in seconds")
	fs.String(KeySitemaps, "", "comma or newline separated sitemap URLs or paths")
	fs.Bool(KeyComments, true, "prepend the generator banner")
	fs.Bool(KeyUpload, false, "stage the written file as a CI artifact")
	fs.String(KeyArtifactName, DefaultArtifactName, "artifact name")
	fs.Int(KeyRetentionDays, DefaultRetentionDays, "artifact retention in days (1-90)")
	RegisterValidationFlags(fs)
}

// RegisterValidationFlags adds the inputs that only influence validation.
func RegisterValidationFlags(fs *pflag.FlagSet) {
	fs.Bool(KeyStrict, false, "treat validation warnings as errors")
	fs.Int(KeyMaxSizeKB, DefaultMaxSizeKB, "maximum file size in KB")
	fs.Bool(KeyRequireSitemap, false, "require at least one Sitemap directive")
}

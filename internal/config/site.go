package config

// File represents the settings loaded from a .webfreq configuration file.
// All sections are optional; a missing file leaves everything at its
// zero value and the CLI defaults apply.
type File struct {
	// Analysis tunes the word and tag counting.
	Analysis AnalysisConfig `yaml:"analysis"`

	// Defaults applies to every site that has no specific entry.
	Defaults SiteConfig `yaml:"defaults"`

	// Sites maps a host name to site-specific request settings.
	Sites map[string]SiteConfig `yaml:"sites"`
}

// AnalysisConfig tunes how text and tags are counted.
type AnalysisConfig struct {
	// Top overrides the default number of words to report.
	// Zero means "not set"; use negative values to ask for zero words.
	Top int `yaml:"top"`

	// StopWords replaces the built-in stop-word list when non-empty.
	StopWords []string `yaml:"stop_words"`

	// ExcludedTags replaces the built-in list of tags whose text is
	// invisible (script, style, noscript, template) when non-empty.
	ExcludedTags []string `yaml:"excluded_tags"`
}

// SiteConfig holds per-site request settings.
type SiteConfig struct {
	// Cookie is sent as the Cookie header, for pages behind a login.
	Cookie string `yaml:"cookie"`

	// UserAgent overrides the default User-Agent header.
	UserAgent string `yaml:"user_agent"`

	// Headers holds additional request headers.
	Headers map[string]string `yaml:"headers"`
}

// NewFile creates an empty File.
func NewFile() *File {
	return &File{
		Sites: make(map[string]SiteConfig),
	}
}

// GetSiteConfig returns the request settings for the given host. Site
// specific values win over defaults field by field, so a site entry that
// only sets a cookie still inherits the default user agent.
func (f *File) GetSiteConfig(host string) SiteConfig {
	merged := f.Defaults
	site, ok := f.Sites[host]
	if !ok {
		return merged
	}
	if site.Cookie != "" {
		merged.Cookie = site.Cookie
	}
	if site.UserAgent != "" {
		merged.UserAgent = site.UserAgent
	}
	if len(site.Headers) > 0 {
		if merged.Headers == nil {
			merged.Headers = make(map[string]string, len(site.Headers))
		} else {
			// Copy so the defaults map is not mutated.
			headers := make(map[string]string, len(merged.Headers)+len(site.Headers))
			for k, v := range merged.Headers {
				headers[k] = v
			}
			merged.Headers = headers
		}
		for k, v := range site.Headers {
			merged.Headers[k] = v
		}
	}
	return merged
}

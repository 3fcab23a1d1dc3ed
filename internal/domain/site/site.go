package site

type NavItem struct {
	Text string `yaml:"text" json:"text"`
	Link string `yaml:"link" json:"link"`
}

type SocialLink struct {
	Icon string `yaml:"icon" json:"icon"`
	Link string `yaml:"link" json:"link"`
}

type CodeTheme struct {
	Light string `yaml:"light" json:"light"`
	Dark  string `yaml:"dark" json:"dark"`
}

// Theme is the renderer-facing part of the site configuration.
type Theme struct {
	Nav         []NavItem    `yaml:"nav" json:"nav"`
	Social      []SocialLink `yaml:"social" json:"socialLinks,omitempty"`
	CodeTheme   CodeTheme    `yaml:"code_theme" json:"codeTheme"`
	LastUpdated bool         `yaml:"last_updated" json:"lastUpdated"`
	CleanURLs   bool         `yaml:"clean_urls" json:"cleanUrls"`
}

package colors

// ColorScheme defines the colors used by the CLI renderer.
type ColorScheme struct {
	// Preset name ("default" or "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (card borders, field labels)
	Accent string `yaml:"accent"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted text such as IDs and timestamps
	Normal string `yaml:"normal"`

	// Priority colors for task badges
	PriorityHigh   string `yaml:"priority_high"`
	PriorityMedium string `yaml:"priority_medium"`
	PriorityLow    string `yaml:"priority_low"`

	// Risk appetite colors, from Riesgo Bajo up to Riesgo Extremo
	RiskLow      string `yaml:"risk_low"`
	RiskModerate string `yaml:"risk_moderate"`
	RiskHigh     string `yaml:"risk_high"`
	RiskExtreme  string `yaml:"risk_extreme"`

	// Notification colors (foreground/background pairs)
	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	WarningFg string `yaml:"warning_fg"`
	WarningBg string `yaml:"warning_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`
}

// GetPreset returns a preset color scheme by name. Unknown names fall back
// to the default preset.
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// fields lists every color slot so defaults and merges stay in step with
// the struct.
func (c *ColorScheme) fields() []*string {
	return []*string{
		&c.Accent, &c.Title, &c.Subtle, &c.Normal,
		&c.PriorityHigh, &c.PriorityMedium, &c.PriorityLow,
		&c.RiskLow, &c.RiskModerate, &c.RiskHigh, &c.RiskExtreme,
		&c.InfoFg, &c.InfoBg, &c.WarningFg, &c.WarningBg, &c.ErrorFg, &c.ErrorBg,
	}
}

// ApplyDefaults fills in missing color values from the named preset.
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	if c.Preset == "" {
		c.Preset = preset.Preset
	}
	base := preset.fields()
	for i, f := range c.fields() {
		if *f == "" {
			*f = *base[i]
		}
	}
}

// MergeFrom overrides c with every non-empty value of other.
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	if other.Preset != "" {
		c.Preset = other.Preset
	}
	src := other.fields()
	for i, f := range c.fields() {
		if *src[i] != "" {
			*f = *src[i]
		}
	}
}

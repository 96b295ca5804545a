package colors

// Default returns the default color scheme (purple theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		Accent: "#874BFD",

		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		PriorityHigh:   "#FF5F5F",
		PriorityMedium: "#FFD700",
		PriorityLow:    "#5FD75F",

		RiskLow:      "#5FD75F",
		RiskModerate: "#FFD700",
		RiskHigh:     "#FF8700",
		RiskExtreme:  "#FF0000",

		InfoFg:    "#00AFFF",
		InfoBg:    "#00005F",
		WarningFg: "#FFD700",
		WarningBg: "#875F00",
		ErrorFg:   "#FF0000",
		ErrorBg:   "#5F0000",
	}
}

package utils

// ColourScheme is the Catppuccin Mocha subset the contact form draws with
type ColourScheme struct {
	Red      string
	Peach    string
	Green    string
	Blue     string
	Lavender string
	Text     string
	Subtext0 string
	Overlay0 string
	Surface1 string
	Surface0 string
	Base     string
}

var Colours = ColourScheme{
	Red:      "#f38ba8",
	Peach:    "#fab387",
	Green:    "#a6e3a1",
	Blue:     "#89b4fa",
	Lavender: "#b4befe",
	Text:     "#cdd6f4",
	Subtext0: "#a6adc8",
	Overlay0: "#6c7086",
	Surface1: "#45475a",
	Surface0: "#313244",
	Base:     "#1e1e2e",
}

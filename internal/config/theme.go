package config

// Theme holds the colors used for styled terminal output
type Theme struct {
	// Preset name ("default" or "monochrome")
	Preset string `yaml:"preset"`

	Accent  string `yaml:"accent"`
	Title   string `yaml:"title"`
	Subtle  string `yaml:"subtle"`
	Success string `yaml:"success"`
	Danger  string `yaml:"danger"`
}

// DefaultTheme returns the default (purple) theme
func DefaultTheme() Theme {
	return Theme{
		Preset:  "default",
		Accent:  "#874BFD",
		Title:   "#D75FD7",
		Subtle:  "#585858",
		Success: "#5FD75F",
		Danger:  "#FF0000",
	}
}

// MonochromeTheme returns a black and white theme
func MonochromeTheme() Theme {
	return Theme{
		Preset:  "monochrome",
		Accent:  "#FFFFFF",
		Title:   "#FFFFFF",
		Subtle:  "#808080",
		Success: "#FFFFFF",
		Danger:  "#FFFFFF",
	}
}

// ThemePreset returns a preset theme by name
func ThemePreset(name string) Theme {
	if name == "monochrome" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}

// ApplyDefaults fills in missing colors from the preset
func (t *Theme) ApplyDefaults() {
	preset := ThemePreset(t.Preset)
	if t.Preset == "" {
		t.Preset = preset.Preset
	}
	if t.Accent == "" {
		t.Accent = preset.Accent
	}
	if t.Title == "" {
		t.Title = preset.Title
	}
	if t.Subtle == "" {
		t.Subtle = preset.Subtle
	}
	if t.Success == "" {
		t.Success = preset.Success
	}
	if t.Danger == "" {
		t.Danger = preset.Danger
	}
}

package models

// Theme is a visitor's display mode.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps free-form input to a Theme. Anything other than "dark" is light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// SetThemeRequest is the payload sent to the theme endpoint.
type SetThemeRequest struct {
	Theme *string `json:"theme"`
}

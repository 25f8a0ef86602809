package handlers

import "github.com/Lixing-Zhang/vending-machine/internal/models"

// DefaultIcon is shown for selections without a registered icon
const DefaultIcon = "default"

// IconRegistry maps selections to icon asset names
type IconRegistry struct {
	icons map[models.Selection]string
}

// NewIconRegistry creates a registry with an icon for every known selection
// except those listed in missing.
func NewIconRegistry(missing ...models.Selection) *IconRegistry {
	skip := make(map[models.Selection]bool, len(missing))
	for _, sel := range missing {
		skip[sel] = true
	}

	icons := make(map[models.Selection]string)
	for _, sel := range models.Selections() {
		if skip[sel] {
			continue
		}
		icons[sel] = sel.String()
	}
	return &IconRegistry{icons: icons}
}

// Register sets the icon used for sel
func (r *IconRegistry) Register(sel models.Selection, icon string) {
	r.icons[sel] = icon
}

// Resolve returns the icon for sel, falling back to DefaultIcon
func (r *IconRegistry) Resolve(sel models.Selection) string {
	if icon, ok := r.icons[sel]; ok && icon != "" {
		return icon
	}
	return DefaultIcon
}

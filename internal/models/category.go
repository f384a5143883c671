package models

// CategoryDef describes a category offered by the UI.
type CategoryDef struct {
	Name  string
	Color string
}

// Categories is the catalogue shown in forms and filters. Storage accepts
// any category string; this list only drives the UI.
var Categories = []CategoryDef{
	{"Food", "#60a5fa"},
	{"Transport", "#a78bfa"},
	{"Utilities", "#fbbf24"},
	{"Rent", "#818cf8"},
	{"Health Care", "#34d399"},
	{"Clothing", "#f472b6"},
	{"Investment", "#fb7185"},
}

// CategoryColor returns the chart colour of a category, or a neutral grey
// for names outside the catalogue.
func CategoryColor(name string) string {
	for _, c := range Categories {
		if c.Name == name {
			return c.Color
		}
	}
	return "#94a3b8"
}

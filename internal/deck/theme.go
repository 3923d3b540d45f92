// Package deck assembles the fixed-structure audit presentation as one batch
// of draw operations for the rendering target.
package deck

import "fmt"

// Color is an RGB color on the 0..1 scale used by the rendering target.
type Color struct {
	R float64 `yaml:"r" json:"r"`
	G float64 `yaml:"g" json:"g"`
	B float64 `yaml:"b" json:"b"`
}

// Theme is the immutable deck styling injected into the Assembler at
// construction. Nothing mutates it after startup.
type Theme struct {
	Primary    Color
	DarkBlue   Color
	White      Color
	Dark       Color
	Red        Color
	Error      Color
	Warning    Color
	Success    Color
	Gray       Color
	Yellow     Color
	LightBlue  Color
	LightGray  Color
	BlueAccent Color
	BodyText   Color

	// AssetIDs are static hosted-image identifiers for recurring artwork.
	AssetIDs map[string]string
}

func rgb255(r, g, b float64) Color {
	return Color{R: r / 255, G: g / 255, B: b / 255}
}

// DefaultTheme returns the standard deck palette.
func DefaultTheme() Theme {
	return Theme{
		Primary:    rgb255(51, 102, 204),
		DarkBlue:   rgb255(30, 64, 153),
		White:      Color{R: 1, G: 1, B: 1},
		Dark:       rgb255(26, 43, 72),
		Red:        rgb255(204, 51, 51),
		Error:      rgb255(204, 51, 51),
		Warning:    rgb255(234, 134, 45),
		Success:    rgb255(46, 139, 87),
		Gray:       rgb255(128, 128, 128),
		Yellow:     rgb255(255, 193, 7),
		LightBlue:  rgb255(128, 222, 234),
		LightGray:  rgb255(245, 245, 245),
		BlueAccent: rgb255(66, 133, 244),
		BodyText:   Color{R: 0.2, G: 0.2, B: 0.2},
		AssetIDs: map[string]string{
			"cover_phone": "1CwI37IBvke9dq0efr7ijpK-FCl-UCtZ-",
			"funnel":      "1nOlC8bTQF6JpzbV_iUG4H7OVdbkw75cL",
			"pillars":     "15_8zxssOQR2Cs1nVJAYtB7098SCUEOpH",
		},
	}
}

// AssetURL builds the public download URL for a static asset, or "" when the
// asset is not configured.
func (t Theme) AssetURL(name string) string {
	id, ok := t.AssetIDs[name]
	if !ok || id == "" {
		return ""
	}
	return fmt.Sprintf("https://drive.google.com/uc?id=%s&export=download", id)
}

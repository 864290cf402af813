package todo

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// cssOnlyNames holds CSS Color Level 4 keywords missing from the SVG 1.1
// table in colornames.
var cssOnlyNames = map[string]color.RGBA{
	"rebeccapurple": {0x66, 0x33, 0x99, 0xff},
}

// KeywordHex translates a CSS color keyword such as "red" into its lowercase
// "#rrggbb" form. Keywords are matched exactly.
func KeywordHex(keyword string) (string, bool) {
	c, ok := cssOnlyNames[keyword]
	if !ok {
		c, ok = colornames.Map[keyword]
	}
	if !ok {
		return "", false
	}
	cf, _ := colorful.MakeColor(c)
	return cf.Hex(), true
}

package app

import (
	"image/color"
	"strings"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/teamsphere/internal/content"
	"github.com/Faultbox/teamsphere/internal/engine/overlay"
)

const panelPadding = 12

var (
	panelBackground = color.RGBA{R: 10, G: 14, B: 24, A: 170}
	labelColor      = color.RGBA{R: 150, G: 190, B: 255, A: 255}
	titleColor      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	bodyColor       = color.RGBA{R: 210, G: 215, B: 225, A: 255}
)

// panelLines lays out the caption panel. item is nil before the first
// active item is known.
func panelLines(faces *overlay.Faces, section string, item *content.MenuItem, hint bool) []overlay.Line {
	var lines []overlay.Line
	if item != nil {
		label, name, tagline := content.CaptionParts(section, *item)
		lines = append(lines,
			overlay.Line{Text: label, Face: faces.Label, Color: labelColor},
			overlay.Line{Text: name, Face: faces.Title, Color: titleColor},
			overlay.Line{Text: tagline, Face: faces.Body, Color: bodyColor},
		)
		if links := socialLine(*item); links != "" {
			lines = append(lines, overlay.Line{Text: links, Face: faces.Body, Color: labelColor})
		}
	}
	if hint {
		lines = append(lines, overlay.Line{Text: hintText, Face: faces.Body, Color: bodyColor})
	}
	return lines
}

// socialKeys binds each profile platform to the key that opens it, in
// display order.
var socialKeys = []struct {
	platform string
	key      sdl.Scancode
	label    string
}{
	{"github", sdl.SCANCODE_G, "G"},
	{"linkedin", sdl.SCANCODE_L, "L"},
	{"instagram", sdl.SCANCODE_I, "I"},
}

// socialForKey returns the platform bound to key.
func socialForKey(key sdl.Scancode) (string, bool) {
	for _, s := range socialKeys {
		if s.key == key {
			return s.platform, true
		}
	}
	return "", false
}

// socialLine lists the platforms an item links to with their keys.
func socialLine(item content.MenuItem) string {
	links := item.SocialLinks()
	var names []string
	for _, s := range socialKeys {
		if _, ok := links[s.platform]; ok {
			names = append(names, s.platform+" ["+s.label+"]")
		}
	}
	return strings.Join(names, " · ")
}

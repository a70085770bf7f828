package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/font/basicfont"

	"github.com/Faultbox/teamsphere/internal/content"
	"github.com/Faultbox/teamsphere/internal/engine/overlay"
)

func testFaces() *overlay.Faces {
	f := basicfont.Face7x13
	return &overlay.Faces{Label: f, Title: f, Body: f}
}

func TestPanelLines(t *testing.T) {
	faces := testFaces()

	t.Run("hint only", func(t *testing.T) {
		lines := panelLines(faces, "Core Team", nil, true)
		assert.Len(t, lines, 1)
		assert.Equal(t, hintText, lines[0].Text)
	})

	t.Run("item with socials", func(t *testing.T) {
		item := content.MenuItem{
			Title:     "Ada Lovelace",
			GitHub:    "https://github.com/ada",
			Instagram: "https://instagram.com/ada",
		}
		lines := panelLines(faces, "Core Team", &item, false)
		texts := make([]string, len(lines))
		for i, l := range lines {
			texts[i] = l.Text
		}
		assert.Equal(t, []string{
			"CORE TEAM",
			"Ada Lovelace",
			content.DefaultTagline,
			"github [G] · instagram [I]",
		}, texts)
	})

	t.Run("nothing", func(t *testing.T) {
		assert.Empty(t, panelLines(faces, "", nil, false))
	})
}

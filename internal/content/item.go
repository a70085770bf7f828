// Package content loads the team manifest shown on the sphere and formats the
// captions displayed for the active item.
package content

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultTagline is shown for items without their own tagline.
const DefaultTagline = "Bringing unique skills and energy to move the entire team forward."

// DefaultSection is the caption label shown above every name.
const DefaultSection = "Core Team"

// MenuItem is one entry on the sphere.
type MenuItem struct {
	Image       string `yaml:"image"`
	Link        string `yaml:"link"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Tagline     string `yaml:"tagline,omitempty"`
	GitHub      string `yaml:"github,omitempty"`
	LinkedIn    string `yaml:"linkedin,omitempty"`
	Instagram   string `yaml:"instagram,omitempty"`
}

// DefaultItems is the placeholder list used when a manifest has no items.
func DefaultItems() []MenuItem {
	return []MenuItem{{
		Image:       "https://picsum.photos/900/900?grayscale",
		Link:        "https://example.com/",
		Title:       "Team Member",
		Description: "Add your team items to the manifest.",
	}}
}

// ItemsOrDefault returns items, or DefaultItems when it is empty.
func ItemsOrDefault(items []MenuItem) []MenuItem {
	if len(items) == 0 {
		return DefaultItems()
	}
	return items
}

// NameParts splits a full name at the first space. Everything after it,
// internal spaces included, is the last name.
func NameParts(fullName string) (first, last string) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return "", ""
	}
	first, last, _ = strings.Cut(fullName, " ")
	return first, last
}

// TaglineOrDefault returns the item's tagline or DefaultTagline.
func (m MenuItem) TaglineOrDefault() string {
	if t := strings.TrimSpace(m.Tagline); t != "" {
		return t
	}
	return DefaultTagline
}

// IsExternal reports whether the link should open in the system browser.
func (m MenuItem) IsExternal() bool {
	return strings.HasPrefix(m.Link, "http")
}

// SocialLinks returns the non-empty profile links keyed by platform.
func (m MenuItem) SocialLinks() map[string]string {
	links := make(map[string]string, 3)
	if m.GitHub != "" {
		links["github"] = m.GitHub
	}
	if m.LinkedIn != "" {
		links["linkedin"] = m.LinkedIn
	}
	if m.Instagram != "" {
		links["instagram"] = m.Instagram
	}
	return links
}

// CaptionParts returns the upper-cased section label, the display name and
// the tagline for an item. Empty parts are omitted by Caption.
func CaptionParts(section string, m MenuItem) (label, name, tagline string) {
	first, last := NameParts(m.Title)
	name = first
	if last != "" {
		name += " " + last
	}
	if section != "" {
		label = cases.Upper(language.Und).String(section)
	}
	return label, name, m.TaglineOrDefault()
}

// Caption formats the single-line overlay for an item:
// "CORE TEAM | First Last | tagline".
func Caption(section string, m MenuItem) string {
	label, name, tagline := CaptionParts(section, m)

	parts := make([]string, 0, 3)
	if label != "" {
		parts = append(parts, label)
	}
	if name != "" {
		parts = append(parts, name)
	}
	parts = append(parts, tagline)
	return strings.Join(parts, " | ")
}

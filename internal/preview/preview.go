// Package preview renders a read-only terminal view of the resolved
// palette: color cards grouped by Material Design 3 role family. It
// performs no file I/O.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jsvensson/tinct/internal/color"
	"github.com/jsvensson/tinct/internal/theme"
)

const (
	swatchWidth = 30
	cardsPerRow = 3
)

// Families a role is sorted under, matched against the role name with its
// on_/inverse_ prefixes stripped. Roles matching nothing land in "other".
var families = []string{
	"primary", "secondary", "tertiary", "error",
	"surface", "background", "outline",
}

type card struct {
	title string
	roles []string
}

// Render resolves every role under the given mode and lays the palette out
// as a grid of color cards with contrast-picked label colors.
func Render(th theme.Theme, mode theme.Mode) (string, error) {
	resolved, err := th.ResolveAll(mode)
	if err != nil {
		return "", err
	}

	cards := groupRoles(th.Names())

	var rows []string
	for start := 0; start < len(cards); start += cardsPerRow {
		end := min(start+cardsPerRow, len(cards))
		rendered := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			rendered = append(rendered, renderCard(c, resolved))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}

	var out strings.Builder
	title := lipgloss.NewStyle().Bold(true).Underline(true)
	fmt.Fprintf(&out, "%s\n", title.Render("Material Design 3 color preview"))
	fmt.Fprintf(&out, "Theme mode: %s\n\n", mode)
	out.WriteString(strings.Join(rows, "\n"))
	out.WriteString("\n")
	return out.String(), nil
}

func groupRoles(names []string) []card {
	grouped := make(map[string][]string)
	for _, name := range names {
		grouped[familyOf(name)] = append(grouped[familyOf(name)], name)
	}

	var cards []card
	for _, fam := range append(families, "other") {
		if roles, ok := grouped[fam]; ok {
			cards = append(cards, card{title: titleCase(fam), roles: roles})
		}
	}
	return cards
}

func familyOf(name string) string {
	base := strings.TrimPrefix(name, "on_")
	base = strings.TrimPrefix(base, "inverse_")
	for _, fam := range families {
		if base == fam || strings.HasPrefix(base, fam+"_") {
			return fam
		}
	}
	return "other"
}

func renderCard(c card, resolved map[string]string) string {
	lines := make([]string, 0, len(c.roles)+1)
	header := lipgloss.NewStyle().Bold(true).Width(swatchWidth).Render(c.title)
	lines = append(lines, header)
	for _, role := range c.roles {
		lines = append(lines, swatch(role, resolved[role]))
	}
	return lipgloss.NewStyle().MarginRight(2).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func swatch(role, hex string) string {
	// Long role names like surface_container_highest would push the hex
	// value past the card edge and break the grid.
	nameWidth := swatchWidth - 11
	if len(role) > nameWidth {
		role = role[:nameWidth-2] + ".."
	}
	label := fmt.Sprintf(" %-*s %s ", nameWidth, role, hex)

	fg := "#ffffff"
	if c, err := color.Parse(hex); err == nil && c.Luminance() > 0.5 {
		fg = "#000000"
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(fg)).
		Width(swatchWidth).
		Render(label)
}

func titleCase(s string) string {
	return strings.ToUpper(s[:1]) + s[1:]
}

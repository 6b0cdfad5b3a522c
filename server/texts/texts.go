// Package texts renders menus, dates and the bot's fixed German replies.
// All message output is Telegram HTML.
package texts

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rcurve/mensabot/internal/civil"
	"github.com/rcurve/mensabot/plugin/openmensa"
)

// menuItemOrder fixes the display order of the main categories. Categories
// outside this list are side dishes or upstream experiments and stay hidden.
var menuItemOrder = []string{
	"Tellergericht",
	"Süßspeise",
	"Vegetarisch",
	"Klassiker",
	"Empfehlung des Tages",
	"Pasta",
	"Burger der Woche",
}

var menuItemEmojis = map[string]string{
	"Tellergericht":        "🍲",
	"Süßspeise":            "🍰",
	"Vegetarisch":          "🥗",
	"Klassiker":            "🍗",
	"Empfehlung des Tages": "🥘",
	"Pasta":                "🍝",
	"Burger der Woche":     "🍔",
}

var sideDishCategories = []string{"Hauptbeilagen", "Nebenbeilage"}

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Montag",
	time.Tuesday:   "Dienstag",
	time.Wednesday: "Mittwoch",
	time.Thursday:  "Donnerstag",
	time.Friday:    "Freitag",
	time.Saturday:  "Samstag",
	time.Sunday:    "Sonntag",
}

// supplementSplit separates a dish description into the dish itself and its
// accompaniments, as the upstream writes them.
var supplementSplit = regexp.MustCompile(` \| | mit `)

// Menu renders the whole menu as an HTML message: a date headline, the main
// categories in their fixed order, and the side-dish block.
func Menu(menu openmensa.Menu, day, today civil.Date) string {
	parts := []string{fmt.Sprintf("<b>%s</b>", HumanizedDate(day, today))}

	for _, category := range menuItemOrder {
		group, ok := menu[category]
		if !ok {
			continue
		}
		parts = append(parts, menuItem(category, group))
	}

	if sides := sideDishes(menu); sides != "" {
		parts = append(parts, sides)
	}

	return strings.Join(parts, "\n\n")
}

// HumanizedDate returns the date as an easily readable German string, e.g.
// "Heute, Mittwoch, der 19.08.2026". The relative prefix appears only when
// one of heute/morgen/übermorgen/gestern fits.
func HumanizedDate(day, today civil.Date) string {
	var prefix string
	switch day.DaysSince(today) {
	case 0:
		prefix = "Heute"
	case 1:
		prefix = "Morgen"
	case 2:
		prefix = "Übermorgen"
	case -1:
		prefix = "Gestern"
	}

	parts := make([]string, 0, 3)
	if prefix != "" {
		parts = append(parts, prefix)
	}
	parts = append(parts,
		weekdayNames[day.Weekday()],
		day.Time(time.UTC).Format("der 02.01.2006"))
	return strings.Join(parts, ", ")
}

func menuItem(category string, group *openmensa.MealGroup) string {
	header := fmt.Sprintf("<i>%s</i>", category)
	if group.Price != nil {
		header += fmt.Sprintf(" — %.2f€", *group.Price)
	}

	lines := []string{header}
	for _, name := range group.Names {
		// A single record may still pack several offerings into one
		// multi-line name.
		for _, offering := range strings.Split(name, "\n") {
			lines = append(lines, describeOffering(category, offering))
		}
	}
	return strings.Join(lines, "\n")
}

func describeOffering(category, offering string) string {
	parts := supplementSplit.Split(offering, -1)

	var supplements string
	switch {
	case len(parts) == 2:
		supplements = fmt.Sprintf(" mit %s", parts[1])
	case len(parts) > 2:
		supplements = fmt.Sprintf(" mit %s & %s",
			strings.Join(parts[1:len(parts)-1], ", "), parts[len(parts)-1])
	}

	description := fmt.Sprintf("<b>%s</b>%s", parts[0], supplements)
	if emoji, ok := menuItemEmojis[category]; ok {
		description = emoji + " " + description
	}
	return description
}

func sideDishes(menu openmensa.Menu) string {
	lines := []string{"<i>Beilagen</i>"}
	for _, category := range sideDishCategories {
		group, ok := menu[category]
		if !ok {
			continue
		}
		lines = append(lines, group.Names...)
	}
	if len(lines) == 1 {
		return ""
	}
	return strings.Join(lines, "\n")
}

const helpText = `Dieser Bot gibt den Speiseplan der Mensa Academica an der RWTH Aachen aus.

/mensa - für den heutigen Speiseplan
/mensa Tag - sendet den Speiseplan für den gewählten Tag. Dabei kann Tag unter anderem heute, Mittwoch oder ein Datum im Format YYYY-MM-DD sein.`

const dateFormatErrorText = `Das Datumsformat habe ich nicht verstanden.
Bitte benutze für ein Datum das Format YYYY-MM-DD. Du kannst auch morgen oder einen Wochentag wie Mittwoch oder kurz mi eingeben.`

const (
	noMenuErrorText = "Für diesen Tag ist kein Speiseplan verfügbar."
	closedErrorText = "An diesem Tag ist die Mensa geschlossen."
)

// Help returns the help message for this bot.
func Help() string { return helpText }

// DateFormatError returns the reply for a date the bot could not parse.
func DateFormatError() string { return dateFormatErrorText }

// NoMenuError returns the reply for a day without a plan.
func NoMenuError() string { return noMenuErrorText }

// ClosedError returns the reply for a day the canteen is closed.
func ClosedError() string { return closedErrorText }

package texts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rcurve/mensabot/internal/civil"
	"github.com/rcurve/mensabot/plugin/openmensa"
)

func price(v float64) *float64 { return &v }

func TestMenuItem(t *testing.T) {
	t.Run("SingleBarDelimitedItem", func(t *testing.T) {
		group := &openmensa.MealGroup{
			Names: []string{"Kürbis-Chia-Taler | Texicanasauce"},
			Price: price(2.1),
		}

		got := menuItem("Vegetarisch", group)
		assert.Equal(t,
			"<i>Vegetarisch</i> — 2.10€\n"+
				"🥗 <b>Kürbis-Chia-Taler</b> mit Texicanasauce",
			got)
	})

	t.Run("ItemWithMit", func(t *testing.T) {
		group := &openmensa.MealGroup{
			Names: []string{"Pfannkuchen mit Quark-Rosinen-Füllung und Waldfruchtsauce"},
			Price: price(1.5),
		}

		got := menuItem("Tellergericht", group)
		assert.Equal(t,
			"<i>Tellergericht</i> — 1.50€\n"+
				"🍲 <b>Pfannkuchen</b> mit Quark-Rosinen-Füllung und Waldfruchtsauce",
			got)
	})

	t.Run("MultipleItemsWithBars", func(t *testing.T) {
		group := &openmensa.MealGroup{
			Names: []string{
				"Gnocchi al forno | Brokkoli, Kochschinken, Käse | Béchamel",
				"Maccheroni Classica | Blattspinat, ital. Hartkäse | Béchamel",
				"Farfalloni Rosati | Hähnchen, getrocknete Tomaten | Pesto | Tomatensauce",
			},
			Price: price(3.5),
		}

		got := menuItem("Pasta", group)
		assert.Equal(t,
			"<i>Pasta</i> — 3.50€\n"+
				"🍝 <b>Gnocchi al forno</b> mit Brokkoli, Kochschinken, Käse & Béchamel\n"+
				"🍝 <b>Maccheroni Classica</b> mit Blattspinat, ital. Hartkäse & Béchamel\n"+
				"🍝 <b>Farfalloni Rosati</b> mit Hähnchen, getrocknete Tomaten, Pesto & Tomatensauce",
			got)
	})

	t.Run("MixedMitAndBars", func(t *testing.T) {
		group := &openmensa.MealGroup{
			Names: []string{"Hähnchennuggets 9 Stück mit 2 Dips A,A1 | Pommes | Getränk 0,25 L"},
			Price: price(3.5),
		}

		got := menuItem("Fingerfood", group)
		assert.Equal(t,
			"<i>Fingerfood</i> — 3.50€\n"+
				"<b>Hähnchennuggets 9 Stück</b> mit 2 Dips A,A1, Pommes & Getränk 0,25 L",
			got)
	})

	t.Run("UnpricedCategoryHasNoSuffix", func(t *testing.T) {
		group := &openmensa.MealGroup{Names: []string{"Gnocchi"}}

		got := menuItem("Pasta", group)
		assert.Equal(t, "<i>Pasta</i>\n🍝 <b>Gnocchi</b>", got)
	})
}

func TestMenu(t *testing.T) {
	today := civil.Date{Year: 2026, Month: time.August, Day: 19}
	menu := openmensa.Menu{
		"Pasta": &openmensa.MealGroup{
			Names: []string{"Gnocchi | Käse"},
			Price: price(3.5),
		},
		"Tellergericht": &openmensa.MealGroup{
			Names: []string{"Currywurst mit Pommes"},
			Price: price(2.6),
		},
		"Hauptbeilagen": &openmensa.MealGroup{Names: []string{"Pommes oder Reis"}},
		"Nebenbeilage":  &openmensa.MealGroup{Names: []string{"Erbsen oder Salat"}},
	}

	got := Menu(menu, today, today)
	assert.Equal(t,
		"<b>Heute, Mittwoch, der 19.08.2026</b>\n\n"+
			"<i>Tellergericht</i> — 2.60€\n"+
			"🍲 <b>Currywurst</b> mit Pommes\n\n"+
			"<i>Pasta</i> — 3.50€\n"+
			"🍝 <b>Gnocchi</b> mit Käse\n\n"+
			"<i>Beilagen</i>\n"+
			"Pommes oder Reis\n"+
			"Erbsen oder Salat",
		got)
}

func TestMenuWithoutSideDishes(t *testing.T) {
	today := civil.Date{Year: 2026, Month: time.August, Day: 19}
	menu := openmensa.Menu{
		"Pasta": &openmensa.MealGroup{Names: []string{"Gnocchi"}},
	}

	got := Menu(menu, today, today)
	assert.NotContains(t, got, "Beilagen")
}

func TestHumanizedDate(t *testing.T) {
	today := civil.Date{Year: 2026, Month: time.August, Day: 19}

	tests := []struct {
		name string
		day  civil.Date
		want string
	}{
		{"Today", today, "Heute, Mittwoch, der 19.08.2026"},
		{"Tomorrow", today.AddDays(1), "Morgen, Donnerstag, der 20.08.2026"},
		{"DayAfterTomorrow", today.AddDays(2), "Übermorgen, Freitag, der 21.08.2026"},
		{"Yesterday", today.AddDays(-1), "Gestern, Dienstag, der 18.08.2026"},
		{"NoPrefix", today.AddDays(5), "Montag, der 24.08.2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanizedDate(tt.day, today))
		})
	}
}

func TestFixedTexts(t *testing.T) {
	assert.Contains(t, Help(), "/mensa")
	assert.Contains(t, DateFormatError(), "Datumsformat")
	assert.NotEmpty(t, NoMenuError())
	assert.NotEmpty(t, ClosedError())
}

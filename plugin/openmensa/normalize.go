package openmensa

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// closedMarker appears in every meal name when the upstream publishes a
// closed day, which is how holidays on an otherwise valid weekday arrive.
const closedMarker = "geschlossen"

var (
	spaceRunPattern   = regexp.MustCompile(` +`)
	spaceCommaPattern = regexp.MustCompile(`\s+,`)
)

// normalizeMenu folds raw meal records into a Menu keyed by category.
//
// The second return value reports a closed day: every record's name carries
// the closed marker. A day with no records at all counts as closed too, the
// upstream sends both shapes. A record without a category label makes the
// whole payload malformed; that error is propagated, never swallowed.
func normalizeMenu(meals []Meal) (Menu, bool, error) {
	closed := true
	for _, meal := range meals {
		if !strings.Contains(meal.Name, closedMarker) {
			closed = false
			break
		}
	}
	if closed {
		return nil, true, nil
	}

	menu := make(Menu)
	for i, meal := range meals {
		if meal.Category == "" {
			return nil, false, errors.Wrapf(ErrMalformedPayload, "meal %d has no category", i)
		}

		group, ok := menu[meal.Category]
		if !ok {
			// The upstream prices per category, not per record; the
			// category's first record settles the price.
			group = &MealGroup{Price: meal.Prices.Students}
			menu[meal.Category] = group
		}
		group.Names = append(group.Names, cleanName(meal.Name))
		group.Notes = append(group.Notes, meal.Notes)
	}
	return menu, false, nil
}

// cleanName collapses runs of spaces and drops whitespace in front of commas.
func cleanName(name string) string {
	name = spaceRunPattern.ReplaceAllString(name, " ")
	return spaceCommaPattern.ReplaceAllString(name, ",")
}

package jokes

import "unicode/utf8"

// MinExtent is the smallest extent any joke is given.
const MinExtent = 120

// EstimateExtent approximates how much room a joke needs in a list, in
// characters, without laying it out. Short jokes still get MinExtent so a row
// has room for its controls.
func EstimateExtent(text string) int {
	return max(MinExtent, utf8.RuneCountInString(text))
}

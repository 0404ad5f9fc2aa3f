package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

// Name brings a player name to its canonical lookup form: trimmed and case
// folded, so "Вася" and "вася" resolve to the same player.
func Name(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

package boliga

import (
	"path/filepath"
	"strings"
)

// OutputFileName derives the CSV name for a streets file:
// "data/Sundby Nord.txt" becomes "sundby_nord.csv".
func OutputFileName(streetsPath string) string {
	base := filepath.Base(streetsPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(strings.ToLower(stem), " ", "_") + ".csv"
}

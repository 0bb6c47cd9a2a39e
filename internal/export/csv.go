package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rcosta/nutrivision/internal/store"
)

func ToCSV(records []store.AnalysisRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Day", "Time", "Meal", "Food", "Weight (g)", "Calories", "Carbs (g)", "Protein (g)", "Fat (g)", "Confidence", "Ingredients"}); err != nil {
		return err
	}

	for _, r := range records {
		t := r.Time()
		row := []string{
			r.ID,
			t.Format("2006-01-02"),
			t.Format("15:04"),
			string(store.NormalizeMealType(r.MealType)),
			r.FoodName,
			formatAmount(r.WeightGrams),
			formatAmount(r.Calories),
			formatAmount(r.Carbs),
			formatAmount(r.Protein),
			formatAmount(r.Fat),
			formatAmount(r.Confidence),
			strings.Join(r.Ingredients, "; "),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// DefaultPath returns a dated export filename in the home directory.
func DefaultPath(ext string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("nutrivision-export-%s.%s", time.Now().Format("2006-01-02"), ext)
	return filepath.Join(home, name), nil
}

package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rcosta/nutrivision/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Records    []jsonEntry `json:"records"`
}

type jsonEntry struct {
	ID          string   `json:"id"`
	Day         string   `json:"day"`
	Time        string   `json:"time"`
	Meal        string   `json:"meal"`
	Food        string   `json:"food"`
	WeightGrams float64  `json:"weight_grams"`
	Calories    float64  `json:"calories"`
	Carbs       float64  `json:"carbs"`
	Protein     float64  `json:"protein"`
	Fat         float64  `json:"fat"`
	Confidence  float64  `json:"confidence"`
	HealthScore float64  `json:"health_score,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Insights    []string `json:"insights,omitempty"`
}

func ToJSON(records []store.AnalysisRecord, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(records),
	}

	for _, r := range records {
		t := r.Time()
		export.Records = append(export.Records, jsonEntry{
			ID:          r.ID,
			Day:         t.Format("2006-01-02"),
			Time:        t.Format("15:04"),
			Meal:        string(store.NormalizeMealType(r.MealType)),
			Food:        r.FoodName,
			WeightGrams: r.WeightGrams,
			Calories:    r.Calories,
			Carbs:       r.Carbs,
			Protein:     r.Protein,
			Fat:         r.Fat,
			Confidence:  r.Confidence,
			HealthScore: r.HealthScore,
			Ingredients: r.Ingredients,
			Insights:    r.Insights,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

package dashboard

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestJSONSchemaValidatorRejectsStringCount(t *testing.T) {
	body := `{"inward_funnel": [{"stage": "Sourced", "count": "ten", "value_mm": 1, "stage_order": 1}]}`
	_, err := DecodeDatasetPatch(strings.NewReader(body), NewJSONSchemaValidator())
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected malformed record, got %v", err)
	}
	var bad *MalformedRecordError
	if !errors.As(err, &bad) || !strings.Contains(bad.Field, "count") {
		t.Fatalf("expected violation to point at count, got %v", err)
	}
}

func TestJSONSchemaValidatorRejectsMissingField(t *testing.T) {
	body := `{"investment_performance": [{"investment_id": 1, "company_name": "Acme"}]}`
	if _, err := DecodeDatasetPatch(strings.NewReader(body), nil); !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected malformed record, got %v", err)
	}
}

func TestJSONSchemaValidatorRejectsUnknownSection(t *testing.T) {
	if _, err := DecodeDatasetPatch(strings.NewReader(`{"forecast": []}`), nil); err == nil {
		t.Fatalf("expected unknown section to be rejected")
	}
}

func TestDecodeDatasetPatchKeepsAbsentSectionsNil(t *testing.T) {
	patch, err := DecodeDatasetPatch(strings.NewReader(`{"sectors": [{"name": "Mobile", "count": 3, "value_mm": 12.5}]}`), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patch.Sectors == nil || len(*patch.Sectors) != 1 {
		t.Fatalf("expected sectors section, got %+v", patch)
	}
	if got := patch.Sections(); len(got) != 1 || got[0] != "sectors" {
		t.Fatalf("unexpected sections %v", got)
	}
}

func TestDecodeDatasetPatchInvalidJSON(t *testing.T) {
	if _, err := DecodeDatasetPatch(strings.NewReader(`{`), nil); !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected malformed record, got %v", err)
	}
}

func TestJSONSchemaValidatorCachesCompiledSchemas(t *testing.T) {
	validator := NewJSONSchemaValidator()
	for i := 0; i < 2; i++ {
		if err := validator.Validate(map[string]any{}, SchemaPatch); err != nil {
			t.Fatalf("unexpected error validating patch: %v", err)
		}
	}
	if len(validator.compiled) != 1 {
		t.Fatalf("expected schema cache to contain 1 entry, got %d", len(validator.compiled))
	}
	if err := validator.Validate(map[string]any{}, SchemaFull); err == nil {
		t.Fatalf("expected full schema to require every section")
	}
	if len(validator.compiled) != 2 {
		t.Fatalf("expected schema cache to contain 2 entries, got %d", len(validator.compiled))
	}
}

func TestValidateDataset(t *testing.T) {
	if err := ValidateDataset(DefaultDataset()); err != nil {
		t.Fatalf("default dataset should be valid: %v", err)
	}

	cases := map[string]func(*Dataset){
		"order not increasing": func(d *Dataset) { d.InwardFunnel[2].Order = 1 },
		"negative value":       func(d *Dataset) { d.OutwardFunnel[0].ValueMM = -1 },
		"nan stat":             func(d *Dataset) { d.SummaryStats[StatActiveInvestments] = math.NaN() },
		"bad period":           func(d *Dataset) { d.CapitalTimeline[0].Period = "Jan 2023" },
		"duplicate id":         func(d *Dataset) { d.InvestmentPerformance[1].ID = 1 },
		"infinite growth":      func(d *Dataset) { d.InvestmentPerformance[0].RevenueGrowth = math.Inf(1) },
	}
	for name, mutate := range cases {
		data := DefaultDataset()
		mutate(&data)
		if err := ValidateDataset(data); !errors.Is(err, ErrMalformedRecord) {
			t.Fatalf("%s: expected malformed record, got %v", name, err)
		}
	}
}

func TestValidateDatasetAllowsEmptyFunnels(t *testing.T) {
	data := DefaultDataset()
	data.InwardFunnel = nil
	if err := ValidateDataset(data); err != nil {
		t.Fatalf("empty funnels are reported by the renderer, got %v", err)
	}
}

func TestDecodeDatasetPatchAcceptsIntegralFloatCount(t *testing.T) {
	body := `{"inward_funnel": [{"stage": "Sourced", "count": 4.0, "value_mm": 1, "stage_order": 1.0}]}`
	patch, err := DecodeDatasetPatch(strings.NewReader(body), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stages := *patch.InwardFunnel
	if len(stages) != 1 || stages[0].Count != 4 || stages[0].Order != 1 {
		t.Fatalf("unexpected stages %+v", stages)
	}
}

func TestBindDocumentReportsFailingField(t *testing.T) {
	doc := map[string]any{
		"inward_funnel": []any{map[string]any{"stage": "Sourced", "count": "ten"}},
	}
	var patch DatasetPatch
	err := bindDocument(doc, &patch)
	var bad *MalformedRecordError
	if !errors.As(err, &bad) {
		t.Fatalf("expected malformed record, got %v", err)
	}
	if !strings.Contains(bad.Field, "count") {
		t.Fatalf("expected field to point at count, got %q (%v)", bad.Field, err)
	}
}

package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaMode selects which dataset schema a document is checked against.
type SchemaMode string

const (
	// SchemaFull requires every dataset section.
	SchemaFull SchemaMode = "full"
	// SchemaPatch accepts any subset of sections.
	SchemaPatch SchemaMode = "patch"
)

const timelinePeriodLayout = "2006-01"

// JSONSchemaValidator checks decoded dataset documents before they are bound
// to Go types, so missing or non-numeric fields are reported instead of being
// coerced to zero.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[SchemaMode]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[SchemaMode]*jsonschema.Schema),
	}
}

// Validate checks a JSON-compatible document (as produced by json.Unmarshal).
func (v *JSONSchemaValidator) Validate(doc any, mode SchemaMode) error {
	schema, err := v.schemaFor(mode)
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return schemaViolation(err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(mode SchemaMode) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[mode]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(datasetSchema(mode == SchemaFull))
	if err != nil {
		return nil, fmt.Errorf("dashboard: marshal dataset schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	name := "dataset." + string(mode) + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dashboard: load dataset schema: %w", err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile dataset schema: %w", err)
	}
	v.mu.Lock()
	v.compiled[mode] = compiled
	v.mu.Unlock()
	return compiled, nil
}

func schemaViolation(err error) error {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return &MalformedRecordError{Index: -1, Err: err}
	}
	leaf := verr
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	return &MalformedRecordError{
		Index:  -1,
		Field:  leaf.InstanceLocation,
		Reason: leaf.Message,
	}
}

func datasetSchema(requireAll bool) map[string]any {
	number := map[string]any{"type": "number"}
	nonNegative := map[string]any{"type": "number", "minimum": 0}
	count := map[string]any{"type": "integer", "minimum": 0}
	object := func(required []string, props map[string]any) map[string]any {
		return map[string]any{
			"type":       "object",
			"required":   required,
			"properties": props,
		}
	}
	stages := map[string]any{
		"type": "array",
		"items": object(
			[]string{"stage", "count", "value_mm", "stage_order"},
			map[string]any{
				"stage":       map[string]any{"type": "string"},
				"count":       count,
				"value_mm":    nonNegative,
				"stage_order": map[string]any{"type": "integer"},
			},
		),
	}
	properties := map[string]any{
		"inward_funnel":  stages,
		"outward_funnel": stages,
		"summary_stats": map[string]any{
			"type":                 "object",
			"additionalProperties": number,
		},
		"sectors": map[string]any{
			"type": "array",
			"items": object(
				[]string{"name", "count", "value_mm"},
				map[string]any{
					"name":     map[string]any{"type": "string"},
					"count":    count,
					"value_mm": nonNegative,
				},
			),
		},
		"capital_timeline": map[string]any{
			"type": "array",
			"items": object(
				[]string{"period", "deployed", "committed", "available"},
				map[string]any{
					"period":    map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}$`},
					"deployed":  number,
					"committed": number,
					"available": number,
				},
			),
		},
		"investment_performance": map[string]any{
			"type": "array",
			"items": object(
				[]string{"investment_id", "company_name", "initial_investment", "revenue_growth", "ebitda_growth", "multiple_expansion"},
				map[string]any{
					"investment_id":      map[string]any{"type": "integer"},
					"company_name":       map[string]any{"type": "string"},
					"initial_investment": nonNegative,
					"revenue_growth":     number,
					"ebitda_growth":      number,
					"multiple_expansion": nonNegative,
				},
			),
		},
	}
	schema := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if requireAll {
		schema["required"] = []string{
			"inward_funnel", "outward_funnel", "summary_stats",
			"sectors", "capital_timeline", "investment_performance",
		}
	}
	return schema
}

// DecodeDatasetPatch reads a JSON patch, validates it against the patch
// schema and binds it.
func DecodeDatasetPatch(r io.Reader, validator *JSONSchemaValidator) (DatasetPatch, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return DatasetPatch{}, fmt.Errorf("dashboard: read patch: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return DatasetPatch{}, &MalformedRecordError{Index: -1, Reason: "invalid JSON", Err: err}
	}
	if validator == nil {
		validator = NewJSONSchemaValidator()
	}
	if err := validator.Validate(doc, SchemaPatch); err != nil {
		return DatasetPatch{}, err
	}
	var patch DatasetPatch
	if err := bindDocument(doc, &patch); err != nil {
		return DatasetPatch{}, err
	}
	return patch, nil
}

// bindDocument binds a schema-checked document onto v. The document is
// re-encoded first so integral floats such as 4.0 bind to int fields.
func bindDocument(doc any, v any) error {
	normalized, err := json.Marshal(doc)
	if err != nil {
		return &MalformedRecordError{Index: -1, Reason: "normalize document", Err: err}
	}
	if err := json.Unmarshal(normalized, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &MalformedRecordError{
				Index:  -1,
				Field:  typeErr.Field,
				Reason: fmt.Sprintf("cannot use %s as %s", typeErr.Value, typeErr.Type),
				Err:    err,
			}
		}
		return &MalformedRecordError{Index: -1, Err: err}
	}
	return nil
}

// ValidateDataset enforces invariants the schema cannot express: finite
// values, strictly increasing stage order, unique investment ids and
// parseable periods. Empty funnels are reported by the funnel renderer.
func ValidateDataset(data Dataset) error {
	for _, kind := range FunnelKinds {
		if err := validateStages(string(kind)+"_funnel", data.Funnel(kind)); err != nil {
			return err
		}
	}
	for key, value := range data.SummaryStats {
		if !isFinite(value) {
			return malformed("summary_stats", -1, key, "value must be finite")
		}
	}
	for i, sector := range data.Sectors {
		if sector.Count < 0 {
			return malformed("sectors", i, "count", "must be non-negative")
		}
		if !isFinite(sector.ValueMM) || sector.ValueMM < 0 {
			return malformed("sectors", i, "value_mm", "must be a non-negative number")
		}
	}
	for i, point := range data.CapitalTimeline {
		if _, err := time.Parse(timelinePeriodLayout, point.Period); err != nil {
			return &MalformedRecordError{Section: "capital_timeline", Index: i, Field: "period", Reason: "expected YYYY-MM", Err: err}
		}
		if !allFinite(point.Deployed, point.Committed, point.Available) {
			return malformed("capital_timeline", i, "", "values must be finite")
		}
	}
	seen := make(map[int]struct{}, len(data.InvestmentPerformance))
	for i, record := range data.InvestmentPerformance {
		if _, dup := seen[record.ID]; dup {
			return malformed("investment_performance", i, "investment_id", fmt.Sprintf("duplicate id %d", record.ID))
		}
		seen[record.ID] = struct{}{}
		if !allFinite(record.InitialInvestment, record.RevenueGrowth, record.EBITDAGrowth, record.MultipleExpansion) {
			return malformed("investment_performance", i, "", "values must be finite")
		}
		if record.InitialInvestment < 0 {
			return malformed("investment_performance", i, "initial_investment", "must be non-negative")
		}
		if record.MultipleExpansion < 0 {
			return malformed("investment_performance", i, "multiple_expansion", "must be non-negative")
		}
	}
	return nil
}

func validateStages(section string, stages []FunnelStage) error {
	prev := math.MinInt
	for i, stage := range stages {
		if stage.Count < 0 {
			return malformed(section, i, "count", "must be non-negative")
		}
		if !isFinite(stage.ValueMM) || stage.ValueMM < 0 {
			return malformed(section, i, "value_mm", "must be a non-negative number")
		}
		if i > 0 && stage.Order <= prev {
			return malformed(section, i, "stage_order", "must be strictly increasing")
		}
		prev = stage.Order
	}
	return nil
}

func allFinite(values ...float64) bool {
	for _, v := range values {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ReadDataset loads a full dataset from a YAML or JSON file.
func ReadDataset(path string, validator *JSONSchemaValidator) (Dataset, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return Dataset{}, fmt.Errorf("dashboard: open dataset %s: %w", path, err)
	}
	defer f.Close()
	data, err := DecodeDataset(f, validator)
	if err != nil {
		return Dataset{}, fmt.Errorf("dashboard: decode dataset %s: %w", path, err)
	}
	return data, nil
}

// DecodeDataset reads a full dataset document. YAML is a superset of JSON so
// both formats are accepted.
func DecodeDataset(r io.Reader, validator *JSONSchemaValidator) (Dataset, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return Dataset{}, fmt.Errorf("dashboard: dataset is empty")
		}
		return Dataset{}, &MalformedRecordError{Index: -1, Reason: "parse dataset", Err: err}
	}
	// round-trip through JSON so the schema sees float64/string/map[string]any
	raw, err := json.Marshal(doc)
	if err != nil {
		return Dataset{}, &MalformedRecordError{Index: -1, Reason: "normalize dataset", Err: err}
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return Dataset{}, &MalformedRecordError{Index: -1, Reason: "normalize dataset", Err: err}
	}
	if validator == nil {
		validator = NewJSONSchemaValidator()
	}
	if err := validator.Validate(normalized, SchemaFull); err != nil {
		return Dataset{}, err
	}
	var data Dataset
	if err := bindDocument(normalized, &data); err != nil {
		return Dataset{}, err
	}
	if err := ValidateDataset(data); err != nil {
		return Dataset{}, err
	}
	return data, nil
}

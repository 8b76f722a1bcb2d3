package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/roach88/wherec/internal/entity"
	"github.com/roach88/wherec/internal/where"
)

// Error codes for CLI responses. Compile failures report the where
// package's own codes instead.
const (
	ErrCodeGeneric        = "E001" // Generic/unknown error
	ErrCodeParse          = "E002" // Filter expression does not parse
	ErrCodeInvalidRecords = "E003" // Records file is not a JSON array of objects
	ErrCodeInvalidEntity  = "E004" // Entity file failed to load or validate
	ErrCodeNotFound       = "E005" // Path not found
	ErrCodeStore          = "E006" // In-memory database failure
	ErrCodeMismatch       = "E007" // SQL and predicate selected different records
)

// LoadError is a failure to read one of the command's input files.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// errorCode picks the response code for err.
func errorCode(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	var we *where.Error
	if errors.As(err, &we) {
		return string(we.Code)
	}
	return ErrCodeGeneric
}

// loadEntity reads the entity definition at path.
func loadEntity(path string) (*entity.Definition, error) {
	if path == "" {
		return nil, &LoadError{Code: ErrCodeInvalidEntity, Message: "no entity file given (use --entity or the entity config key)"}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("entity file not found: %s", path)}
	}
	def, err := entity.Load(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidEntity, Message: "invalid entity file", Err: err}
	}
	return def, nil
}

// loadRecords reads a JSON array of objects. Numbers decode as float64.
func loadRecords(path string) ([]map[string]any, error) {
	if path == "" {
		return nil, &LoadError{Code: ErrCodeInvalidRecords, Message: "no records file given (use --records)"}
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("records file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidRecords, Message: "read records", Err: err}
	}
	if !gjson.ValidBytes(data) {
		return nil, &LoadError{Code: ErrCodeInvalidRecords, Message: fmt.Sprintf("%s is not valid JSON", path)}
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, &LoadError{Code: ErrCodeInvalidRecords, Message: fmt.Sprintf("%s must hold a JSON array of objects", path)}
	}

	var records []map[string]any
	var bad error
	doc.ForEach(func(key, value gjson.Result) bool {
		obj, ok := value.Value().(map[string]any)
		if !value.IsObject() || !ok {
			bad = &LoadError{Code: ErrCodeInvalidRecords, Message: fmt.Sprintf("%s: element %d is not an object", path, len(records))}
			return false
		}
		records = append(records, obj)
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return records, nil
}

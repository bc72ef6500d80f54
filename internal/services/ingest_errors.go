package services

import (
	"errors"
	"fmt"
)

// ErrUnsupportedMediaType is returned when the submitted file is not
// recognizable as an XML feed by name. Nothing is parsed or applied.
var ErrUnsupportedMediaType = errors.New("feed file must have an .xml extension")

// MalformedFeedError reports a structural decode failure of the feed payload.
// No operation group was processed and no registry call was issued.
type MalformedFeedError struct {
	Err error
}

func (e *MalformedFeedError) Error() string {
	return fmt.Sprintf("malformed feed: %v", e.Err)
}

func (e *MalformedFeedError) Unwrap() error {
	return e.Err
}

// IngestionError reports a failure after processing began. Registry mutations
// issued before the fault remain applied; the caller must resubmit the full
// feed, relying on the registry primitives being idempotent.
type IngestionError struct {
	Err error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("feed ingestion failed: %v", e.Err)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}

// FieldCoercionError identifies exactly which field of which record could not
// be converted to its expected numeric type.
type FieldCoercionError struct {
	Record string // record kind, e.g. "property"
	Field  string // wire attribute name
	Value  string // offending raw value
	Err    error
}

func (e *FieldCoercionError) Error() string {
	return fmt.Sprintf("%s record: field %s: cannot coerce %q: %v", e.Record, e.Field, e.Value, e.Err)
}

func (e *FieldCoercionError) Unwrap() error {
	return e.Err
}

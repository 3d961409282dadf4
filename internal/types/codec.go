package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"tripplanner/internal/util/jsonutil"
)

// DecodeTravelPlan strictly decodes and structurally validates a plan.
func DecodeTravelPlan(raw []byte) (TravelPlan, error) {
	var p TravelPlan
	if err := decodeStrict(raw, &p); err != nil {
		return TravelPlan{}, fmt.Errorf("types: decode travel plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return TravelPlan{}, err
	}
	return p, nil
}

// DecodeVacationRequest strictly decodes and validates a request.
func DecodeVacationRequest(raw []byte) (VacationRequest, error) {
	var r VacationRequest
	if err := decodeStrict(raw, &r); err != nil {
		return VacationRequest{}, fmt.Errorf("types: decode vacation request: %w", err)
	}
	if err := r.Validate(); err != nil {
		return VacationRequest{}, err
	}
	return r, nil
}

// EncodeJSON is the canonical text form used across the loop/tool boundary.
func EncodeJSON(v any) ([]byte, error) {
	return jsonutil.MarshalNoEscape(v)
}

// EncodeJSONIndent is EncodeJSON with two-space indentation, for files and prompts.
func EncodeJSONIndent(v any) ([]byte, error) {
	return jsonutil.MarshalNoEscapeIndent(v, "", "  ")
}

func decodeStrict(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after JSON value")
	}
	return nil
}

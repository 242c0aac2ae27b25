package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sandeepkv93/medtui/internal/model"
)

var ErrDecode = errors.New("transport: cannot decode medication record")

// The remote API is backed by DynamoDB and, depending on which Lambda
// produced the response, returns either plain JSON objects or items still in
// DynamoDB attribute-value form ({"S": "..."}, {"N": "..."}, {"BOOL": true},
// {"L": [...]}, {"M": {...}}). DecodeMedication detects the encoding per
// field and produces one canonical Medication.
func DecodeMedication(raw json.RawMessage) (model.Medication, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return model.Medication{}, err
	}

	med := model.Medication{
		ID:         stringField(fields, "medication_id", "id"),
		Name:       stringField(fields, "medication_name", "name"),
		Dosage:     stringField(fields, "dosage"),
		Times:      stringListField(fields, "times"),
		Days:       stringListField(fields, "days_of_week", "days"),
		Timezone:   stringField(fields, "timezone"),
		IsActive:   boolField(fields, "is_active"),
		Provenance: model.ProvenanceRemote,
	}
	if med.ID == "" {
		return model.Medication{}, fmt.Errorf("%w: missing medication id", ErrDecode)
	}
	if med.Name == "" {
		return model.Medication{}, fmt.Errorf("%w: missing medication name", ErrDecode)
	}
	if ts := stringField(fields, "last_taken"); ts != "" {
		if parsed, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
			med.LastTaken = &parsed
		}
	}
	if ts := stringField(fields, "created_at"); ts != "" {
		if parsed, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
			med.CreatedAt = parsed
		}
	}
	return med, nil
}

func decodeObject(raw json.RawMessage) (map[string]any, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	out := make(map[string]any, len(members))
	for key, value := range members {
		decoded, err := decodeValue(value)
		if err != nil {
			return nil, err
		}
		out[key] = decoded
	}
	return out, nil
}

// decodeValue unwraps one attribute-value wrapper if value is shaped like
// one, otherwise decodes the plain JSON value.
func decodeValue(raw json.RawMessage) (any, error) {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err == nil && len(wrapper) == 1 {
		for tag, inner := range wrapper {
			switch tag {
			case "S":
				var s string
				if err := json.Unmarshal(inner, &s); err != nil {
					return nil, fmt.Errorf("%w: S value: %v", ErrDecode, err)
				}
				return s, nil
			case "N":
				var s string
				if err := json.Unmarshal(inner, &s); err != nil {
					return nil, fmt.Errorf("%w: N value: %v", ErrDecode, err)
				}
				n, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: N value %q", ErrDecode, s)
				}
				return n, nil
			case "BOOL":
				var b bool
				if err := json.Unmarshal(inner, &b); err != nil {
					return nil, fmt.Errorf("%w: BOOL value: %v", ErrDecode, err)
				}
				return b, nil
			case "NULL":
				return nil, nil
			case "L":
				var items []json.RawMessage
				if err := json.Unmarshal(inner, &items); err != nil {
					return nil, fmt.Errorf("%w: L value: %v", ErrDecode, err)
				}
				out := make([]any, 0, len(items))
				for _, item := range items {
					decoded, err := decodeValue(item)
					if err != nil {
						return nil, err
					}
					out = append(out, decoded)
				}
				return out, nil
			case "M":
				return decodeObject(inner)
			}
		}
	}

	var plain any
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return plain, nil
}

func stringField(fields map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := fields[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func boolField(fields map[string]any, keys ...string) bool {
	for _, key := range keys {
		if v, ok := fields[key].(bool); ok {
			return v
		}
	}
	return false
}

func stringListField(fields map[string]any, keys ...string) []string {
	for _, key := range keys {
		items, ok := fields[key].([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

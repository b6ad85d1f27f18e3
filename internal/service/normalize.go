package service

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	dom "productivity/internal/domain"
)

// NormalizeCreate turns a raw create body into a store-ready record.
// Unknown keys are dropped, required fields must be present and non-blank,
// absent optional fields get the resource default. Explicit zero values
// supplied by the caller are kept.
func NormalizeCreate(res dom.Resource, owner, id string, body map[string]any, now time.Time) (dom.Record, error) {
	rec := make(dom.Record, len(res.Fields)+4)
	var missing []string
	for _, f := range res.Fields {
		raw, present := body[f.Name]
		if f.Required && isBlank(raw) {
			missing = append(missing, f.Name)
			continue
		}
		if !present {
			rec[f.Name] = f.Default
			continue
		}
		v, err := coerce(f, raw)
		if err != nil {
			return nil, err
		}
		rec[f.Name] = v
	}
	if len(missing) > 0 {
		return nil, missingFields(missing)
	}
	rec[dom.ColID] = id
	rec[dom.ColOwner] = owner
	rec[dom.ColCreatedAt] = now
	rec[dom.ColUpdatedAt] = now
	return rec, nil
}

// NormalizeUpdate turns a raw update body into a partial patch. The
// write-once keys are always stripped; only supplied fields change.
func NormalizeUpdate(res dom.Resource, body map[string]any, now time.Time) (dom.Record, error) {
	patch := make(dom.Record, len(body)+1)
	for key, raw := range body {
		switch key {
		case dom.ColID, dom.ColOwner, dom.ColCreatedAt, dom.ColUpdatedAt:
			continue
		}
		f, ok := res.Field(key)
		if !ok {
			continue
		}
		if f.Required && isBlank(raw) {
			return nil, invalidField(f.Name, "Campo obrigatório não pode ser vazio")
		}
		v, err := coerce(f, raw)
		if err != nil {
			return nil, err
		}
		patch[f.Name] = v
	}
	patch[dom.ColUpdatedAt] = now
	return patch, nil
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// coerce checks raw against the field kind and converts it to the value
// handed to the store. JSON numbers may arrive as json.Number or float64.
func coerce(f dom.Field, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch f.Kind {
	case dom.KindText:
		if s, ok := raw.(string); ok {
			return s, nil
		}
		return nil, invalidField(f.Name, "Valor deve ser texto")
	case dom.KindInt:
		if n, ok := toInt(raw); ok {
			return n, nil
		}
		return nil, invalidField(f.Name, "Valor deve ser um número inteiro")
	case dom.KindFloat:
		if n, ok := toFloat(raw); ok {
			return n, nil
		}
		return nil, invalidField(f.Name, "Valor deve ser numérico")
	case dom.KindBool:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
		return nil, invalidField(f.Name, "Valor deve ser booleano")
	case dom.KindDate:
		s, ok := raw.(string)
		if !ok {
			return nil, invalidField(f.Name, "Data inválida")
		}
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		t, ok := parseDate(s)
		if !ok {
			return nil, invalidField(f.Name, "Data inválida, use YYYY-MM-DD ou RFC3339")
		}
		return t, nil
	case dom.KindTime:
		s, ok := raw.(string)
		if !ok {
			return nil, invalidField(f.Name, "Data/hora inválida")
		}
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
		if err != nil {
			return nil, invalidField(f.Name, "Data/hora inválida, use RFC3339")
		}
		return t.UTC(), nil
	}
	return raw, nil
}

// parseDate accepts a date-only value or an RFC3339 datetime and keeps
// only the calendar day, in UTC.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func toInt(raw any) (int64, bool) {
	switch n := raw.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case float64:
		return floatToInt(n)
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

// floatToInt accepts whole numbers inside the int64 range. 2^63 itself is
// representable as a float64 but not as an int64.
func floatToInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// internal/game/fields.go
package game

import (
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cattledrive/internal/models"
)

// fields reads typed values out of an action payload. Payloads usually come from
// JSON, so numbers arrive as float64; ints and numeric strings are accepted too.
type fields map[string]interface{}

func (f fields) has(key string) bool {
	v, ok := f[key]
	return ok && v != nil
}

func (f fields) getInt(key string) (int, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return 0, invalid("missing field %s", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, invalid("field %s must be a whole number", key)
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, invalid("field %s must be a number", key)
		}
		return i, nil
	}
	return 0, invalid("invalid type for %s", key)
}

// optionalInt returns def when the key is absent.
func (f fields) optionalInt(key string, def int) (int, bool, error) {
	if !f.has(key) {
		return def, false, nil
	}
	n, err := f.getInt(key)
	return n, err == nil, err
}

func (f fields) getBool(key string) (bool, error) {
	if !f.has(key) {
		return false, nil
	}
	b, ok := f[key].(bool)
	if !ok {
		return false, invalid("invalid type for %s", key)
	}
	return b, nil
}

func (f fields) getString(key string) (string, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return "", invalid("missing field %s", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", invalid("field %s must be a non-empty string", key)
	}
	return s, nil
}

func (f fields) getUUID(key string) (uuid.UUID, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return uuid.Nil, invalid("missing field %s", key)
	}
	switch id := v.(type) {
	case uuid.UUID:
		return id, nil
	case string:
		parsed, err := uuid.Parse(id)
		if err != nil {
			return uuid.Nil, invalid("field %s is not a valid id", key)
		}
		return parsed, nil
	}
	return uuid.Nil, invalid("invalid type for %s", key)
}

// ValidationError is why an action was rejected. It never carries a partial change.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalid(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func failure(kind models.ActionKind, code, message string) models.ActionResult {
	return models.ActionResult{Success: false, Message: message, Kind: kind, Code: code}
}

// internal/services/cleaning.go
package services

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Defaults substituted when a spreadsheet cell cannot be read.
const (
	DefaultMissingNumber = -1
	DefaultFlavorCount   = 0
)

var missingDecimalMarkers = map[string]bool{
	"":    true,
	"-":   true,
	"N/A": true,
	"NA":  true,
	"n/a": true,
}

// CleanBoolean reads a spreadsheet flag. Only "yes" (any case, surrounding
// whitespace ignored) counts as true for text cells; other values fall back
// to their truthiness.
func CleanBoolean(value interface{}) bool {
	if value == nil {
		return false
	}
	if s, ok := value.(string); ok {
		return strings.EqualFold(strings.TrimSpace(s), "yes")
	}
	return truthy(value)
}

// CleanDecimal reads a numeric cell, returning def for absent, placeholder or
// unparsable values.
func CleanDecimal(value interface{}, def decimal.Decimal) decimal.Decimal {
	switch v := value.(type) {
	case nil:
		return def
	case decimal.Decimal:
		return v
	case json.Number:
		if d, err := decimal.NewFromString(v.String()); err == nil {
			return d
		}
		return def
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return decimal.NewFromFloat(v)
	case float32:
		return CleanDecimal(float64(v), def)
	case bool:
		if v {
			return decimal.NewFromInt(1)
		}
		return decimal.Zero
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return decimal.NewFromInt(cast.ToInt64(v))
	}

	s := strings.TrimSpace(cast.ToString(value))
	if missingDecimalMarkers[s] {
		return def
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return def
	}
	return d
}

// CleanInt reads an integer cell. Fractional numbers are truncated; text must
// hold a whole number.
func CleanInt(value interface{}, def int) int {
	switch v := value.(type) {
	case nil:
		return def
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return def
		}
		return n
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return def
		}
		return int(d.IntPart())
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return int(v)
	case decimal.Decimal:
		return int(v.IntPart())
	}

	n, err := cast.ToIntE(value)
	if err != nil {
		return def
	}
	return n
}

// cellText converts a cell to trimmed text, "" when absent.
func cellText(value interface{}) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(cast.ToString(value))
}

func truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return err != nil || !d.IsZero()
	case decimal.Decimal:
		return !v.IsZero()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

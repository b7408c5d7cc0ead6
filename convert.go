package formbind

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// Converter turns one raw form string into a typed value. Converters report
// the underlying parse failure as-is; the binder wraps it with the field
// name and offending raw value but never interprets or classifies it.
type Converter func(raw string) (any, error)

// Parse adapts any string-parsing function into a Converter, e.g.
// Parse(strconv.Atoi) or Parse(netip.ParseAddr).
func Parse[T any](fn func(string) (T, error)) Converter {
	return func(raw string) (any, error) {
		return fn(raw)
	}
}

// String is the identity conversion. It never fails and is equivalent to
// leaving Field.Convert nil; it exists for explicit schema declarations.
func String(raw string) (any, error) {
	return raw, nil
}

// Int converts to int.
func Int(raw string) (any, error) {
	n, err := strconv.ParseInt(raw, 10, strconv.IntSize)
	if err != nil {
		return nil, err
	}
	return int(n), nil
}

// Int64 converts to int64.
func Int64(raw string) (any, error) {
	return strconv.ParseInt(raw, 10, 64)
}

// Uint converts to uint.
func Uint(raw string) (any, error) {
	n, err := strconv.ParseUint(raw, 10, strconv.IntSize)
	if err != nil {
		return nil, err
	}
	return uint(n), nil
}

// Uint64 converts to uint64.
func Uint64(raw string) (any, error) {
	return strconv.ParseUint(raw, 10, 64)
}

// Float64 converts to float64.
func Float64(raw string) (any, error) {
	return strconv.ParseFloat(raw, 64)
}

// Bool converts to bool. Beyond strconv.ParseBool it accepts the common
// HTML form representations: "on", "yes" for true and "off", "no" and the
// empty string for false, so checkbox values bind without ceremony.
func Bool(raw string) (any, error) {
	b, err := strconv.ParseBool(raw)
	if err == nil {
		return b, nil
	}
	switch strings.ToLower(raw) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return nil, fmt.Errorf("invalid boolean %q", raw)
}

// Time returns a converter parsing time.Time with the given layout.
func Time(layout string) Converter {
	return func(raw string) (any, error) {
		return time.Parse(layout, raw)
	}
}

// UUID converts to uuid.UUID.
func UUID(raw string) (any, error) {
	return uuid.Parse(raw)
}

// Language converts to a BCP 47 language.Tag, for locale select fields.
func Language(raw string) (any, error) {
	return language.Parse(raw)
}

// Enum returns a converter that accepts only the allowed values and yields
// the raw string unchanged, for select and radio inputs with a fixed set
// of options.
func Enum(allowed ...string) Converter {
	return func(raw string) (any, error) {
		for _, a := range allowed {
			if raw == a {
				return raw, nil
			}
		}
		return nil, fmt.Errorf("%q is not one of %s", raw, strings.Join(allowed, ", "))
	}
}

// Sanitized wraps a converter so the raw value is sanitized before
// conversion: NUL bytes, CR/LF and non-printable control characters are
// stripped. A nil next yields the sanitized string itself.
func Sanitized(next Converter) Converter {
	return func(raw string) (any, error) {
		return convertValue(next, sanitizeString(raw))
	}
}

package sinistro

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Cl4ydson/sinistros-control/internal/logger"
)

// Direction of a translation pass.
type Direction int

const (
	// Write maps semantic field names to a variant's physical columns.
	Write Direction = iota
	// Read maps physical columns back to semantic field names.
	Read
)

// Engine translates payloads between the semantic vocabulary and a physical
// schema variant, coercing values to the target column kind. It performs no
// validation; enum enforcement happens above it (ValidarStatus).
type Engine struct {
	log *logger.Logger
}

func NewEngine(log *logger.Logger) *Engine {
	return &Engine{log: log}
}

const component = "Reconciliation"

// Translate maps every payload key through the variant's mapping table.
//
// Write direction: known semantic names become physical columns; keys that
// already equal a physical column pass through; anything else is dropped
// silently (forward compatibility over strictness). Values are coerced to
// the column kind.
//
// Read direction: physical columns become their canonical semantic names;
// unmapped columns pass through under the physical name, value untouched.
func (e *Engine) Translate(payload map[string]any, dir Direction, v Variant) map[string]any {
	m := ForVariant(v)
	out := make(map[string]any, len(payload))

	for campo, valor := range payload {
		if dir == Read {
			if sem, ok := m.Semantic(campo); ok {
				out[sem] = valor
			} else {
				out[campo] = valor
			}
			continue
		}

		if fisico, kind, ok := m.Physical(campo); ok {
			out[fisico] = e.coerce(campo, valor, kind)
			continue
		}
		if kind, ok := m.KindOf(campo); ok {
			out[campo] = e.coerce(campo, valor, kind)
			continue
		}
		e.log.Debug(component, "Dropping unmapped field %q", campo)
	}
	return out
}

// Decimal exposes the decimal coercion rules to callers outside a full
// translation pass, such as single-installment appends.
func (e *Engine) Decimal(campo string, valor any) float64 {
	return e.coerceDecimal(campo, valor)
}

var truthy = map[string]bool{
	"true": true, "1": true, "sim": true, "yes": true, "s": true, "y": true,
}

func (e *Engine) coerce(campo string, valor any, kind Kind) any {
	if valor == nil {
		return nil
	}
	switch kind {
	case KindDecimal:
		return e.coerceDecimal(campo, valor)
	case KindInt:
		return e.coerceInt(campo, valor)
	case KindBool:
		return coerceBool(valor)
	case KindDate:
		return e.coerceDate(campo, valor)
	default:
		if s, ok := valor.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", valor)
	}
}

// coerceDecimal accepts comma as decimal separator and falls back to 0 on
// unparseable input. The fallback is logged, never raised: a bad number in
// one field must not reject the rest of the payload.
func (e *Engine) coerceDecimal(campo string, valor any) float64 {
	switch v := valor.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			e.log.Warn(component, "Invalid numeric value for field %s: %v, defaulting to 0", campo, valor)
			return 0
		}
		return f
	case string:
		if v == "" {
			return 0
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
		if err != nil {
			e.log.Warn(component, "Invalid numeric value for field %s: %q, defaulting to 0", campo, v)
			return 0
		}
		return f
	default:
		e.log.Warn(component, "Invalid numeric value for field %s: %v, defaulting to 0", campo, valor)
		return 0
	}
}

func (e *Engine) coerceInt(campo string, valor any) int64 {
	switch v := valor.(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			e.log.Warn(component, "Invalid integer value for field %s: %v, defaulting to 0", campo, valor)
			return 0
		}
		return n
	case string:
		if v == "" {
			return 0
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			e.log.Warn(component, "Invalid integer value for field %s: %q, defaulting to 0", campo, v)
			return 0
		}
		return n
	default:
		e.log.Warn(component, "Invalid integer value for field %s: %v, defaulting to 0", campo, valor)
		return 0
	}
}

func coerceBool(valor any) bool {
	switch v := valor.(type) {
	case bool:
		return v
	case string:
		return truthy[strings.ToLower(v)]
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return false
	}
}

// coerceDate parses dd/mm/yyyy or yyyy-mm-dd strings. Unparseable dates
// coerce to nil with a warning rather than an error.
func (e *Engine) coerceDate(campo string, valor any) any {
	switch v := valor.(type) {
	case time.Time:
		return v
	case *time.Time:
		return v
	case string:
		if v == "" {
			return nil
		}
		if t, err := time.Parse("02/01/2006", v); err == nil {
			return t
		}
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t
		}
		e.log.Warn(component, "Invalid date value for field %s: %q, defaulting to null", campo, v)
		return nil
	default:
		e.log.Warn(component, "Invalid date value for field %s: %v, defaulting to null", campo, valor)
		return nil
	}
}

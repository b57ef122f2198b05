package entity

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ID identificador canónico de todas las entidades (BIGSERIAL en PostgreSQL).
// Los ids llegan como número o como texto según el transporte (path, query, JSON);
// se normalizan aquí una sola vez y el resto del código compara int64.
type ID = int64

// ParseID convierte un id recibido en cualquier representación a su forma canónica.
// Devuelve error si el valor está vacío, no es entero o no es positivo.
func ParseID(raw any) (ID, error) {
	switch v := raw.(type) {
	case nil:
		return 0, fmt.Errorf("id vacío")
	case int:
		return positive(int64(v))
	case int32:
		return positive(int64(v))
	case int64:
		return positive(v)
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, fmt.Errorf("id fuera de rango: %d", v)
		}
		return positive(int64(v))
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("id fuera de rango: %d", v)
		}
		return positive(int64(v))
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 {
			return 0, fmt.Errorf("id no entero: %v", v)
		}
		return positive(int64(v))
	case json.Number:
		return ParseID(string(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, fmt.Errorf("id vacío")
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("id inválido %q: %w", v, err)
		}
		return positive(n)
	default:
		return 0, fmt.Errorf("tipo de id no soportado: %T", raw)
	}
}

func positive(n int64) (ID, error) {
	if n <= 0 {
		return 0, fmt.Errorf("id debe ser positivo: %d", n)
	}
	return n, nil
}

// FlexID acepta ids JSON tanto numéricos como en texto ("almacen_id": 5 o "5").
type FlexID ID

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FlexID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	id, err := ParseID(s)
	if err != nil {
		return err
	}
	*f = FlexID(id)
	return nil
}

// MarshalJSON implementa json.Marshaler.
func (f FlexID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(f), 10)), nil
}

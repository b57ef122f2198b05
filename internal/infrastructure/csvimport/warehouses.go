// Package csvimport lectura de archivos CSV exportados desde hojas de cálculo.
package csvimport

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/negocify-api/internal/domain/entity"
)

// Encodings soportados.
const (
	EncodingAuto   = "auto"
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin1"
)

// ErrMissingNameColumn el encabezado no trae la columna nombre.
var ErrMissingNameColumn = errors.New("csv: falta la columna nombre")

// ReadWarehouses lee almacenes de un CSV con encabezado (nombre[,direccion]).
// Acepta ',' o ';' como separador. Con EncodingAuto el contenido que no es UTF-8
// válido se decodifica como ISO-8859-1 (exportación típica de Excel en español).
func ReadWarehouses(r io.Reader, encoding string) ([]entity.Warehouse, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	text, err := decode(raw, encoding)
	if err != nil {
		return nil, err
	}
	text = strings.TrimPrefix(text, "\ufeff")

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = detectComma(text)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingNameColumn
		}
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	nameCol, addrCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "nombre", "name":
			nameCol = i
		case "direccion", "dirección", "address":
			addrCol = i
		}
	}
	if nameCol < 0 {
		return nil, ErrMissingNameColumn
	}

	var out []entity.Warehouse
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		name := field(rec, nameCol)
		if name == "" {
			continue
		}
		w := entity.Warehouse{Name: name}
		if addr := field(rec, addrCol); addr != "" {
			w.Address = &addr
		}
		out = append(out, w)
	}
	return out, nil
}

func decode(raw []byte, encoding string) (string, error) {
	switch encoding {
	case EncodingUTF8:
		return string(raw), nil
	case EncodingLatin1:
		return latin1(raw)
	case EncodingAuto, "":
		if utf8.Valid(raw) {
			return string(raw), nil
		}
		return latin1(raw)
	default:
		return "", fmt.Errorf("encoding no soportado %q", encoding)
	}
}

func latin1(raw []byte) (string, error) {
	out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("decodificar latin1: %w", err)
	}
	return string(out), nil
}

// detectComma elige ';' si la primera línea lo usa más que ','.
func detectComma(text string) rune {
	first, _ := bufio.NewReader(strings.NewReader(text)).ReadString('\n')
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// Package brformat da formato de presentación a documentos y fechas brasileños.
// Solo inserta puntuación; valores que no tienen el largo esperado se devuelven sin cambios.
package brformat

import (
	"time"
	"unicode"
)

// CPF formatea 11 dígitos como 000.000.000-00.
func CPF(s string) string {
	if len(s) != 11 || !digits(s) {
		return s
	}
	return s[0:3] + "." + s[3:6] + "." + s[6:9] + "-" + s[9:11]
}

// CEP formatea 8 dígitos como 00000-000.
func CEP(s string) string {
	if len(s) != 8 || !digits(s) {
		return s
	}
	return s[0:5] + "-" + s[5:8]
}

// Date formatea t como dd/mm/aaaa (pt-BR) en la zona loc. loc nil usa la zona de t.
func Date(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("02/01/2006")
}

func digits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

package postgresql

import (
	"strconv"
	"strings"

	"ormreveal/internal/core"
)

// applyLengthAndPrecision parses the "(n)" or "(p,s)" modifier off a
// format_type() result (e.g. "character varying(255)", "numeric(10,2)")
// into the column's max-length or precision/scale.
func applyLengthAndPrecision(col *core.Column, rawType string) {
	open := strings.IndexByte(rawType, '(')
	shut := strings.IndexByte(rawType, ')')
	if open < 0 || shut <= open {
		return
	}
	inner := rawType[open+1 : shut]

	if strings.Contains(inner, ",") {
		parts := strings.SplitN(inner, ",", 2)
		if p, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
			col.Precision = &p
		}
		if s, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			col.Scale = &s
		}
		return
	}

	if n, err := strconv.Atoi(strings.TrimSpace(inner)); err == nil {
		if col.Type == core.TypeString {
			col.MaxLength = &n
		} else {
			col.Precision = &n
		}
	}
}

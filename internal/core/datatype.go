package core

import "strings"

// DataType is the canonical, vendor-independent token for a column's
// value domain.
type DataType string

const (
	TypeString         DataType = "string"
	TypeBool           DataType = "bool"
	TypeByte           DataType = "byte"
	TypeShort          DataType = "short"
	TypeInt            DataType = "int"
	TypeLong           DataType = "long"
	TypeFloat          DataType = "float"
	TypeDouble         DataType = "double"
	TypeDecimal        DataType = "decimal"
	TypeDateTime       DataType = "DateTime"
	TypeDateTimeOffset DataType = "DateTimeOffset"
	TypeTimeSpan       DataType = "TimeSpan"
	TypeGuid           DataType = "Guid"
	TypeByteArray      DataType = "byte[]"
)

// normalizeDataTypeRules is an ordered list of (substring, token) pairs,
// checked in order against the lower-cased raw vendor type. Order
// matters: more specific substrings are listed before the ones they'd
// otherwise be shadowed by.
var normalizeDataTypeRules = []struct {
	substr string
	token  DataType
}{
	{"datetimeoffset", TypeDateTimeOffset},
	{"timestamp with time zone", TypeDateTimeOffset},
	{"timestamptz", TypeDateTimeOffset},
	{"datetime", TypeDateTime},
	{"timestamp", TypeDateTime},
	{"date", TypeDateTime},
	{"time", TypeTimeSpan},
	{"uniqueidentifier", TypeGuid},
	{"uuid", TypeGuid},
	{"tinyint(1)", TypeBool},
	{"bool", TypeBool},
	{"bit", TypeBool},
	{"tinyint", TypeByte},
	{"smallint", TypeShort},
	{"int2", TypeShort},
	{"int4", TypeInt},
	{"int8", TypeLong},
	{"integer", TypeInt},
	{"mediumint", TypeInt},
	{"bigint", TypeLong},
	{"int", TypeInt},
	{"decimal", TypeDecimal},
	{"numeric", TypeDecimal},
	{"money", TypeDecimal},
	{"real", TypeFloat},
	{"float4", TypeFloat},
	{"float8", TypeDouble},
	{"float", TypeDouble},
	{"double", TypeDouble},
	{"char", TypeString},
	{"text", TypeString},
	{"json", TypeString},
	{"xml", TypeString},
	{"enum", TypeString},
	{"set(", TypeString},
	{"varchar", TypeString},
	{"binary", TypeByteArray},
	{"blob", TypeByteArray},
	{"bytea", TypeByteArray},
	{"image", TypeByteArray},
	{"rowversion", TypeByteArray},
}

// NormalizeDataType maps a vendor-specific raw catalog type (e.g.
// "nvarchar(50)", "int unsigned", "character varying") to the canonical
// token set. When nothing matches, the raw type itself is returned as
// the token, per the fallback rule in the external interface contract.
func NormalizeDataType(rawType string) DataType {
	lower := strings.ToLower(strings.TrimSpace(rawType))
	for _, rule := range normalizeDataTypeRules {
		if strings.Contains(lower, rule.substr) {
			return rule.token
		}
	}
	return DataType(rawType)
}

// DeleteUpdateRules is the closed set every dialect reader must
// normalize delete/update rule tokens into.
var DeleteUpdateRules = []string{"NO ACTION", "RESTRICT", "CASCADE", "SET NULL", "SET DEFAULT"}

// NormalizeRule maps a vendor referential-action description (e.g. SQL
// Server's "NO_ACTION", MySQL/Postgres's lower-case forms) onto the
// closed rule set. Unrecognized input defaults to "NO ACTION".
func NormalizeRule(raw string) string {
	r := strings.ToUpper(strings.TrimSpace(raw))
	r = strings.ReplaceAll(r, "_", " ")
	for _, known := range DeleteUpdateRules {
		if r == known {
			return known
		}
	}
	return "NO ACTION"
}

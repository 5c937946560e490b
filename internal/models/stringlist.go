package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// ListDecoding tells how DecodeStringList interpreted its input.
type ListDecoding int

const (
	// ListEmpty means the source was NULL or held no elements.
	ListEmpty ListDecoding = iota
	// ListPassThrough means the source was already a list of strings.
	ListPassThrough
	// ListParsed means the source was a Postgres array literal or a JSON array.
	ListParsed
	// ListWrapped means the source was a plain string, kept as the only element.
	ListWrapped
)

func (d ListDecoding) String() string {
	switch d {
	case ListEmpty:
		return "empty"
	case ListPassThrough:
		return "pass-through"
	case ListParsed:
		return "parsed"
	case ListWrapped:
		return "wrapped"
	}
	return fmt.Sprintf("ListDecoding(%d)", int(d))
}

// StringList is an ordered list of strings stored in a TEXT[] column.
//
// Rows written before the column became an array hold JSON text such as
// `["Go","SQL"]` or a bare string; Scan accepts all of those forms.
type StringList []string

// DecodeStringList converts a column value into a StringList and reports
// which form the value had. Only non-string, non-list sources fail.
func DecodeStringList(src any) (StringList, ListDecoding, error) {
	switch v := src.(type) {
	case nil:
		return StringList{}, ListEmpty, nil
	case StringList:
		return passThrough(v)
	case []string:
		return passThrough(v)
	case pq.StringArray:
		return passThrough(v)
	case []byte:
		return decodeText(string(v), true)
	case string:
		return decodeText(v, false)
	}
	return nil, ListEmpty, fmt.Errorf("cannot decode %T into StringList", src)
}

func passThrough(v []string) (StringList, ListDecoding, error) {
	if len(v) == 0 {
		return StringList{}, ListEmpty, nil
	}
	out := make(StringList, len(v))
	copy(out, v)
	return out, ListPassThrough, nil
}

// decodeText parses a textual column value. Array literals are only accepted
// from column bytes; a legacy string such as "{React}" stays a single element.
func decodeText(raw string, column bool) (StringList, ListDecoding, error) {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "", trimmed == "{}", trimmed == "[]":
		return StringList{}, ListEmpty, nil
	case column && strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}"):
		var arr pq.StringArray
		if err := arr.Scan(trimmed); err == nil {
			return StringList(arr), ListParsed, nil
		}
	case strings.HasPrefix(trimmed, "["):
		var arr []string
		if err := json.Unmarshal([]byte(trimmed), &arr); err == nil {
			if len(arr) == 0 {
				return StringList{}, ListEmpty, nil
			}
			return StringList(arr), ListParsed, nil
		}
	}
	return StringList{raw}, ListWrapped, nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	list, _, err := DecodeStringList(src)
	if err != nil {
		return err
	}
	*l = list
	return nil
}

// Value implements driver.Valuer, writing a Postgres array literal.
// The driver hands the literal back as bytes on Scan.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return pq.StringArray{}.Value()
	}
	return pq.StringArray(l).Value()
}

// EncodeJSON returns the legacy JSON text form of the list.
func (l StringList) EncodeJSON() string {
	if l == nil {
		l = StringList{}
	}
	b, _ := json.Marshal([]string(l))
	return string(b)
}

// MarshalJSON always emits an array, never null.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

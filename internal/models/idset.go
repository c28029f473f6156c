package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// IDSet is a set of user IDs stored as a JSONB array. The underlying slice
// may contain duplicates when read from older rows; Add and Contains treat
// it as a set regardless, and Add rewrites it deduplicated.
type IDSet []string

// Contains reports whether the set holds the given id.
func (s IDSet) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Add returns the set with id included exactly once.
func (s IDSet) Add(id string) IDSet {
	out := make(IDSet, 0, len(s)+1)
	for _, v := range s {
		if v != id && !out.Contains(v) {
			out = append(out, v)
		}
	}
	return append(out, id)
}

// Remove returns the set with every occurrence of id removed.
func (s IDSet) Remove(id string) IDSet {
	out := make(IDSet, 0, len(s))
	for _, v := range s {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Clone returns an independent copy of the set.
func (s IDSet) Clone() IDSet {
	if s == nil {
		return nil
	}
	out := make(IDSet, len(s))
	copy(out, s)
	return out
}

// Value implements driver.Valuer. An empty set is stored as an empty JSON
// array rather than NULL so array operators keep working in SQL.
func (s IDSet) Value() (driver.Value, error) {
	if s == nil {
		s = IDSet{}
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *IDSet) Scan(value interface{}) error {
	if value == nil {
		*s = IDSet{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into IDSet", value)
	}

	return json.Unmarshal(data, s)
}

// GormDataType tells GORM which column type to migrate to.
func (IDSet) GormDataType() string {
	return "jsonb"
}

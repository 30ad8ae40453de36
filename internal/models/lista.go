package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Lista é uma lista de strings persistida como JSON em uma coluna text.
type Lista []string

func (l Lista) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *Lista) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("lista: tipo inesperado %T", value)
	}
}

func (l Lista) Contem(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

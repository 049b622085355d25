package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringArray 字符串数组类型，用于存储 tags
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = StringArray{}
		return nil
	case []byte:
		return s.unmarshal(v)
	case string:
		return s.unmarshal([]byte(v))
	default:
		return fmt.Errorf("unsupported StringArray source: %T", value)
	}
}

func (s *StringArray) unmarshal(raw []byte) error {
	if len(raw) == 0 {
		*s = StringArray{}
		return nil
	}
	return json.Unmarshal(raw, s)
}

package domain

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const layoutData = "2006-01-02"

// Data representa apenas a parte de data (AAAA-MM-DD), sem hora nem fuso.
type Data struct {
	time.Time
}

func ParseData(s string) (Data, error) {
	t, err := time.Parse(layoutData, s)
	if err != nil {
		return Data{}, fmt.Errorf("data inválida %q: esperado AAAA-MM-DD", s)
	}
	return Data{Time: t}, nil
}

func (d Data) String() string {
	return d.Format(layoutData)
}

func (d Data) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(layoutData) + `"`), nil
}

func (d *Data) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("data inválida %s", s)
	}
	parsed, err := ParseData(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Data) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Data) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		parsed, err := ParseData(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("não é possível converter %T em Data", src)
	}
}

package entity

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
)

// Money เป็นจำนวนเงินทศนิยม 2 ตำแหน่ง (ไม่ใช้ float)
type Money struct {
	decimal.Decimal
}

func NewMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{d.Round(2)}, nil
}

func MustMoney(s string) Money {
	m, err := NewMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func ZeroMoney() Money { return Money{decimal.Zero} }

func (m Money) Add(o Money) Money { return Money{m.Decimal.Add(o.Decimal)} }

func (m Money) Times(qty int) Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(int64(qty)))}
}

func (m Money) String() string { return m.StringFixed(2) }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	if err := m.Decimal.UnmarshalJSON(b); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

func (m Money) Value() (driver.Value, error) { return m.StringFixed(2), nil }

func (m *Money) Scan(v any) error { return m.Decimal.Scan(v) }

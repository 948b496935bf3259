package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money 統一金額型（日本円、整数円のみ）
type Money struct {
	decimal.Decimal
}

// NewMoneyFromYen 整数円から金額を作成
func NewMoneyFromYen(yen int64) Money {
	return Money{Decimal: decimal.NewFromInt(yen)}
}

// NewMoneyFromDecimal decimal から金額を作成（円単位に丸める）
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(0)}
}

// Yen 整数円を返す
func (m Money) Yen() int64 {
	return m.Decimal.Round(0).IntPart()
}

// MarshalJSON 整数円の数値として出力
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Yen())
}

// UnmarshalJSON 金額を解析（文字列または数値）
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		m.Decimal = d.Round(0)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	m.Decimal = decimal.NewFromFloat(f).Round(0)
	return nil
}

// Value データベース書き込み用
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(0).Value()
}

// Scan データベース読み込み用
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(0)
	return nil
}

// String 整数円の文字列を返す
func (m Money) String() string {
	return m.Decimal.Round(0).String()
}

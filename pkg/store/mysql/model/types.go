package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// GarmentRate one garment/rate pair inside the garment_rates JSON column
type GarmentRate struct {
	GarmentType string  `json:"garmentType"`
	Rate        float64 `json:"rate"`
}

// JSONGarmentRates is a custom type for the garment_rates JSON column
type JSONGarmentRates []GarmentRate

// Scan implements sql.Scanner interface
func (j *JSONGarmentRates) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal JSONGarmentRates value: %v", value)
	}
	result := make([]GarmentRate, 0)
	err := json.Unmarshal(bytes, &result)
	*j = JSONGarmentRates(result)
	return err
}

// Value implements driver.Valuer interface. Nil is stored as an empty array.
func (j JSONGarmentRates) Value() (driver.Value, error) {
	if j == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]GarmentRate(j))
}

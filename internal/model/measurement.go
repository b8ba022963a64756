package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ReadingType identifies what a single reading measures.
type ReadingType string

const (
	ReadingGlucose       ReadingType = "glucose"
	ReadingBloodPressure ReadingType = "bloodPressure"
	ReadingWeight        ReadingType = "weight"
	ReadingHeartRate     ReadingType = "heartRate"
	ReadingSpO2          ReadingType = "spo2"
	ReadingOther         ReadingType = "other"
)

// Measurement groups all readings a user recorded for one date. The server
// keeps at most one Measurement per (user, date).
type Measurement struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	Readings  []Reading `json:"readings"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AnchorDate implements Dated.
func (m Measurement) AnchorDate() string { return m.Date }

// Reading is one sub-reading of a Measurement.
type Reading struct {
	ID        string       `json:"_id,omitempty"`
	Type      ReadingType  `json:"type"`
	Timestamp *time.Time   `json:"timestamp,omitempty"`
	Value     ReadingValue `json:"value"`
	Unit      string       `json:"unit,omitempty"`
	Notes     string       `json:"notes,omitempty"`
}

// NewMeasurement is the body of a measurement create request. The server
// merges the readings into the existing record for Date, if any.
type NewMeasurement struct {
	UserID   string    `json:"userId"`
	Date     string    `json:"date"`
	Readings []Reading `json:"readings"`
}

// BloodPressure is the two-component value of a blood pressure reading.
type BloodPressure struct {
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
}

// ReadingValue is either a scalar or a BloodPressure pair.
// On the wire it is a bare JSON number or a {"systolic","diastolic"} object.
type ReadingValue struct {
	scalar float64
	pair   *BloodPressure
}

// Scalar returns a single-number reading value.
func Scalar(v float64) ReadingValue { return ReadingValue{scalar: v} }

// Pair returns a blood pressure reading value.
func Pair(systolic, diastolic float64) ReadingValue {
	return ReadingValue{pair: &BloodPressure{Systolic: systolic, Diastolic: diastolic}}
}

// IsPair reports whether v holds a BloodPressure.
func (v ReadingValue) IsPair() bool { return v.pair != nil }

// Scalar returns the scalar value and true, or 0 and false for a pair.
func (v ReadingValue) Scalar() (float64, bool) {
	if v.pair != nil {
		return 0, false
	}
	return v.scalar, true
}

// Pair returns the blood pressure value and true, or false for a scalar.
func (v ReadingValue) Pair() (BloodPressure, bool) {
	if v.pair == nil {
		return BloodPressure{}, false
	}
	return *v.pair, true
}

// String formats the value as "120/80" or a plain number.
func (v ReadingValue) String() string {
	if v.pair != nil {
		return fmt.Sprintf("%s/%s",
			strconv.FormatFloat(v.pair.Systolic, 'f', -1, 64),
			strconv.FormatFloat(v.pair.Diastolic, 'f', -1, 64))
	}
	return strconv.FormatFloat(v.scalar, 'f', -1, 64)
}

// MarshalJSON implements json.Marshaler.
func (v ReadingValue) MarshalJSON() ([]byte, error) {
	if v.pair != nil {
		return json.Marshal(v.pair)
	}
	return json.Marshal(v.scalar)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *ReadingValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var bp BloodPressure
		if err := json.Unmarshal(data, &bp); err != nil {
			return fmt.Errorf("decoding blood pressure value: %w", err)
		}
		*v = ReadingValue{pair: &bp}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decoding reading value: %w", err)
	}
	*v = ReadingValue{scalar: f}
	return nil
}

// ParseReadingValue parses "N" as a scalar and "SYS/DIA" as a pair.
func ParseReadingValue(s string) (ReadingValue, error) {
	if sys, dia, ok := strings.Cut(s, "/"); ok {
		a, err := strconv.ParseFloat(sys, 64)
		if err != nil {
			return ReadingValue{}, fmt.Errorf("invalid systolic value %q: %w", sys, err)
		}
		b, err := strconv.ParseFloat(dia, 64)
		if err != nil {
			return ReadingValue{}, fmt.Errorf("invalid diastolic value %q: %w", dia, err)
		}
		return Pair(a, b), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ReadingValue{}, fmt.Errorf("invalid reading value %q: %w", s, err)
	}
	return Scalar(f), nil
}

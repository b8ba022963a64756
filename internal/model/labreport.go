package model

import (
	"encoding/json"
	"time"
)

// LabReport is an uploaded laboratory report.
//
// ParsedResults holds whatever structure the server's parser produced. It is
// passed through untouched and never validated on the client.
type LabReport struct {
	ID            string          `json:"_id"`
	UserID        string          `json:"userId"`
	ReportDate    string          `json:"reportDate"`
	TestType      string          `json:"testType"`
	ParsedResults json.RawMessage `json:"parsedResults,omitempty"`
	FileURL       string          `json:"fileUrl,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// AnchorDate implements Dated.
func (r LabReport) AnchorDate() string { return r.ReportDate }

// NewLabReport is the body of a lab report create request.
type NewLabReport struct {
	ReportDate    string          `json:"reportDate"`
	TestType      string          `json:"testType"`
	ParsedResults json.RawMessage `json:"parsedResults,omitempty"`
	FileURL       string          `json:"fileUrl,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

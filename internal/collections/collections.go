// Package collections instantiates the diary, lab report and measurement
// stores from the generic store and groups them for a host application.
package collections

import (
	"github.com/Tiliavir/healthsync/internal/lifecycle"
	"github.com/Tiliavir/healthsync/internal/model"
	"github.com/Tiliavir/healthsync/internal/remote"
	"github.com/Tiliavir/healthsync/internal/store"
)

// API collection paths.
const (
	DiaryPath        = "diary"
	LabReportsPath   = "lab-reports"
	MeasurementsPath = "measurements"
)

// Store types of the three collections.
type (
	DiaryStore        = store.Store[model.DiaryEntry, model.NewDiaryEntry]
	LabReportStore    = store.Store[model.LabReport, model.NewLabReport]
	MeasurementsStore = store.Store[model.Measurement, model.NewMeasurement]
)

var (
	DiaryOps = store.Operations{
		Fetch:  lifecycle.Operation{Name: "diary/fetchAll", DefaultError: "Failed to fetch diary entries"},
		Create: lifecycle.Operation{Name: "diary/create", DefaultError: "Failed to create diary entry"},
	}
	LabReportOps = store.Operations{
		Fetch:  lifecycle.Operation{Name: "labReports/fetchAll", DefaultError: "Failed to fetch lab reports"},
		Create: lifecycle.Operation{Name: "labReports/create", DefaultError: "Failed to create lab report"},
	}
	MeasurementOps = store.Operations{
		Fetch:  lifecycle.Operation{Name: "measurements/fetchAll", DefaultError: "Failed to fetch measurements"},
		Create: lifecycle.Operation{Name: "measurements/create", DefaultError: "Failed to create measurement"},
	}
)

// NewDiary returns the diary store. Several entries may share a date, so
// created entries are always prepended.
func NewDiary(ep store.Endpoint[model.DiaryEntry, model.NewDiaryEntry], opts ...store.Option) *DiaryStore {
	return store.New("diary", DiaryOps, ep, store.Prepend[model.DiaryEntry](), opts...)
}

// NewLabReports returns the lab report store; created reports are prepended.
func NewLabReports(ep store.Endpoint[model.LabReport, model.NewLabReport], opts ...store.Option) *LabReportStore {
	return store.New("labReports", LabReportOps, ep, store.Prepend[model.LabReport](), opts...)
}

// NewMeasurements returns the measurement store. The server keeps one record
// per date and returns the merged record on create, which replaces the local
// record for that date.
func NewMeasurements(ep store.Endpoint[model.Measurement, model.NewMeasurement], opts ...store.Option) *MeasurementsStore {
	return store.New("measurements", MeasurementOps, ep, store.ReplaceByDate[model.Measurement](), opts...)
}

// Set groups the three stores of one session.
type Set struct {
	Diary        *DiaryStore
	LabReports   *LabReportStore
	Measurements *MeasurementsStore
}

// NewSet builds all three stores against the API reachable through client.
func NewSet(client *remote.Client, opts ...store.Option) *Set {
	return &Set{
		Diary:        NewDiary(remote.NewEndpoint[model.DiaryEntry, model.NewDiaryEntry](client, DiaryPath), opts...),
		LabReports:   NewLabReports(remote.NewEndpoint[model.LabReport, model.NewLabReport](client, LabReportsPath), opts...),
		Measurements: NewMeasurements(remote.NewEndpoint[model.Measurement, model.NewMeasurement](client, MeasurementsPath), opts...),
	}
}

// ClearErrors clears the last error of every store.
func (s *Set) ClearErrors() {
	s.Diary.ClearErrors()
	s.LabReports.ClearErrors()
	s.Measurements.ClearErrors()
}

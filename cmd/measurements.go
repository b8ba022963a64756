package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/healthsync/internal/datecalc"
	"github.com/Tiliavir/healthsync/internal/model"
)

var (
	measListWeek bool
	measAddDate  string
	measAddType  string
	measAddValue string
	measAddUnit  string
	measAddNotes string
)

var measurementsCmd = &cobra.Command{
	Use:     "measurements",
	Aliases: []string{"m"},
	Short:   "Daily measurements",
}

var measurementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List measurements",
	Args:  cobra.NoArgs,
	RunE:  runMeasurementsList,
}

var measurementsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a reading; it is merged into the day's measurement",
	Args:  cobra.NoArgs,
	RunE:  runMeasurementsAdd,
}

func init() {
	measurementsListCmd.Flags().BoolVar(&measListWeek, "week", false, "Only show this week's measurements")

	measurementsAddCmd.Flags().StringVar(&measAddDate, "date", "", "Measurement date (YYYY-MM-DD); defaults to today")
	measurementsAddCmd.Flags().StringVar(&measAddType, "type", "", "glucose, bloodPressure, weight, heartRate, spo2 or other (required)")
	measurementsAddCmd.Flags().StringVar(&measAddValue, "value", "", "Reading value: a number, or SYS/DIA for blood pressure (required)")
	measurementsAddCmd.Flags().StringVar(&measAddUnit, "unit", "", "Unit, e.g. mg/dL")
	measurementsAddCmd.Flags().StringVar(&measAddNotes, "notes", "", "Optional note")
	_ = measurementsAddCmd.MarkFlagRequired("type")
	_ = measurementsAddCmd.MarkFlagRequired("value")

	measurementsCmd.AddCommand(measurementsListCmd)
	measurementsCmd.AddCommand(measurementsAddCmd)
}

func runMeasurementsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	owner, err := a.owner()
	if err != nil {
		return err
	}

	st := a.set.Measurements.FetchAll(cmd.Context(), owner)
	settle(st)

	items := st.Items
	if measListWeek {
		from, to := datecalc.WeekRange(time.Now())
		items = filterDated(items, from, to)
	}
	return printRecords(os.Stdout, flagFormat, items, measurementTable(items))
}

func runMeasurementsAdd(cmd *cobra.Command, args []string) error {
	date, err := dateOrToday(measAddDate)
	if err != nil {
		return err
	}
	reading, err := buildReading(measAddType, measAddValue, measAddUnit, measAddNotes, time.Now())
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	owner, err := a.owner()
	if err != nil {
		return err
	}

	st := a.set.Measurements.Create(cmd.Context(), model.NewMeasurement{
		UserID:   owner,
		Date:     date,
		Readings: []model.Reading{reading},
	})
	settle(st)

	for _, m := range st.Items {
		if datecalc.Day(m.Date) == date {
			fmt.Printf("%s now has %d reading(s)\n", date, len(m.Readings))
			break
		}
	}
	return nil
}

func buildReading(typ, value, unit, notes string, now time.Time) (model.Reading, error) {
	rt := model.ReadingType(typ)
	switch rt {
	case model.ReadingGlucose, model.ReadingBloodPressure, model.ReadingWeight,
		model.ReadingHeartRate, model.ReadingSpO2, model.ReadingOther:
	default:
		return model.Reading{}, fmt.Errorf("invalid --type %q", typ)
	}
	v, err := model.ParseReadingValue(value)
	if err != nil {
		return model.Reading{}, err
	}
	if v.IsPair() != (rt == model.ReadingBloodPressure) {
		return model.Reading{}, fmt.Errorf("--value %q does not fit reading type %s", value, rt)
	}
	return model.Reading{Type: rt, Timestamp: &now, Value: v, Unit: unit, Notes: notes}, nil
}

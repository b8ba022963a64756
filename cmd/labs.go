package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/healthsync/internal/datecalc"
	"github.com/Tiliavir/healthsync/internal/model"
)

var (
	labsAddDate    string
	labsAddType    string
	labsAddResults string
	labsAddFileURL string
	labsAddNotes   string
)

var labsCmd = &cobra.Command{
	Use:   "labs",
	Short: "Lab reports",
}

var labsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lab reports",
	Args:  cobra.NoArgs,
	RunE:  runLabsList,
}

var labsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a lab report",
	Args:  cobra.NoArgs,
	RunE:  runLabsAdd,
}

func init() {
	labsAddCmd.Flags().StringVar(&labsAddDate, "date", "", "Report date (YYYY-MM-DD); defaults to today")
	labsAddCmd.Flags().StringVar(&labsAddType, "type", "", "Test type, e.g. CBC (required)")
	labsAddCmd.Flags().StringVar(&labsAddResults, "results", "", "Parsed results as a JSON document")
	labsAddCmd.Flags().StringVar(&labsAddFileURL, "file-url", "", "URL of the uploaded report file")
	labsAddCmd.Flags().StringVar(&labsAddNotes, "notes", "", "Optional notes")
	_ = labsAddCmd.MarkFlagRequired("type")

	labsCmd.AddCommand(labsListCmd)
	labsCmd.AddCommand(labsAddCmd)
}

func runLabsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	owner, err := a.owner()
	if err != nil {
		return err
	}

	st := a.set.LabReports.FetchAll(cmd.Context(), owner)
	settle(st)
	return printRecords(os.Stdout, flagFormat, st.Items, labTable(st.Items))
}

func runLabsAdd(cmd *cobra.Command, args []string) error {
	date, err := dateOrToday(labsAddDate)
	if err != nil {
		return err
	}
	var results json.RawMessage
	if labsAddResults != "" {
		// Only well-formedness is checked; the structure is the server's business.
		if !json.Valid([]byte(labsAddResults)) {
			return fmt.Errorf("--results is not valid JSON")
		}
		results = json.RawMessage(labsAddResults)
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	st := a.set.LabReports.Create(cmd.Context(), model.NewLabReport{
		ReportDate:    date,
		TestType:      labsAddType,
		ParsedResults: results,
		FileURL:       labsAddFileURL,
		Notes:         labsAddNotes,
	})
	settle(st)

	fmt.Printf("Created lab report %s (%s) for %s\n", st.Items[0].ID, st.Items[0].TestType, datecalc.Day(st.Items[0].ReportDate))
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/healthsync/internal/datecalc"
	"github.com/Tiliavir/healthsync/internal/model"
)

var (
	diaryListWeek bool
	diaryAddDate  string
	diaryAddSum   string
	diaryAddRaw   string
	diaryAddMood  string
	diaryAddTags  string
)

var diaryCmd = &cobra.Command{
	Use:   "diary",
	Short: "Diary entries",
}

var diaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List diary entries",
	Args:  cobra.NoArgs,
	RunE:  runDiaryList,
}

var diaryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a diary entry",
	Args:  cobra.NoArgs,
	RunE:  runDiaryAdd,
}

func init() {
	diaryListCmd.Flags().BoolVar(&diaryListWeek, "week", false, "Only show this week's entries")

	diaryAddCmd.Flags().StringVar(&diaryAddDate, "date", "", "Entry date (YYYY-MM-DD); defaults to today")
	diaryAddCmd.Flags().StringVar(&diaryAddSum, "summary", "", "Short summary (required)")
	diaryAddCmd.Flags().StringVar(&diaryAddRaw, "raw", "", "Full free-text entry")
	diaryAddCmd.Flags().StringVar(&diaryAddMood, "mood", "", "happy, neutral, stressed, sad, anxious or energetic")
	diaryAddCmd.Flags().StringVar(&diaryAddTags, "tags", "", "Comma-separated tags")
	_ = diaryAddCmd.MarkFlagRequired("summary")

	diaryCmd.AddCommand(diaryListCmd)
	diaryCmd.AddCommand(diaryAddCmd)
}

func runDiaryList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	owner, err := a.owner()
	if err != nil {
		return err
	}

	st := a.set.Diary.FetchAll(cmd.Context(), owner)
	settle(st)

	entries := st.Items
	if diaryListWeek {
		from, to := datecalc.WeekRange(time.Now())
		entries = filterDated(entries, from, to)
	}
	return printRecords(os.Stdout, flagFormat, entries, diaryTable(entries))
}

func runDiaryAdd(cmd *cobra.Command, args []string) error {
	date, err := dateOrToday(diaryAddDate)
	if err != nil {
		return err
	}
	mood := model.Mood(diaryAddMood)
	if !mood.Valid() {
		return fmt.Errorf("invalid --mood %q", diaryAddMood)
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	st := a.set.Diary.Create(cmd.Context(), model.NewDiaryEntry{
		Date:    date,
		RawText: diaryAddRaw,
		Summary: diaryAddSum,
		Mood:    mood,
		Tags:    splitTags(diaryAddTags),
	})
	settle(st)

	fmt.Printf("Created diary entry %s for %s\n", st.Items[0].ID, datecalc.Day(st.Items[0].Date))
	return nil
}

// dateOrToday validates s or returns today's date when it is empty.
func dateOrToday(s string) (string, error) {
	if s == "" {
		return datecalc.Today(time.Now()), nil
	}
	if _, err := datecalc.Parse(s, time.Local); err != nil {
		return "", err
	}
	return s, nil
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func filterDated[T model.Dated](items []T, from, to string) []T {
	out := []T{}
	for _, it := range items {
		if datecalc.InRange(it.AnchorDate(), from, to) {
			out = append(out, it)
		}
	}
	return out
}

package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// A Renderer draws a series.
type Renderer interface {
	Render(w io.Writer, samples []Sample) error
}

// TableRenderer prints a series as a text table.
type TableRenderer struct {
	// Every selects one row out of Every samples. The last sample is always
	// shown. Zero or one shows every sample.
	Every int
}

// Render writes the table, with the totals as the footer.
func (r TableRenderer) Render(w io.Writer, samples []Sample) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"Tick", "Arrivals", "Avg Queue", "Processed", "Lost",
	})

	for i, s := range samples {
		if !r.shows(i, len(samples)) {
			continue
		}

		tick := strconv.FormatUint(s.Tick, 10)
		if s.Skipped {
			tick += " (skipped)"
		}

		table.Append([]string{
			tick,
			formatAmount(s.Arrivals),
			formatAmount(s.AvgQueue),
			formatAmount(s.TotalProcessed),
			formatAmount(s.Lost),
		})
	}

	t := Summarize(samples)
	table.SetFooter([]string{
		fmt.Sprintf("%d ticks", t.Ticks),
		formatAmount(t.Arrivals),
		"mean " + formatAmount(t.MeanQueue),
		formatAmount(t.Processed),
		formatAmount(t.Lost),
	})

	table.Render()

	return nil
}

func (r TableRenderer) shows(i, n int) bool {
	if r.Every <= 1 || i == n-1 {
		return true
	}

	return i%r.Every == 0
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// CSVRenderer writes the arrivals, average queue and processed series as CSV,
// one row per tick.
type CSVRenderer struct{}

// Render writes the CSV with a header row.
func (CSVRenderer) Render(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)

	err := cw.Write([]string{
		"tick", "arrivals", "avg_queue", "total_processed", "lost",
	})
	if err != nil {
		return err
	}

	for _, s := range samples {
		err = cw.Write([]string{
			strconv.FormatUint(s.Tick, 10),
			strconv.FormatFloat(s.Arrivals, 'g', -1, 64),
			strconv.FormatFloat(s.AvgQueue, 'g', -1, 64),
			strconv.FormatFloat(s.TotalProcessed, 'g', -1, 64),
			strconv.FormatFloat(s.Lost, 'g', -1, 64),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

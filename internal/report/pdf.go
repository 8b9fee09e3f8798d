package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin = 20.0
	rowHeight  = 8.0
	notesWidth = 50
)

type rgb struct{ r, g, b int }

var (
	accent    = rgb{0x66, 0x7e, 0xea}
	heading   = rgb{0x2c, 0x3e, 0x50}
	stripe    = rgb{0xf8, 0xf9, 0xff}
	textColor = rgb{0, 0, 0}
)

// renderer wraps an fpdf document with the report's table styles.
type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// Render writes a as a PDF document to w.
func Render(w io.Writer, a *Analytics) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Habit Hero Progress Report", true)
	pdf.SetCreator("habithero", true)
	pdf.SetCreationDate(a.GeneratedAt)

	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	r.titlePage(a)
	r.categories(a)
	r.performance(a)
	r.streaks(a)
	r.recentActivity(a)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return pdf.Output(w)
}

func (r *renderer) color(c rgb) { r.pdf.SetTextColor(c.r, c.g, c.b) }

func (r *renderer) sectionTitle(title string) {
	r.pdf.AddPage()
	r.pdf.SetFont("Helvetica", "B", 16)
	r.color(heading)
	r.pdf.CellFormat(0, 12, title, "", 1, "L", false, 0, "")
	r.pdf.Ln(4)
}

func (r *renderer) paragraph(text string) {
	r.pdf.SetFont("Helvetica", "", 11)
	r.color(textColor)
	r.pdf.MultiCell(0, 6, r.tr(text), "", "L", false)
	r.pdf.Ln(4)
}

// table draws a header row in the accent color followed by striped rows.
func (r *renderer) table(widths []float64, header []string, rows [][]string) {
	r.pdf.SetFont("Helvetica", "B", 10)
	r.pdf.SetFillColor(accent.r, accent.g, accent.b)
	r.pdf.SetTextColor(255, 255, 255)
	for i, h := range header {
		r.pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)

	r.pdf.SetFont("Helvetica", "", 9)
	r.color(textColor)
	for n, row := range rows {
		if n%2 == 0 {
			r.pdf.SetFillColor(stripe.r, stripe.g, stripe.b)
		} else {
			r.pdf.SetFillColor(255, 255, 255)
		}
		for i, cell := range row {
			r.pdf.CellFormat(widths[i], rowHeight, r.tr(cell), "1", 0, "C", true, 0, "")
		}
		r.pdf.Ln(-1)
	}
	r.pdf.Ln(6)
}

func (r *renderer) titlePage(a *Analytics) {
	r.pdf.AddPage()
	r.pdf.SetFont("Helvetica", "B", 24)
	r.color(accent)
	r.pdf.CellFormat(0, 20, "Habit Hero Progress Report", "", 1, "C", false, 0, "")
	r.pdf.Ln(6)

	r.pdf.SetFont("Helvetica", "", 11)
	r.color(textColor)
	r.pdf.CellFormat(0, 7, "Generated on: "+a.GeneratedAt.Format("January 02, 2006"), "", 1, "L", false, 0, "")
	if !a.DateRange.IsAll() {
		period := fmt.Sprintf("Report Period: %s to %s", a.DateRange.Start, a.DateRange.End)
		r.pdf.CellFormat(0, 7, period, "", 1, "L", false, 0, "")
	}
	r.pdf.Ln(8)

	r.table([]float64{60, 45}, []string{"Metric", "Value"}, [][]string{
		{"Total Habits", fmt.Sprint(a.TotalHabits)},
		{"Total Check-ins", fmt.Sprint(a.TotalCheckins)},
		{"Completed", fmt.Sprint(a.TotalCompleted)},
		{"Success Rate", fmt.Sprintf("%.1f%%", a.OverallSuccessRate)},
		{"Current Streak", days(a.CurrentStreak)},
	})

	r.paragraph(fmt.Sprintf(
		"You are tracking %d habits with an overall success rate of %.1f%%. "+
			"Your current activity streak stands at %s.",
		a.TotalHabits, a.OverallSuccessRate, days(a.CurrentStreak)))
}

func (r *renderer) categories(a *Analytics) {
	if len(a.Categories) == 0 {
		return
	}
	r.sectionTitle("Habits by Category")

	names := make([]string, 0, len(a.Categories))
	for name := range a.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		count := a.Categories[name]
		share := float64(count) / float64(a.TotalHabits) * 100
		rows = append(rows, []string{name, fmt.Sprint(count), fmt.Sprintf("%.1f%%", share)})
	}
	r.table([]float64{70, 30, 35}, []string{"Category", "Count", "Percentage"}, rows)
}

func (r *renderer) performance(a *Analytics) {
	r.sectionTitle("Habit Performance")
	if len(a.HabitPerformance) == 0 {
		r.paragraph("No habits yet.")
		return
	}

	rows := make([][]string, 0, len(a.HabitPerformance))
	for _, p := range a.HabitPerformance {
		rows = append(rows, []string{
			truncate(p.Name, 30), p.Category, string(p.Frequency),
			fmt.Sprintf("%.1f%%", p.SuccessRate), days(p.CurrentStreak),
		})
	}
	r.table([]float64{55, 35, 25, 27, 28},
		[]string{"Habit Name", "Category", "Frequency", "Success Rate", "Current Streak"}, rows)
}

func (r *renderer) streaks(a *Analytics) {
	r.sectionTitle("Streak Analysis")
	if len(a.HabitPerformance) == 0 {
		r.paragraph("No habits yet.")
		return
	}

	rows := make([][]string, 0, len(a.HabitPerformance))
	for _, p := range a.HabitPerformance {
		rows = append(rows, []string{
			truncate(p.Name, 30), days(p.CurrentStreak), days(p.LongestStreak), StreakStatus(p),
		})
	}
	r.table([]float64{60, 35, 35, 40},
		[]string{"Habit Name", "Current Streak", "Longest Streak", "Status"}, rows)
}

func (r *renderer) recentActivity(a *Analytics) {
	r.sectionTitle("Recent Activity & Notes")
	if len(a.RecentActivity) == 0 {
		r.paragraph("No activity recorded yet.")
		return
	}

	rows := make([][]string, 0, len(a.RecentActivity))
	for _, act := range a.RecentActivity {
		status := "Missed"
		if act.Completed {
			status = "Completed"
		}
		notes := truncate(act.Notes, notesWidth)
		if notes == "" {
			notes = "-"
		}
		rows = append(rows, []string{
			act.Date.Time(nil).Format("01/02/2006"), truncate(act.HabitName, 25), status, notes,
		})
	}
	r.table([]float64{25, 45, 25, 75}, []string{"Date", "Habit", "Status", "Notes"}, rows)
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

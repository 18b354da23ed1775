package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sinavkoc/sinavkoc-backend/internal/analysis"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
	"github.com/sinavkoc/sinavkoc-backend/internal/service"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	section = color.New(color.FgYellow)
	good    = color.New(color.FgGreen)
	bad     = color.New(color.FgRed)
)

func render(w io.Writer, student *model.Student, history []model.ExamResult, report *service.AnalysisReport) {
	heading.Fprintf(w, "\n=== %s (%s) ===\n", student.Name, student.StudentNumber)
	fmt.Fprintf(w, "Analysed exams: %d  Generated: %s\n", report.ExamCount, report.GeneratedAt.Format("2006-01-02 15:04"))

	section.Fprintln(w, "\nRecent Exams")
	exams := tablewriter.NewWriter(w)
	exams.SetHeader([]string{"Date", "Exam", "Type", "Score"})
	for _, r := range history {
		exams.Append([]string{
			r.ExamDate.Format(model.DateLayout),
			r.ExamName,
			r.ExamType,
			strconv.FormatFloat(r.TotalScore, 'f', 2, 64),
		})
	}
	exams.Render()

	if len(report.Trends) > 0 {
		section.Fprintln(w, "\nSubject Trends")
		trends := tablewriter.NewWriter(w)
		trends.SetHeader([]string{"Subject", "Trend", "Change"})
		for _, t := range report.Trends {
			trends.Append([]string{t.Subject, trendLabel(t.Trend), fmt.Sprintf("%+.2f", t.Change)})
		}
		trends.Render()
	}

	list(w, "Strengths", report.Strengths, good)
	list(w, "Weaknesses", report.Weaknesses, bad)
	list(w, "Empty Answer Warnings", report.EmptyAnswerWarnings, bad)
	list(w, "Recommendations", report.Recommendations, nil)

	if len(report.StudyPlan) > 0 {
		section.Fprintln(w, "\nStudy Plan")
		plan := tablewriter.NewWriter(w)
		plan.SetHeader([]string{"Subject", "Topic", "Priority", "Hours"})
		for _, item := range report.StudyPlan {
			plan.Append([]string{item.Subject, item.Topic, string(item.Priority), strconv.Itoa(item.EstimatedHours)})
		}
		plan.Render()
	}
}

func list(w io.Writer, title string, items []string, c *color.Color) {
	if len(items) == 0 {
		return
	}
	section.Fprintln(w, "\n"+title)
	for _, item := range items {
		if c != nil {
			c.Fprintln(w, "  • "+item)
		} else {
			fmt.Fprintln(w, "  • "+item)
		}
	}
}

func trendLabel(t analysis.Trend) string {
	switch t {
	case analysis.TrendIncreasing:
		return good.Sprint("↑ yükseliyor")
	case analysis.TrendDecreasing:
		return bad.Sprint("↓ düşüyor")
	}
	return "→ stabil"
}

package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/juju/errors"

	"github.com/willfong/classroom-sql/internal/database"
	"github.com/willfong/classroom-sql/internal/exercise"
	"github.com/willfong/classroom-sql/internal/export"
	"github.com/willfong/classroom-sql/internal/ui"
)

// stepReporter prints every step of an exercise run as it completes and,
// with an export writer, saves every query result to it.
type stepReporter struct {
	u   *ui.UI
	out *export.Writer

	current string
	// err is the first export failure; later results are not saved
	err error
}

func (r *stepReporter) Start(e *exercise.Exercise) {
	r.current = e.Name
	r.u.Println()
	r.u.Println(r.u.Header(e.Title))
	if e.Description != "" {
		r.u.Println(r.u.Muted(e.Description))
	}
}

func (r *stepReporter) Step(index int, s exercise.Step, res exercise.StepResult) {
	r.u.Println()
	title := fmt.Sprintf("%d. %s", index+1, s.Title)

	switch {
	case res.Rejected:
		r.u.Println(r.u.Bold(title))
		msg := database.ViolationMessage(res.Err)
		if res.Unexpected(s) {
			r.u.Println(r.u.Error("unexpectedly refused: " + msg))
		} else {
			r.u.Println(r.u.Rejected(msg))
		}
	case res.Err != nil:
		r.u.Println(r.u.Bold(title))
		r.u.Println(r.u.Error(res.Err.Error()))
	case s.Expect == exercise.ExpectRejected:
		r.u.Println(r.u.Bold(title))
		r.u.Println(r.u.Error("expected the database to refuse this step"))
	case s.Kind == exercise.StepQuery:
		r.u.Println(r.u.Bold(title) + " " + r.u.Muted(fmt.Sprintf("(%s, %s)",
			humanize.Comma(int64(res.Rows.Len())), plural(int64(res.Rows.Len()), "row", "rows"))))
		r.u.Println(r.u.Table(res.Rows))
		r.save(title, res.Rows)
	default:
		r.u.Println(r.u.Bold(title))
		r.u.Println(r.u.Success(fmt.Sprintf("%s %s affected", humanize.Comma(res.Affected), plural(res.Affected, "row", "rows"))))
	}
}

func (r *stepReporter) Finish(e *exercise.Exercise, sum exercise.Summary) {
	status := "Success"
	if sum.Unexpected > 0 {
		status = fmt.Sprintf("Failed (%d unexpected)", sum.Unexpected)
	}
	r.u.Println(r.u.SummaryBox(e.Name, summaryItems(sum, status)))
}

func (r *stepReporter) save(title string, rs *database.ResultSet) {
	if r.out == nil || r.err != nil {
		return
	}
	if err := r.out.WriteResult(r.current+": "+title, rs); err != nil {
		r.err = errors.Annotatef(err, "save %s", r.current)
	}
}

func summaryItems(sum exercise.Summary, status string) []ui.KV {
	return []ui.KV{
		{Key: "Steps", Value: humanize.Comma(int64(sum.Steps))},
		{Key: "Queries", Value: humanize.Comma(int64(sum.Queries))},
		{Key: "Statements", Value: humanize.Comma(int64(sum.Statements))},
		{Key: "Rows", Value: humanize.Comma(int64(sum.Rows))},
		{Key: "Rejected", Value: humanize.Comma(int64(sum.Rejected))},
		{Key: "Duration", Value: sum.Duration.Round(time.Millisecond).String()},
		{Key: "Status", Value: status},
	}
}

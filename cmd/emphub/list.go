package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/five82/emphub/internal/app"
	"github.com/five82/emphub/internal/dashboard"
	"github.com/five82/emphub/internal/model"
)

var listKinds = map[string]dashboard.Tab{
	"leaves":      dashboard.Leaves,
	"timesheets":  dashboard.Timesheets,
	"allocations": dashboard.Allocations,
}

func addList(topLevel *cobra.Command, opts *rootOptions) {
	var query string
	cmd := &cobra.Command{
		Use:   "list leaves|timesheets|allocations",
		Short: "Print one collection as a table.",
		Example: `
emphub list leaves
emphub list timesheets --query apollo
`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"leaves", "timesheets", "allocations"},
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, ok := listKinds[strings.ToLower(args[0])]
			if !ok {
				return fmt.Errorf("unknown collection %q (want leaves, timesheets or allocations)", args[0])
			}
			return withEnv(opts, func(env *app.Env) error {
				dash, err := env.Dashboard()
				if err != nil {
					return err
				}
				dash.Reload(cmd.Context(), tab)
				if status := dash.Status(tab); status != "" {
					_, _ = color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), status)
				}
				dash.SetQuery(query)
				printCollection(cmd.OutOrStdout(), dash, tab)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "only show records whose searchable fields contain this text")
	topLevel.AddCommand(cmd)
}

var statusColors = map[string]*color.Color{
	model.StatusPending:  color.New(color.FgYellow),
	model.StatusApproved: color.New(color.FgGreen),
	model.StatusRejected: color.New(color.FgRed),
}

func colorStatus(status string) string {
	if c, ok := statusColors[status]; ok {
		return c.Sprint(status)
	}
	return status
}

// printCollection writes the filtered view of tab as a table.
func printCollection(w io.Writer, dash *dashboard.Dashboard, tab dashboard.Tab) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40

	var rows int
	switch tab {
	case dashboard.Leaves:
		tbl.AddRow(bold.Sprint("TYPE"), bold.Sprint("START"), bold.Sprint("END"), bold.Sprint("DAYS"), bold.Sprint("STATUS"), bold.Sprint("REASON"))
		for _, l := range dash.FilteredLeaves() {
			tbl.AddRow(l.Type, l.StartDate, l.EndDate, strconv.Itoa(l.Days), colorStatus(l.Status), l.Reason)
			rows++
		}
	case dashboard.Timesheets:
		tbl.AddRow(bold.Sprint("DATE"), bold.Sprint("PROJECT"), bold.Sprint("HOURS"), bold.Sprint("STATUS"), bold.Sprint("DESCRIPTION"))
		for _, ts := range dash.FilteredTimesheets() {
			tbl.AddRow(ts.Date, ts.Project, model.FormatHours(ts.HoursWorked), colorStatus(ts.Status), ts.Description)
			rows++
		}
	case dashboard.Allocations:
		tbl.AddRow(bold.Sprint("PROJECT"), bold.Sprint("ROLE"), bold.Sprint("START"), bold.Sprint("END"), bold.Sprint("ALLOCATION"))
		for _, a := range dash.FilteredAllocations() {
			tbl.AddRow(a.ProjectName, a.Role, a.StartDate, a.EndDate, a.Allocation)
			rows++
		}
	}

	if rows == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(w, "none")
		return
	}
	fmt.Fprintln(w, tbl)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/view"
)

func (a *app) readings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("readings", flag.ExitOnError)
	uid := fs.String("uid", "", "device uid")
	start := fs.String("start", "", "start date YYYY-MM-DD")
	end := fs.String("end", "", "end date YYYY-MM-DD")
	pageNum := fs.Int("page", 1, "page number")
	sortDir := fs.String("sort", "asc", "sort direction (asc|desc)")
	exportCSV := fs.Bool("export-csv", false, "export the filter server-side as CSV")
	exportXLSX := fs.Bool("export-xlsx", false, "export the loaded page locally as XLSX")
	fs.Parse(args)

	page := view.NewReadingsPage(a.deps)
	params := view.ReadingsParams{
		UID:       *uid,
		StartDate: *start,
		EndDate:   *end,
		Page:      *pageNum,
		SortDir:   *sortDir,
	}

	switch {
	case *exportCSV:
		dest, err := page.ExportCSV(ctx, params)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, "saved", dest)
		return nil
	case *exportXLSX:
		dest, err := page.ExportXLSX(ctx, params)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, "saved", dest)
		return nil
	}

	v, err := page.Load(ctx, params)
	if err != nil {
		return err
	}

	if *uid == "" {
		fmt.Fprintln(a.out, "pick a device with -uid:")
		rows := make([][]string, 0, len(v.Devices))
		for _, opt := range v.Devices {
			owner := opt.Owner
			if owner == "" {
				owner = "-"
			}
			rows = append(rows, []string{opt.UID, opt.Name, owner})
		}
		renderTable(a.out, []string{"UID", "Name", "Owner"}, rows)
		return nil
	}

	fmt.Fprintf(a.out, "total records: %d (page %d/%d)\n", v.Total, v.Page, v.TotalPages)
	rows := make([][]string, 0, len(v.Rows))
	for _, item := range v.Rows {
		rows = append(rows, sensorRow(item))
	}
	renderTable(a.out, []string{"Timestamp", "Temp", "pH", "DO", "TDS", "Ammonia", "Salinity"}, rows)
	return nil
}

func sensorRow(item domain.SensorData) []string {
	ts := item.Timestamp
	formatted := view.FormatTimestamp(&ts)
	return []string{
		formatted,
		strconv.FormatFloat(item.Suhu, 'f', 2, 64),
		strconv.FormatFloat(item.Ph, 'f', 2, 64),
		strconv.FormatFloat(item.Do, 'f', 2, 64),
		strconv.FormatFloat(item.Tds, 'f', 2, 64),
		strconv.FormatFloat(item.Ammonia, 'f', 2, 64),
		strconv.FormatFloat(item.Salinitas, 'f', 2, 64),
	}
}

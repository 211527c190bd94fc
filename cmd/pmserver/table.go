package main

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/tbourn/go-pm-backend/internal/domain"
	"github.com/tbourn/go-pm-backend/internal/integrations"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range headers {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func settingsTable(rows []domain.IntegrationSettings) string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		enabled := "no"
		if r.IsEnabled {
			enabled = "yes"
		}
		out = append(out, []string{r.ServiceName, enabled, r.ModeLabel(), r.UpdatedAt.Format("2006-01-02 15:04:05")})
	}
	return renderTable([]string{"Service", "Enabled", "Mode", "Updated"}, out, nil)
}

// resultTable lists a notification descriptor as sorted key/value rows.
func resultTable(res integrations.Result) string {
	fields := res.Fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		v := fields[k]
		if v == nil {
			v = "-"
		}
		rows = append(rows, []string{k, fmt.Sprint(v)})
	}
	return renderTable([]string{"Field", "Value"}, rows, nil)
}

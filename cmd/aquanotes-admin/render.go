package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// renderTable 用 tabwriter 打印一张表
func renderTable(w io.Writer, headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

func renderKV(w io.Writer, pairs [][2]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, pair := range pairs {
		fmt.Fprintf(tw, "%s\t%s\n", pair[0], pair[1])
	}
	tw.Flush()
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// activeLabel is_active 为 nil 时按激活处理
func activeLabel(isActive *bool) string {
	if isActive != nil && !*isActive {
		return "inactive"
	}
	return "active"
}

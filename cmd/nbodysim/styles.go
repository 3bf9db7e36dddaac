package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Width(18)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

type field struct {
	label string
	value string
}

func renderPanel(title string, fields []field) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	for _, f := range fields {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(f.label))
		b.WriteString(valueStyle.Render(f.value))
	}
	return boxStyle.Render(b.String())
}

// metricFields renders metrics in name order. Drift metrics above 1% are
// highlighted.
func metricFields(metrics map[string]float64) []field {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]field, len(names))
	for i, name := range names {
		v := metrics[name]
		style := goodStyle
		if strings.HasSuffix(name, "_drift") && v > 0.01 {
			style = warnStyle
		}
		fields[i] = field{label: name, value: style.Render(fmt.Sprintf("%.6g", v))}
	}
	return fields
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/starford/sowilo/internal/filter"
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}

	dateStyle  = lipgloss.NewStyle().Foreground(colorDim)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	tagStyle   = lipgloss.NewStyle().Foreground(colorAccent)
	descStyle  = lipgloss.NewStyle().Foreground(colorDim).PaddingLeft(11)
	countStyle = lipgloss.NewStyle().Bold(true)
)

const descWidth = 80

func printResult(w io.Writer, r filter.Result) error {
	if r.Empty {
		_, err := fmt.Fprintf(w, "%s\n%s\n", dateStyle.Render(filter.NoResults), countStyle.Render(r.Label))
		return err
	}
	for _, a := range r.Items {
		line := dateStyle.Render(a.UpdatedAt[:min(10, len(a.UpdatedAt))]) + " " + titleStyle.Render(a.Title)
		if len(a.Tags) > 0 {
			line += " " + tagStyle.Render("#"+strings.Join(a.Tags, " #"))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if a.Description != "" {
			if _, err := fmt.Fprintln(w, descStyle.Render(truncate(a.Description, descWidth))); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, countStyle.Render(r.Label))
	return err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

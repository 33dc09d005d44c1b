package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/magnuspl/navnetips/internal/domain/query"
	"github.com/magnuspl/navnetips/internal/domain/suggest"
	"github.com/magnuspl/navnetips/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorCyan    = "\033[36m"
	colorMagenta = "\033[35m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorGray    = "\033[90m"
)

// paint wraps s in an ANSI color when color output is enabled.
func paint(color, s string) string {
	if !useColor {
		return s
	}
	return color + s + colorReset
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTags(tags []string) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = paint(colorGreen, "#"+t)
	}
	return strings.Join(parts, " ")
}

// formatRecord renders one record as a single line:
//
//	♥ Astrid  Guddommelig skjønnhet  (Norrønt)  #norrønt #klassisk
func formatRecord(r ports.NameRecord, liked bool) string {
	mark := "  "
	if liked {
		mark = paint(colorMagenta, "♥ ")
	}
	return fmt.Sprintf("  %s%s  %s  %s  %s",
		mark, paint(colorBold, r.Name), r.Meaning,
		paint(colorGray, "("+r.Origin+")"), formatTags(r.Categories))
}

// formatPage formats a listing page with a header line.
//
//	⚡ Guttenavn │ 13 names │ page 1/2
func formatPage(kind ports.Kind, p query.Page[ports.NameRecord]) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s │ %d names │ page %d/%d\n",
		paint(colorBold, "⚡ "+kind.Label()), p.Total, p.Page, max(p.TotalPages, 1)))
	for _, r := range p.Items {
		sb.WriteString(formatRecord(r, false))
		sb.WriteString("\n")
	}
	if p.Total == 0 {
		sb.WriteString(paint(colorGray, "  no names match"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatDetail formats a single name with its kind.
func formatDetail(kind ports.Kind, r ports.NameRecord) string {
	var sb strings.Builder
	sb.WriteString(paint(colorBold, "⚡ "+r.Name) + "\n")
	sb.WriteString(fmt.Sprintf("  Kind:     %s\n", paint(colorCyan, kind.Label())))
	sb.WriteString(fmt.Sprintf("  Meaning:  %s\n", r.Meaning))
	sb.WriteString(fmt.Sprintf("  Origin:   %s\n", r.Origin))
	if len(r.Categories) > 0 {
		sb.WriteString(fmt.Sprintf("  Tags:     %s\n", formatTags(r.Categories)))
	}
	return sb.String()
}

// formatHits formats cross-collection search results.
//
//	⚡ 2 hits for "vakker"
//	  hundenavn  Bella  Vakker
func formatHits(term string, hits []ports.Hit) string {
	var sb strings.Builder
	sb.WriteString(paint(colorBold, fmt.Sprintf("⚡ %d hits for %q", len(hits), term)) + "\n")
	for _, h := range hits {
		sb.WriteString(fmt.Sprintf("  %-10s %s  %s  %s\n",
			paint(colorCyan, h.Kind.Slug()), paint(colorBold, h.Record.Name),
			h.Record.Meaning, paint(colorGray, "("+h.Record.Origin+")")))
	}
	return sb.String()
}

// formatPopular formats a ranked popularity list.
func formatPopular(kind ports.Kind, ranked []ports.RankedName) string {
	var sb strings.Builder
	sb.WriteString(paint(colorBold, "⚡ Popular "+strings.ToLower(kind.Label())) + "\n")
	if len(ranked) == 0 {
		sb.WriteString(paint(colorGray, "  no statistics for this kind") + "\n")
	}
	for _, r := range ranked {
		sb.WriteString(fmt.Sprintf("  %s %s  %s  %s\n",
			paint(colorYellow, fmt.Sprintf("%2d.", r.Rank)), paint(colorBold, r.Name),
			r.Meaning, paint(colorGray, "("+r.Origin+")")))
	}
	return sb.String()
}

// formatLiked formats the resolved favorites list.
func formatLiked(hits []ports.Hit) string {
	var sb strings.Builder
	sb.WriteString(paint(colorBold, fmt.Sprintf("⚡ %d favorites", len(hits))) + "\n")
	for _, h := range hits {
		sb.WriteString(fmt.Sprintf("  %-10s %s  %s\n",
			paint(colorCyan, h.Kind.Slug()), paint(colorMagenta, "♥ "+h.Record.Name), h.Record.Meaning))
	}
	return sb.String()
}

// formatSuggestion formats the record the selector just presented.
//
//	[3/13] Astrid  Guddommelig skjønnhet  (Norrønt)
func formatSuggestion(sel *suggest.Selector, r ports.NameRecord, liked bool) string {
	presented, total := sel.Position()
	return fmt.Sprintf("%s%s", paint(colorGray, fmt.Sprintf("[%d/%d]", presented, total)), formatRecord(r, liked))
}

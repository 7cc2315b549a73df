package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jonwraymond/sitehealth/health"
	"github.com/jonwraymond/sitehealth/runner"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderReport(w io.Writer, format string, rep *runner.Report, tr health.Translator) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep.ToMap(tr))
	case formatText, "":
		return renderReportText(w, rep, tr)
	}
	return fmt.Errorf("unknown format %q (want text or json)", format)
}

func renderReportText(w io.Writer, rep *runner.Report, tr health.Translator) error {
	source := "fresh"
	if rep.Cached {
		source = "cached"
	}
	fmt.Fprintf(w, "Site health: %s (%d critical, %d warning, %d good; %s, generated %s)\n",
		strings.ToUpper(rep.Status.String()),
		rep.Counts.Critical, rep.Counts.Warning, rep.Counts.Good,
		source, rep.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	if len(rep.Groups) == 0 {
		fmt.Fprintln(w, "\nNo results to show.")
		return nil
	}

	tw := newTable(w)
	for _, g := range rep.Groups {
		fmt.Fprintf(tw, "\n%s\t\t\n", tr.Translate(g.Category.Label))
		for _, res := range g.Results {
			fmt.Fprintf(tw, "  [%s]\t%s\t%s\n", strings.ToUpper(res.Status.String()), res.Title, res.Description)
		}
	}
	return tw.Flush()
}

func renderChecks(w io.Writer, checks []health.Check) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "SLUG\tCATEGORY\tTITLE")
	for _, c := range checks {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Slug(), c.Category(), c.Title())
	}
	return tw.Flush()
}

func renderCategories(w io.Writer, categories []health.Category, tr health.Translator) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "SLUG\tLABEL\tORDER\tICON")
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", c.Slug, tr.Translate(c.Label), c.SortOrder, c.Icon)
	}
	return tw.Flush()
}

func renderProviders(w io.Writer, providers []health.ProviderMetadata) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "SLUG\tNAME\tVERSION\tURL")
	for _, p := range providers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Slug, p.Name, p.Version, p.URL)
	}
	return tw.Flush()
}

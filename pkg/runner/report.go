package runner

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"github.com/getstack/cmsdetect/pkg/detect"
	"github.com/getstack/cmsdetect/pkg/storage"
)

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// Report writes analysis results either as JSON or as tables.
func Report(results []*detect.AnalysisResult, asJSON bool, outputFile string) error {
	w, closeFn, err := openOutput(outputFile)
	if err != nil {
		return err
	}
	defer closeFn()

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		for _, res := range results {
			if err := enc.Encode(res); err != nil {
				return err
			}
		}
		return nil
	}

	for _, res := range results {
		renderResult(w, res)
	}
	return nil
}

func renderResult(w io.Writer, res *detect.AnalysisResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(res.Domain)
	if isTerminal() {
		t.SetStyle(table.StyleRounded)
	}

	if res.Error != "" {
		t.AppendRow(table.Row{"Error", res.Error})
		t.AppendRow(table.Row{"Details", res.Details})
		t.Render()
		return
	}

	cms := res.CMSType
	if cms == "" {
		cms = "none detected"
	}
	t.AppendRow(table.Row{"CMS", cms})
	if res.WordPressVersion != "" {
		t.AppendRow(table.Row{"Version", res.WordPressVersion})
	}
	if res.Theme != "" {
		theme := res.Theme
		if res.ThemeInfo != nil && res.ThemeInfo.Name != "" {
			theme = res.ThemeInfo.Name
			if res.ThemeInfo.IsChildTheme {
				theme += " (child of " + res.ThemeInfo.ParentTheme + ")"
			}
		}
		t.AppendRow(table.Row{"Theme", theme})
	}
	if res.PluginCount != "" {
		t.AppendRow(table.Row{"Plugins", res.PluginCount})
	}
	if len(res.Technologies) > 0 {
		t.AppendRow(table.Row{"Technologies", strings.Join(res.Technologies, ", ")})
	}
	if res.Favicon != nil {
		t.AppendRow(table.Row{"Favicon mmh3", res.Favicon.Hash})
	}
	t.Render()

	if len(res.Plugins) > 0 {
		pt := table.NewWriter()
		pt.SetOutputMirror(w)
		if isTerminal() {
			pt.SetStyle(table.StyleRounded)
		}
		pt.AppendHeader(table.Row{"Plugin", "Slug", "Category", "Version"})
		for _, p := range res.Plugins {
			version := p.Version
			if version == "" {
				version = "-"
			}
			pt.AppendRow(table.Row{p.Name, p.Slug, p.Category, version})
		}
		pt.Render()
	}
}

// ReportHistory writes stored records as JSON or a compact table.
func ReportHistory(records []storage.Record, asJSON bool, outputFile string) error {
	w, closeFn, err := openOutput(outputFile)
	if err != nil {
		return err
	}
	defer closeFn()

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	if isTerminal() {
		t.SetStyle(table.StyleRounded)
	}
	t.AppendHeader(table.Row{"When", "Domain", "CMS", "Version", "Theme", "Plugins"})
	for _, r := range records {
		cms := r.CMSType
		if cms == "" {
			if r.Error != "" {
				cms = "error"
			} else {
				cms = "-"
			}
		}
		t.AppendRow(table.Row{
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Domain, cms, orDash(r.WordPressVersion), orDash(r.Theme), orDash(r.PluginCount),
		})
	}
	t.Render()
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

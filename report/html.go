package report

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/abasis-ltd/gtfs.guru/notice"
)

// RenderHTML builds the self-contained HTML report: a hierarchical view
// keyed by severity, then code, then one table of context fields per
// code group. No external assets — every rule is inlined.
func (r *Report) RenderHTML() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\">")
	b.WriteString("<title>GTFS validation report</title>")
	b.WriteString("<style>" + reportCSS + "</style></head><body>")

	fmt.Fprintf(&b, "<h1>GTFS validation report</h1><p>%d errors, %d warnings, %d infos</p>",
		r.Summary.ErrorCount, r.Summary.WarningCount, r.Summary.InfoCount)

	bySeverity := map[notice.Severity][]NoticeGroup{}
	for _, g := range r.Notices {
		bySeverity[g.Severity] = append(bySeverity[g.Severity], g)
	}

	for _, sev := range []notice.Severity{notice.SeverityError, notice.SeverityWarning, notice.SeverityInfo} {
		groups := bySeverity[sev]
		if len(groups) == 0 {
			continue
		}
		sort.Slice(groups, func(i, j int) bool { return groups[i].Code < groups[j].Code })
		fmt.Fprintf(&b, "<h2>%s</h2>", html.EscapeString(string(sev)))
		for _, g := range groups {
			fmt.Fprintf(&b, "<h3>%s <small>(%d)</small></h3>", html.EscapeString(g.Code), g.Total)
			b.WriteString("<table><thead><tr>")
			for _, name := range fieldNamesOf(g.Entries) {
				fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(name))
			}
			b.WriteString("</tr></thead><tbody>")
			for _, ctx := range g.Entries {
				b.WriteString("<tr>")
				for _, name := range fieldNamesOf(g.Entries) {
					v, _ := ctx.Get(name)
					fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(fmt.Sprint(v)))
				}
				b.WriteString("</tr>")
			}
			b.WriteString("</tbody></table>")
		}
	}

	if len(r.SystemErrors) > 0 {
		b.WriteString("<h2>System errors</h2><table><thead><tr><th>validator</th><th>message</th></tr></thead><tbody>")
		for _, e := range r.SystemErrors {
			fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td></tr>", html.EscapeString(e.Validator), html.EscapeString(e.Message))
		}
		b.WriteString("</tbody></table>")
	}

	b.WriteString("</body></html>")
	return b.String()
}

// fieldNamesOf returns the union of context field names across entries,
// in first-seen order, so columns stay stable even when some notices in
// a group omit an optional field.
func fieldNamesOf(entries []notice.Context) []string {
	seen := map[string]bool{}
	var names []string
	for _, ctx := range entries {
		for _, n := range ctx.Names() {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names
}

const reportCSS = `
body{font-family:sans-serif;margin:2rem;color:#222}
h2{border-bottom:2px solid #ccc;padding-bottom:.25rem}
table{border-collapse:collapse;margin-bottom:1.5rem;width:100%}
th,td{border:1px solid #ddd;padding:.25rem .5rem;font-size:.85rem;text-align:left}
th{background:#f4f4f4}
`

package server

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gridironlabs/leaguedash/internal/view"
)

type indexEntry struct {
	Name  string
	Title string
}

type indexData struct {
	Reports []indexEntry
}

type reportData struct {
	Name  string
	Table view.Table
	State view.State
	Note  string
}

type errorData struct {
	Title   string
	Message string
}

// css marks the renderer's own hsl() colors as safe; the template CSS
// filter would otherwise reject the parentheses.
var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"css": func(s string) template.CSS { return template.CSS(s) },
}).Parse(`
{{define "head"}}<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>League Dashboard</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; }
th, td { padding: 0.35rem 0.7rem; border: 1px solid #ccc; text-align: left; }
.note { color: #666; font-size: 0.85rem; }
</style>
</head>
<body>{{end}}

{{define "foot"}}</body></html>{{end}}

{{define "index"}}{{template "head"}}
<h1>League Dashboard</h1>
<ul>
{{range .Reports}}<li><a href="/reports/{{.Name}}">{{.Title}}</a></li>
{{end}}</ul>
{{template "foot"}}{{end}}

{{define "report"}}{{template "head"}}
<h1>{{.Table.Title}}</h1>
{{if .Note}}<p class="note">{{.Note}}</p>{{end}}
<form method="get">
<input type="text" name="q" placeholder="Search" value="{{.State.Search}}">
<input type="text" name="pos" placeholder="Position" value="{{.State.Position}}">
<input type="text" name="sort" placeholder="Sort by" value="{{.State.SortKey}}">
<button type="submit">Apply</button>
</form>
<table>
<thead><tr>{{range .Table.Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Table.Rows}}<tr>{{range .}}<td{{if .Color}} style="background-color: {{css .Color}}"{{end}}>{{.Text}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
{{template "foot"}}{{end}}

{{define "error"}}{{template "head"}}
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
{{template "foot"}}{{end}}
`))

func renderPage(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("Error rendering page", "template", name, "error", err)
	}
}

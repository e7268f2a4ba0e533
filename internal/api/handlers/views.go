package handlers

import (
	"bytes"
	"delivery-dispatch-service/internal/ports"
	"html/template"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	linkColumn  = "Map Link"
	routeColumn = "Route Number"
)

var tableTemplate = template.Must(template.New("table").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
table { font-size: 12px; border-collapse: collapse; }
th, td { padding: 2px 4px; border: 1px solid #ddd; }
.route-break { border-top: 2px solid #ccc; }
</style>
</head>
<body>
<table>
<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
{{- if .Break}}
<tr class="route-break">{{range $.Header}}<td>&nbsp;</td>{{end}}</tr>
{{- end}}
<tr>{{range .Cells}}<td>{{if .Link}}<a href="{{.Link}}" target="_blank">View Route</a>{{else}}{{.Text}}{{end}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

type tableCell struct {
	Text string
	Link string
}

type tableRow struct {
	Break bool
	Cells []tableCell
}

type tablePage struct {
	Title  string
	Header []string
	Rows   []tableRow
}

// ViewHandler renders the raw request file and the exported routes as
// browsable HTML tables.
type ViewHandler struct {
	Requests ports.TableReader
	Routes   ports.TableReader
}

func (h *ViewHandler) DataSource(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	header, rows, err := h.Requests.ReadTable(r.Context())
	if err != nil {
		writeSourceError(w, r, "request file", err)
		return
	}

	page := tablePage{Title: "Delivery requests", Header: header}
	for _, row := range rows {
		page.Rows = append(page.Rows, tableRow{Cells: textCells(row)})
	}
	writeHTML(w, r, page)
}

// RouteTable links each map URL and separates consecutive routes with a
// blank row.
func (h *ViewHandler) RouteTable(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	header, rows, err := h.Routes.ReadTable(r.Context())
	if err != nil {
		writeSourceError(w, r, "routes file", err)
		return
	}

	linkCol, routeCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case linkColumn:
			linkCol = i
		case routeColumn:
			routeCol = i
		}
	}

	page := tablePage{Title: "Optimized routes", Header: header}
	prevRoute := ""
	for _, row := range rows {
		cells := textCells(row)
		if linkCol >= 0 && linkCol < len(cells) && cells[linkCol].Text != "" {
			cells[linkCol] = tableCell{Link: cells[linkCol].Text}
		}

		br := false
		if routeCol >= 0 && routeCol < len(row) {
			br = prevRoute != "" && row[routeCol] != prevRoute
			prevRoute = row[routeCol]
		}
		page.Rows = append(page.Rows, tableRow{Break: br, Cells: cells})
	}
	writeHTML(w, r, page)
}

func textCells(row []string) []tableCell {
	cells := make([]tableCell, 0, len(row))
	for _, v := range row {
		cells = append(cells, tableCell{Text: v})
	}
	return cells
}

func writeHTML(w http.ResponseWriter, r *http.Request, page tablePage) {
	var buf bytes.Buffer
	if err := tableTemplate.Execute(&buf, page); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("render table failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

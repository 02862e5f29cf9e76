package http

import (
	"html/template"
	"net/http"

	"whale-watcher/internal/dto"
	"whale-watcher/pkg/utils"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupDashboard(base *echo.Group) {
	v1 := base.Group("/v1/dashboard")
	{
		v1.GET("", h.GetDashboard)
	}
}

// GetDashboard serves the latest published snapshot verbatim. There is no
// recomputation on read; the endpoint is a view over the last run.
func (h *HttpAPIHandler) GetDashboard(c echo.Context) error {
	snapshot, err := h.repo.SnapshotRepo.Load()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	if snapshot == nil {
		return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "no snapshot published yet", nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("dashboard snapshot", snapshot))
}

var dashboardTemplate = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"pct":    utils.FormatPercentage,
	"float":  utils.FormatFloat,
	"days":   utils.FormatInt,
	"pretty": utils.PrettyDate,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<title>Whale Tech Tracker</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
tr.critical td { background: #ffe0e0; }
tr.warning td { background: #fff3d6; }
tr.stale td { color: #999; }
</style>
</head>
<body>
<h2>🐋 Whale Tech Tracker</h2>
<p>Generated at {{pretty .GeneratedAt}}</p>
<table>
<tr><th>Ticker</th><th>Price</th><th>RSI</th><th>Vol Ratio</th><th>1D</th><th>Trend</th><th>Signal</th><th>Gain/Loss</th><th>Held</th><th>Notes</th></tr>
{{- range $symbol := .Order}}
{{- with index $.Symbols $symbol}}
<tr class="{{.Severity}}{{if .Stale}} stale{{end}}">
<td><b>{{$symbol}}</b></td>
<td>${{printf "%.2f" .Price}}</td>
<td>{{printf "%.0f" .RSI}}</td>
<td>{{printf "%.1f" .VolumeRatio}}x</td>
<td>{{pct .PctChange1D}}</td>
<td>{{.Trend}}</td>
<td>{{.Signal}}</td>
<td>{{with .GainLossPct}}{{pct .}}{{end}}</td>
<td>{{days .HoldingDays}}</td>
<td>{{.Notes}}</td>
</tr>
{{- end}}
{{- end}}
</table>
</body>
</html>
`))

// DashboardPage renders the snapshot as a human-readable table.
func (h *HttpAPIHandler) DashboardPage(c echo.Context) error {
	snapshot, err := h.repo.SnapshotRepo.Load()
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	if snapshot == nil {
		return c.HTML(http.StatusOK, "<html><body><p>No snapshot published yet. Trigger a run first.</p></body></html>")
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return dashboardTemplate.Execute(c.Response(), snapshot)
}

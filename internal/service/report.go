package service

import (
	"fmt"
	"strings"
	"time"

	"whale-watcher/internal/model"
	"whale-watcher/pkg/utils"
)

// ReportBuilder composes the three notification classes. It never decides
// delivery; it only answers whether a class has content and what that
// content is.
type ReportBuilder struct{}

func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{}
}

// Immediate composes the critical-signals-only alert. Returns false when
// nothing critical fired this run.
func (b *ReportBuilder) Immediate(generatedAt time.Time, critical []model.Signal, snapshot *model.DashboardSnapshot) (Message, bool) {
	if len(critical) == 0 {
		return Message{}, false
	}

	sb := strings.Builder{}
	for _, signal := range critical {
		report, ok := snapshot.Symbols[signal.Symbol]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("🚨 <b>%s</b>: %s at $%.2f", signal.Symbol, signal.Kind, report.Price))
		if signal.Notes != "" {
			sb.WriteString(" — " + signal.Notes)
		}
		sb.WriteString("\n")
	}

	return Message{
		Subject: "MARKET ALERT: " + utils.PrettyDate(generatedAt),
		Body:    sb.String(),
	}, true
}

// Digest composes the routine twice-daily report covering every symbol
// with a non-neutral signal. Returns false when the whole board is
// neutral.
func (b *ReportBuilder) Digest(snapshot *model.DashboardSnapshot) (Message, bool) {
	sb := strings.Builder{}
	sb.WriteString("<html><body>\n")
	sb.WriteString(fmt.Sprintf("<h2>🐋 Whale Tech Tracker: %s</h2>\n<hr>\n", utils.PrettyDate(snapshot.GeneratedAt)))
	sb.WriteString(`<table border="1" cellpadding="5" cellspacing="0">` + "\n")
	sb.WriteString("<tr><th>Ticker</th><th>Price</th><th>Vol Ratio</th><th>RSI</th><th>Signal</th><th>Notes</th></tr>\n")

	rows := 0
	for _, symbol := range snapshot.Order {
		report, ok := snapshot.Symbols[symbol]
		if !ok || report.Signal == model.SignalNeutral {
			continue
		}
		color := "black"
		switch report.Severity {
		case model.SeverityCritical:
			color = "red"
		case model.SeverityWarning:
			color = "orange"
		}
		sb.WriteString(fmt.Sprintf(
			"<tr><td><b>%s</b></td><td>$%.2f</td><td>%.1fx</td><td>%.0f</td><td style=\"color:%s\"><b>%s</b></td><td>%s</td></tr>\n",
			symbol, report.Price, report.VolumeRatio, report.RSI, color, report.Signal, report.Notes,
		))
		rows++
	}

	if rows == 0 {
		return Message{}, false
	}

	sb.WriteString("</table>\n<hr><p><i>Automated agent report</i></p></body></html>\n")
	return Message{
		Subject: "Whale Tech Tracker: " + utils.PrettyDate(snapshot.GeneratedAt),
		Body:    sb.String(),
	}, true
}

// Weekly composes the aggregate performance summary over owned positions.
// Returns false when nothing is owned.
func (b *ReportBuilder) Weekly(snapshot *model.DashboardSnapshot) (Message, bool) {
	sb := strings.Builder{}
	sb.WriteString("<html><body>\n")
	sb.WriteString(fmt.Sprintf("<h2>📈 Weekly Performance: %s</h2>\n<hr>\n", utils.PrettyDate(snapshot.GeneratedAt)))
	sb.WriteString(`<table border="1" cellpadding="5" cellspacing="0">` + "\n")
	sb.WriteString("<tr><th>Ticker</th><th>Price</th><th>Gain/Loss</th><th>Held</th><th>Phase</th></tr>\n")

	owned := 0
	var totalGainLossPct float64
	for _, symbol := range snapshot.Order {
		report, ok := snapshot.Symbols[symbol]
		if !ok || report.GainLossPct == nil {
			continue
		}
		phase := ""
		if report.Phase != nil {
			phase = *report.Phase
		}
		holdingDays := 0
		if report.HoldingDays != nil {
			holdingDays = *report.HoldingDays
		}
		sb.WriteString(fmt.Sprintf(
			"<tr><td><b>%s</b></td><td>$%.2f</td><td>%s</td><td>%d days</td><td>%s</td></tr>\n",
			symbol, report.Price, utils.FormatPercentage(*report.GainLossPct), holdingDays, phase,
		))
		totalGainLossPct += *report.GainLossPct
		owned++
	}

	if owned == 0 {
		return Message{}, false
	}

	sb.WriteString("</table>\n")
	sb.WriteString(fmt.Sprintf("<p>Average gain/loss across %d positions: <b>%s</b></p>\n",
		owned, utils.FormatPercentage(totalGainLossPct/float64(owned))))
	sb.WriteString("<hr><p><i>Automated agent report</i></p></body></html>\n")

	return Message{
		Subject: "Weekly Performance Summary: " + utils.PrettyDate(snapshot.GeneratedAt),
		Body:    sb.String(),
	}, true
}

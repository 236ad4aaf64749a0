// utils/report.go
package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/nirmaantech/portal_backend/models"
)

// ActivityReportData is everything the printable daily report needs.
type ActivityReportData struct {
	AgentName       string
	AgentID         string
	ReportDate      string
	GeneratedAt     string
	TotalCalls      int
	TalkTimeMinutes int
	TalkTimeSeconds int
	Leads           []models.Lead
}

var reportTemplate = template.Must(template.New("activityReport").Parse(`<html>
<head>
<title>Performance &amp; Detailed History Report - {{.AgentName}}</title>
<style>
body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; padding: 40px; color: #333; background: #fff; }
.header { border-bottom: 3px solid #1e40af; padding-bottom: 20px; margin-bottom: 30px; display: flex; justify-content: space-between; align-items: flex-end; }
h1 { color: #1e40af; margin: 0; font-size: 28px; }
.meta { font-size: 14px; color: #666; margin-top: 5px; }
.stats-grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 20px; margin-bottom: 40px; }
.stat-box { background: #f8f9fa; padding: 25px; border-radius: 12px; text-align: center; border: 1px solid #e9ecef; }
.stat-val { font-size: 32px; font-weight: bold; color: #1e40af; margin-bottom: 8px; }
.stat-label { font-size: 12px; color: #666; text-transform: uppercase; font-weight: 600; }
h2 { font-size: 20px; margin-bottom: 20px; color: #333; border-left: 5px solid #1e40af; padding-left: 15px; }
.lead-section { margin-bottom: 35px; border: 1px solid #e2e8f0; border-radius: 10px; overflow: hidden; page-break-inside: avoid; }
.lead-header { background: #f1f5f9; padding: 12px 20px; border-bottom: 1px solid #e2e8f0; display: flex; justify-content: space-between; }
.lead-title { font-weight: bold; font-size: 16px; color: #1e293b; }
.lead-status { background: #fff; border-radius: 4px; font-size: 12px; font-weight: bold; color: #475569; padding: 4px 8px; border: 1px solid #cbd5e1; }
.history-table { width: 100%; border-collapse: collapse; font-size: 13px; }
.history-table th { background: #fff; border-bottom: 2px solid #f1f5f9; text-align: left; padding: 10px 20px; color: #64748b; font-weight: 600; text-transform: uppercase; font-size: 11px; }
.history-table td { padding: 12px 20px; border-bottom: 1px solid #f1f5f9; vertical-align: top; color: #334155; }
.footer { margin-top: 60px; text-align: center; font-size: 11px; color: #94a3b8; border-top: 1px solid #e2e8f0; padding-top: 20px; }
</style>
</head>
<body>
<div class="header">
<div>
<h1>Daily Activity Report</h1>
<div class="meta">Agent: <strong>{{.AgentName}}</strong> (ID: {{.AgentID}})</div>
</div>
<div class="meta">Report Date: {{.ReportDate}}</div>
</div>
<div class="stats-grid">
<div class="stat-box"><div class="stat-val">{{.TotalCalls}}</div><div class="stat-label">Total Interactions</div></div>
<div class="stat-box"><div class="stat-val">{{.TalkTimeMinutes}}m {{.TalkTimeSeconds}}s</div><div class="stat-label">Total Effective Talk Time</div></div>
<div class="stat-box"><div class="stat-val">{{len .Leads}}</div><div class="stat-label">Active Leads Worked</div></div>
</div>
<h2>Detailed Call Logs &amp; Follow-ups</h2>
{{if .Leads}}{{range .Leads}}
<div class="lead-section">
<div class="lead-header">
<span class="lead-title">{{.CustomerName}} <span style="font-weight:normal; color:#64748b; font-size:14px;">({{.CustomerPhone}})</span></span>
<span class="lead-status">{{.CurrentStatus}}</span>
</div>
<table class="history-table">
<thead><tr><th width="15%">Date</th><th width="15%">Logged By</th><th width="15%">Outcome</th><th width="10%">Eff. Duration</th><th width="45%">Comments / Notes</th></tr></thead>
<tbody>
{{if .ContactHistory}}{{range .ContactHistory}}
<tr><td>{{.CallDate}}</td><td>{{.LoggedBy}}</td><td><strong>{{.Status}}</strong></td><td>{{.CallTimeSeconds}}s</td><td>{{.Comments}}</td></tr>
{{end}}{{else}}<tr><td colspan="5" style="text-align:center; color:#999; padding: 20px;">No history recorded yet.</td></tr>{{end}}
</tbody>
</table>
</div>
{{end}}{{else}}<p style="text-align:center; color:#666; font-style:italic;">No leads assigned or worked on yet.</p>{{end}}
<div class="footer">Generated via NirmaanTech Portal System &bull; {{.GeneratedAt}}</div>
</body>
</html>`))

// RenderActivityReport renders the printable HTML report for an agent's
// leads and call metrics.
func RenderActivityReport(agentName, agentID string, leads []models.Lead, totalCalls, totalTalkTimeSeconds int, now time.Time) (string, error) {
	data := ActivityReportData{
		AgentName:       agentName,
		AgentID:         agentID,
		ReportDate:      now.Format("02/01/2006"),
		GeneratedAt:     now.Format("02/01/2006, 15:04:05"),
		TotalCalls:      totalCalls,
		TalkTimeMinutes: totalTalkTimeSeconds / 60,
		TalkTimeSeconds: totalTalkTimeSeconds % 60,
		Leads:           leads,
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}

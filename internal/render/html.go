package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"engineering-sync/internal/model"
)

// BulletinData feeds the per-recipient email template.
type BulletinData struct {
	Date           string
	Categories     []model.Category
	TotalTasks     int
	ManageURL      string
	UnsubscribeURL string
}

// DashboardData feeds the live dashboard page.
type DashboardData struct {
	Date        string
	Categories  []model.Category
	TotalTasks  int
	GeneratedAt string
}

var bulletinTmpl = template.Must(template.New("bulletin").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 720px; margin: 0 auto; color: #1f2430;">
  <h1 style="border-bottom: 2px solid #2c5aa0; padding-bottom: 8px;">Engineering Bulletin</h1>
  <p style="color: #667085;">{{.Date}} &middot; {{.TotalTasks}} active tasks across {{len .Categories}} streams</p>
  {{range .Categories}}
  <div style="margin: 24px 0;">
    <h2 style="color: #2c5aa0; margin-bottom: 4px;">{{.CategoryName}}</h2>
    <p>{{.CategorySummary}}</p>
    {{if .Tasks}}
    <ul style="padding-left: 20px;">
      {{range .Tasks}}
      <li style="margin-bottom: 10px;">
        <strong>{{.Subject}}</strong>
        <span style="color: #667085;">[{{.Priority}} / {{.Status}} / {{.AssigneeName}}]</span>
        <br>{{.SummarizedComments}}
      </li>
      {{end}}
    </ul>
    {{end}}
  </div>
  {{end}}
  <hr style="border: none; border-top: 1px solid #e4e7ec;">
  <p style="font-size: 12px; color: #98a2b3;">
    <a href="{{.ManageURL}}">Manage subscriptions</a> &middot;
    <a href="{{.UnsubscribeURL}}">Unsubscribe</a>
  </p>
</body>
</html>
`))

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Engineering Sync Dashboard</title>
</head>
<body style="font-family: Arial, sans-serif; max-width: 960px; margin: 0 auto; color: #1f2430;">
  <h1>Engineering Sync Dashboard</h1>
  <p style="color: #667085;">{{.Date}} &middot; {{.TotalTasks}} active tasks &middot; generated {{.GeneratedAt}}</p>
  {{range .Categories}}
  <section style="margin: 24px 0; border: 1px solid #e4e7ec; border-radius: 8px; padding: 16px;">
    <h2 style="margin-top: 0;">{{.CategoryName}} <small style="color: #98a2b3;">#{{.CategoryID}}</small></h2>
    <p>{{.CategorySummary}}</p>
    {{if .Tasks}}
    <table style="width: 100%; border-collapse: collapse;">
      <tr style="text-align: left; border-bottom: 1px solid #e4e7ec;">
        <th>Task</th><th>Priority</th><th>Status</th><th>Assignee</th><th>Recent Activity</th>
      </tr>
      {{range .Tasks}}
      <tr style="border-bottom: 1px solid #f2f4f7;">
        <td>{{.Subject}}</td>
        <td>{{.Priority}}</td>
        <td>{{.Status}}</td>
        <td>{{.AssigneeName}}</td>
        <td>{{.SummarizedComments}}</td>
      </tr>
      {{end}}
    </table>
    {{else}}
    <p style="color: #98a2b3;">No active tasks.</p>
    {{end}}
  </section>
  {{end}}
</body>
</html>
`))

var manageTmpl = template.Must(template.New("manage").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Manage Your Subscriptions</title>
</head>
<body style="font-family: Arial, sans-serif; max-width: 640px; margin: 0 auto; color: #1f2430;">
  <h1>Manage Your Subscriptions</h1>
  <p style="color: #667085;">{{.Email}}</p>
  <form method="POST" action="/save-subscriptions">
    <input type="hidden" name="token" value="{{.Token}}">
    {{range .Categories}}
    <label style="display: block; margin: 8px 0;">
      <input type="checkbox" name="category_ids" value="{{.ID}}"{{if .Checked}} checked{{end}}>
      {{.Name}}
    </label>
    {{end}}
    <button type="submit" style="margin-top: 16px; padding: 8px 24px;">Save</button>
  </form>
  <p style="font-size: 12px; color: #98a2b3;">Leaving every box unchecked subscribes you to all streams.</p>
</body>
</html>
`))

// ManageOption is one checkbox on the manage page.
type ManageOption struct {
	ID      int
	Name    string
	Checked bool
}

// ManageData feeds the subscription management page.
type ManageData struct {
	Email      string
	Token      string
	Categories []ManageOption
}

// Bulletin renders the personalized email body.
func Bulletin(data BulletinData) (model.BulletinContent, error) {
	var buf bytes.Buffer
	if err := bulletinTmpl.Execute(&buf, data); err != nil {
		return model.BulletinContent{}, fmt.Errorf("render bulletin: %w", err)
	}
	return model.BulletinContent{Content: buf.String(), TotalTasks: data.TotalTasks}, nil
}

// Dashboard renders the live dashboard page.
func Dashboard(data DashboardData) (string, error) {
	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render dashboard: %w", err)
	}
	return buf.String(), nil
}

// Manage renders the subscription management form.
func Manage(data ManageData) (string, error) {
	var buf bytes.Buffer
	if err := manageTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render manage page: %w", err)
	}
	return buf.String(), nil
}

// DateStamp formats t the way broadcast subjects expect.
func DateStamp(t time.Time) string {
	return t.Format("2006-01-02")
}

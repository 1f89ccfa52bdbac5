package services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"dispatch/config"
	"dispatch/models"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// GatePassNotifier is told about every issued gate pass.
type GatePassNotifier interface {
	NotifyGatePass(ctx context.Context, indent models.Indent) error
}

type noopNotifier struct{}

func (noopNotifier) NotifyGatePass(context.Context, models.Indent) error { return nil }

const gatePassTemplate = `<h2>Gate pass {{gp_number}} issued</h2>
<p>Indent <b>{{indent_no}}</b> for {{party_name}} has left {{plant_name}}.</p>
<table>
<tr><th>Vehicle</th><td>{{vehicle_number}}</td></tr>
<tr><th>Type</th><td>{{gate_pass_type}}</td></tr>
<tr><th>Commodity</th><td>{{commodity_type}}</td></tr>
<tr><th>Net weight</th><td>{{net_weight}} ({{net_weight_quintal}} qtl)</td></tr>
<tr><th>Packets</th><td>{{total_packets}}</td></tr>
<tr><th>Driver</th><td>{{driver_name}} {{driver_number}}</td></tr>
<tr><th>Date</th><td>{{date}}</td></tr>
</table>`

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService mails plain-text gate pass notices over SMTP.
type EmailService struct {
	cfg      config.SMTPConfig
	sendMail sendMailFunc
}

// NewGatePassNotifier returns an SMTP notifier, or a no-op one when SMTP is
// not configured.
func NewGatePassNotifier(cfg config.SMTPConfig) GatePassNotifier {
	if !cfg.Enabled() {
		return noopNotifier{}
	}
	return &EmailService{cfg: cfg, sendMail: smtp.SendMail}
}

func (es *EmailService) NotifyGatePass(ctx context.Context, indent models.Indent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body := convertHTMLToText(processTemplate(gatePassTemplate, gatePassVariables(indent)))
	subject := fmt.Sprintf("Gate pass %s issued for %s", indent.GatePass.Number, indent.IndentNo)
	if err := es.sendEmail(es.cfg.NotifyTo, subject, body); err != nil {
		return fmt.Errorf("failed to send gate pass notice: %w", err)
	}
	log.Infof("gate pass notice for %s sent to %d recipients", indent.IndentNo, len(es.cfg.NotifyTo))
	return nil
}

func gatePassVariables(indent models.Indent) map[string]string {
	gp := indent.GatePass
	return map[string]string{
		"gp_number":          gp.Number,
		"indent_no":          indent.IndentNo,
		"party_name":         indent.PartyName,
		"plant_name":         indent.PlantName,
		"vehicle_number":     firstNonBlank(gp.VehicleNumber, indent.VehicleNo),
		"gate_pass_type":     gp.Type,
		"commodity_type":     indent.CommodityType,
		"net_weight":         gp.NetWeight,
		"net_weight_quintal": gp.NetWeightQuintal,
		"total_packets":      gp.TotalPackets,
		"driver_name":        gp.DriverName,
		"driver_number":      gp.DriverNumber,
		"date":               gp.Date,
	}
}

// processTemplate replaces {{name}} placeholders; values are HTML-escaped.
func processTemplate(templateStr string, variables map[string]string) string {
	result := templateStr
	for key, value := range variables {
		result = strings.ReplaceAll(result, "{{"+key+"}}", html.EscapeString(value))
	}
	return result
}

// convertHTMLToText converts HTML content to plain text for email sending
func convertHTMLToText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var text strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(strings.TrimRight(n.Data, "\n"))
		case html.ElementNode:
			switch n.Data {
			case "p", "div", "br", "h1", "h2", "h3", "tr", "table":
				text.WriteString("\n")
			case "td":
				text.WriteString(": ")
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extractText(child)
		}
	}
	extractText(doc)

	lines := strings.Split(text.String(), "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func (es *EmailService) sendEmail(to []string, subject, body string) error {
	var auth smtp.Auth
	if es.cfg.User != "" {
		auth = smtp.PlainAuth("", es.cfg.User, es.cfg.Password, es.cfg.Host)
	}

	headers := []string{
		"From: " + headerValue(es.cfg.From),
		"To: " + headerValue(strings.Join(to, ", ")),
		"Subject: " + headerValue(subject),
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}
	msg := []byte(strings.Join(headers, "\r\n") + "\r\n")
	return es.sendMail(es.cfg.Host+":"+es.cfg.Port, auth, es.cfg.From, to, msg)
}

// headerValue folds CR and LF to spaces so sheet values cannot start a new
// header line.
func headerValue(v string) string {
	return strings.Join(strings.FieldsFunc(v, func(r rune) bool { return r == '\r' || r == '\n' }), " ")
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if !isBlank(v) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"petromart/internal/config"
	"petromart/pkg/utils"
)

type IMailService interface {
	SendSubscriptionApproved(to, storeName, planName string, endsAt int64) error
	SendSubscriptionExpired(to, storeName string) error
	SendPromotionExpired(to, productName, promotionType string) error
	SendDocumentReviewed(to, docType, status, note string) error
	SendPasswordReset(to, token string) error
}

type smtpMailService struct {
	cfg     config.SMTP
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewSMTPMailService(cfg config.SMTP) IMailService {
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("html").Parse(baseHTMLTemplate)),
		textTpl: template.Must(template.New("text").Parse(plainTextTemplate)),
	}
}

type emailData struct {
	Title     string
	Intro     string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

func (s *smtpMailService) SendSubscriptionApproved(to, storeName, planName string, endsAt int64) error {
	return s.sendTemplated(to, "Your subscription is active", emailData{
		Title: "Subscription approved",
		Intro: fmt.Sprintf("The %s plan for %s is now active until %s. Featured listings and hot deal slots are available from your dashboard.",
			planName, storeName, utils.FormatRFC3339(endsAt)),
		ButtonURL: s.cfg.AppBaseURL + "/dashboard/subscription",
		ButtonTxt: "Open Dashboard",
	})
}

func (s *smtpMailService) SendSubscriptionExpired(to, storeName string) error {
	return s.sendTemplated(to, "Your subscription has expired", emailData{
		Title:     "Subscription expired",
		Intro:     fmt.Sprintf("The subscription for %s has ended. Your store is back on the basic plan and your listings have been paused. Renew to bring them back online.", storeName),
		ButtonURL: s.cfg.AppBaseURL + "/dashboard/plans",
		ButtonTxt: "Renew Subscription",
	})
}

func (s *smtpMailService) SendPromotionExpired(to, productName, promotionType string) error {
	return s.sendTemplated(to, "A promotion has ended", emailData{
		Title: "Promotion ended",
		Intro: fmt.Sprintf("The %s promotion for %s has ended. Slots stay consumed for the current subscription period; a renewal opens fresh slots.",
			promotionType, productName),
		ButtonURL: s.cfg.AppBaseURL + "/dashboard/promotions",
		ButtonTxt: "View Promotions",
	})
}

func (s *smtpMailService) SendDocumentReviewed(to, docType, status, note string) error {
	intro := fmt.Sprintf("Your %s document was %s.", docType, status)
	if note != "" {
		intro += " Reviewer note: " + note
	}
	return s.sendTemplated(to, "Document review update", emailData{
		Title:     "Document " + status,
		Intro:     intro,
		ButtonURL: s.cfg.AppBaseURL + "/dashboard/documents",
		ButtonTxt: "View Documents",
	})
}

func (s *smtpMailService) SendPasswordReset(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.cfg.AppBaseURL, "/"), url.QueryEscape(token))
	return s.sendTemplated(to, "Reset your password", emailData{
		Title:     "Reset your password",
		Intro:     "We received a request to reset your password. If you didn't request this, you can safely ignore this email.",
		ButtonURL: link,
		ButtonTxt: "Reset Password",
	})
}

func (s *smtpMailService) sendTemplated(to, subject string, data emailData) error {
	data.AppName = s.cfg.FromName
	data.Year = time.Now().Year()

	var hb, tb bytes.Buffer
	if err := s.htmlTpl.Execute(&hb, data); err != nil {
		return err
	}
	if err := s.textTpl.Execute(&tb, data); err != nil {
		return err
	}
	return s.send(to, subject, hb.String(), tb.String())
}

const baseHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #0f172a; color: #ffffff; font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }
    .wrapper { width: 100%; padding: 40px 16px; box-sizing: border-box; }
    .container { max-width: 600px; margin: 0 auto; background: #1e293b; border-radius: 12px; overflow: hidden; }
    .header { padding: 28px 32px 20px; border-bottom: 1px solid rgba(148, 163, 184, 0.1); }
    .brand { font-weight: 700; letter-spacing: 0.5px; font-size: 20px; color: #f59e0b; text-transform: uppercase; }
    .hero { padding: 36px 32px; }
    h1 { margin: 0 0 16px; font-size: 26px; color: #f1f5f9; }
    p { margin: 0 0 20px; line-height: 1.7; color: #cbd5e1; font-size: 16px; }
    .btn { display: inline-block; padding: 14px 28px; background: #f59e0b; color: #0f172a !important; text-decoration: none; border-radius: 10px; font-weight: 600; }
    .muted { color: #94a3b8; font-size: 13px; }
    .footer { padding: 22px 32px; color: #94a3b8; font-size: 13px; border-top: 1px solid rgba(148, 163, 184, 0.1); }
  </style>
</head>
<body>
  <div class="wrapper">
    <div class="container">
      <div class="header"><div class="brand">{{.AppName}}</div></div>
      <div class="hero">
        <h1>{{.Title}}</h1>
        <p>{{.Intro}}</p>
        {{if .ButtonURL}}
          <p><a class="btn" href="{{.ButtonURL}}">{{.ButtonTxt}}</a></p>
          <p class="muted">If the button doesn't work, copy and paste this link into your browser:<br>{{.ButtonURL}}</p>
        {{end}}
      </div>
      <div class="footer">&copy; {{.Year}} {{.AppName}}. All rights reserved.</div>
    </div>
  </div>
</body>
</html>`

const plainTextTemplate = `{{.Title}}

{{.Intro}}

{{if .ButtonURL}}Open this link:
{{.ButtonURL}}
{{end}}
- {{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	fromHeader := s.cfg.From
	if name := strings.TrimSpace(s.cfg.FromName); name != "" {
		fromHeader = fmt.Sprintf("%s <%s>", name, s.cfg.From)
	}
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", fromHeader)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", subject)
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if s.cfg.UseSSL {
		// Implicit TLS, usually port 465.
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return err
		}
		defer conn.Close()
		return s.deliver(conn, auth, to, msg.Bytes(), false)
	}

	// STARTTLS, usually port 587.
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	return s.deliver(conn, auth, to, msg.Bytes(), true)
}

func (s *smtpMailService) deliver(conn net.Conn, auth smtp.Auth, to string, msg []byte, startTLS bool) error {
	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if startTLS {
		if ok, _ := c.Extension("STARTTLS"); ok {
			tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		}
	}

	if err = c.Auth(auth); err != nil {
		return err
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

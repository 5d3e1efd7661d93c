package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
)

const logoPath = "/assets/owners-logo/Joannas%20Reborns%20Logo.jpg"

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
}

// Composer renders order emails into the branded HTML layout.
type Composer struct {
	confirmation *template.Template
	adminAlert   *template.Template
	reply        *template.Template

	brand      string
	siteURL    string
	adminEmail string
	now        func() time.Time
}

type pageData struct {
	Brand   string
	SiteURL string
	LogoURL string
	Year    int
	Link    string
	Order   *model.Order
	Body    template.HTML
}

// NewComposer parses the templates once at startup.
func NewComposer(cfg *config.Config) (*Composer, error) {
	parse := func(name, content string) (*template.Template, error) {
		t, err := template.New(name).Funcs(funcs).Parse(layoutHTML)
		if err != nil {
			return nil, fmt.Errorf("parse layout: %w", err)
		}
		if _, err := t.Parse(content); err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		return t, nil
	}

	c := &Composer{
		brand:      cfg.MailFromName,
		siteURL:    strings.TrimRight(cfg.SiteURL, "/"),
		adminEmail: cfg.AdminEmail,
		now:        time.Now,
	}

	var err error
	if c.confirmation, err = parse("confirmation", confirmationHTML); err != nil {
		return nil, err
	}
	if c.adminAlert, err = parse("admin_alert", adminAlertHTML); err != nil {
		return nil, err
	}
	if c.reply, err = parse("reply", replyHTML); err != nil {
		return nil, err
	}
	return c, nil
}

// Confirmation is sent to the customer right after intake.
func (c *Composer) Confirmation(order *model.Order) (model.Message, error) {
	data := c.page(order)
	data.Link = c.siteURL + "/order/" + url.PathEscape(order.Reference)

	html, err := render(c.confirmation, data)
	if err != nil {
		return model.Message{}, err
	}
	return model.Message{
		Kind:      model.NotificationConfirmation,
		Reference: order.Reference,
		To:        order.Customer.Email,
		Subject:   "Order Confirmation - " + order.Reference,
		HTML:      html,
	}, nil
}

// AdminAlert tells the shop owner about a new order.
func (c *Composer) AdminAlert(order *model.Order) (model.Message, error) {
	data := c.page(order)
	data.Link = c.siteURL + "/admin/orders/" + url.PathEscape(order.ID)

	html, err := render(c.adminAlert, data)
	if err != nil {
		return model.Message{}, err
	}
	return model.Message{
		Kind:      model.NotificationAdminAlert,
		Reference: order.Reference,
		To:        c.adminEmail,
		Subject:   "New Order Received - " + order.Reference,
		HTML:      html,
	}, nil
}

// Reply wraps an operator message. The message is escaped and line breaks are kept.
func (c *Composer) Reply(order *model.Order, subject, message string, attachments []model.Attachment) (model.Message, error) {
	data := c.page(order)
	data.Body = textToHTML(message)

	html, err := render(c.reply, data)
	if err != nil {
		return model.Message{}, err
	}
	return model.Message{
		Kind:        model.NotificationReply,
		Reference:   order.Reference,
		To:          order.Customer.Email,
		Subject:     subject,
		HTML:        html,
		Attachments: attachments,
	}, nil
}

func (c *Composer) page(order *model.Order) pageData {
	return pageData{
		Brand:   c.brand,
		SiteURL: c.siteURL,
		LogoURL: c.siteURL + logoPath,
		Year:    c.now().Year(),
		Order:   order,
	}
}

func render(t *template.Template, data pageData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

var newlines = strings.NewReplacer("\r\n", "<br>", "\n", "<br>")

func textToHTML(s string) template.HTML {
	return template.HTML(newlines.Replace(template.HTMLEscapeString(s)))
}

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/medtrain/progress-tracker-api/internal/models"
	"github.com/medtrain/progress-tracker-api/pkg/config"
)

// templateParameter is one positional text substitution.
type templateParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type templateComponent struct {
	Type       string              `json:"type"`
	Parameters []templateParameter `json:"parameters"`
}

// templateRequest is the wire format of the WhatsApp middleware: a
// pre-registered template name plus ordered body parameters. The dispatcher
// never composes free text for this channel.
type templateRequest struct {
	To         string              `json:"to"`
	Name       string              `json:"name"`
	Components []templateComponent `json:"components"`
}

// WhatsAppClient posts report templates to the messaging middleware.
type WhatsAppClient struct {
	url      string
	token    string
	template string
	period   string
	client   *http.Client
}

// NewWhatsAppClient builds a client from config. The HTTP timeout caps each
// individual send, not the whole dispatch.
func NewWhatsAppClient(cfg config.WhatsAppConfig, period string) *WhatsAppClient {
	return &WhatsAppClient{
		url:      cfg.URL,
		token:    cfg.Token,
		template: cfg.Template,
		period:   period,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// SendTemplate delivers one report to a single phone number. The nine
// parameters are positional and their order is fixed by the registered
// template.
func (c *WhatsAppClient) SendTemplate(ctx context.Context, p models.ReportPayload) error {
	if c.url == "" {
		return fmt.Errorf("whatsapp middleware url is not configured")
	}

	payload := templateRequest{
		To:   p.Phone,
		Name: c.template,
		Components: []templateComponent{{
			Type: "body",
			Parameters: []templateParameter{
				{Type: "text", Text: p.Name},
				{Type: "text", Text: p.ChapterCompletion},
				{Type: "text", Text: strconv.Itoa(p.Marks)},
				{Type: "text", Text: strconv.Itoa(p.MaxMarks)},
				{Type: "text", Text: strconv.Itoa(p.Skipped)},
				{Type: "text", Text: fmt.Sprintf("OCS 1 (%s) : %s", dateOrNA(p.OCS1Date), p.OCS1Status)},
				{Type: "text", Text: fmt.Sprintf("OCS 2 (%s) : %s", dateOrNA(p.OCS2Date), p.OCS2Status)},
				{Type: "text", Text: string(p.Status)},
				{Type: "text", Text: c.period},
			},
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode template payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build template request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post template: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		excerpt, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("whatsapp middleware responded %d: %s", res.StatusCode, excerpt)
	}

	return nil
}

package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/hubspot-mcp/hubspot-mcp/internal/crm"
)

var emailTools = []Descriptor{
	{
		Name:        "send_email",
		Description: "Send an email through HubSpot (requires Marketing Email API setup)",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"to":        stringListProp("List of recipient email addresses"),
			"subject":   stringProp("Email subject line"),
			"htmlBody":  stringProp("HTML content of the email"),
			"textBody":  stringProp("Plain text content of the email (optional)"),
			"fromEmail": stringProp("Sender email address"),
			"fromName":  stringProp("Sender name"),
		}, "to", "subject", "htmlBody"),
		Annotations: creates("Send email"),
	},
	{
		Name:        "get_email_events",
		Description: "Get email events and engagement data (placeholder - requires specific API setup)",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"contactId": stringProp("Contact ID to get email events for"),
			"limit":     limitProp("Number of events to retrieve"),
		}, "contactId"),
		Annotations: readOnly("Get email events"),
	},
}

// EmailHandler serves the email tools.
type EmailHandler struct {
	svc Service
}

func NewEmailHandler(svc Service) *EmailHandler {
	return &EmailHandler{svc: svc}
}

func (h *EmailHandler) Tools() []Descriptor { return cloneDescriptors(emailTools) }

func (h *EmailHandler) Execute(ctx context.Context, name string, args map[string]any) (*Result, error) {
	switch name {
	case "send_email":
		return h.sendEmail(ctx, args)
	case "get_email_events":
		return h.getEmailEvents(args)
	default:
		return nil, UnknownToolError(name)
	}
}

func (h *EmailHandler) sendEmail(ctx context.Context, args map[string]any) (*Result, error) {
	if err := requireArgs(args, "to", "subject", "htmlBody"); err != nil {
		return nil, err
	}
	to := readStringSlice(args, "to")
	if len(to) == 0 {
		return nil, &MissingArgumentError{Field: "to"}
	}
	res, err := h.svc.SendEmail(ctx, crm.Email{
		To:        to,
		Subject:   readString(args, "subject"),
		HTMLBody:  readString(args, "htmlBody"),
		TextBody:  readString(args, "textBody"),
		FromEmail: readString(args, "fromEmail"),
		FromName:  readString(args, "fromName"),
	})
	if err != nil {
		return nil, err
	}
	message := "Email functionality requires Marketing Email API setup"
	if res.ID != "" {
		message = "Email sent successfully"
	}
	return dataResult(res, message), nil
}

// getEmailEvents is a placeholder until the events API is wired up.
func (h *EmailHandler) getEmailEvents(args map[string]any) (*Result, error) {
	if err := requireArgs(args, "contactId"); err != nil {
		return nil, err
	}
	limit := readInt(args, "limit", crm.DefaultPageSize)
	return &Result{
		Success:   true,
		Data:      []any{},
		Message:   "Email events functionality requires Events API setup",
		ContactID: readString(args, "contactId"),
		Limit:     &limit,
	}, nil
}

package tools

import (
	"context"

	"github.com/hubspot-mcp/hubspot-mcp/internal/crm"
	"github.com/hubspot-mcp/hubspot-mcp/internal/hubspot"
)

// Service is the record service the handlers call. *crm.Service implements it.
type Service interface {
	GetContacts(ctx context.Context, p crm.PageParams) (*hubspot.Page, error)
	GetContact(ctx context.Context, id string, properties []string) (*hubspot.Object, error)
	CreateContact(ctx context.Context, properties map[string]any) (*hubspot.Object, error)
	UpdateContact(ctx context.Context, id string, properties map[string]any) (*hubspot.Object, error)
	SearchContacts(ctx context.Context, query string, p crm.PageParams) (*hubspot.Page, error)

	GetCompanies(ctx context.Context, p crm.PageParams) (*hubspot.Page, error)
	GetCompany(ctx context.Context, id string, properties []string) (*hubspot.Object, error)
	CreateCompany(ctx context.Context, properties map[string]any) (*hubspot.Object, error)
	UpdateCompany(ctx context.Context, id string, properties map[string]any) (*hubspot.Object, error)

	GetDeals(ctx context.Context, p crm.PageParams) (*hubspot.Page, error)
	GetDeal(ctx context.Context, id string, properties []string) (*hubspot.Object, error)
	CreateDeal(ctx context.Context, properties map[string]any) (*hubspot.Object, error)
	UpdateDeal(ctx context.Context, id string, properties map[string]any) (*hubspot.Object, error)

	SendEmail(ctx context.Context, email crm.Email) (*crm.EmailResult, error)
}

var _ Service = (*crm.Service)(nil)

func pageResult(page *hubspot.Page) *Result {
	records := page.Results
	if records == nil {
		records = []hubspot.Object{}
	}
	count := len(records)
	hasMore := page.HasMore()
	return &Result{
		Success:   true,
		Data:      records,
		Count:     &count,
		HasMore:   &hasMore,
		NextAfter: page.NextAfter(),
	}
}

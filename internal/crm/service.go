// Package crm wraps the HubSpot client with the per-kind defaults used by the
// tool handlers.
package crm

import (
	"context"

	"github.com/hubspot-mcp/hubspot-mcp/internal/hubspot"
)

// DefaultPageSize is used when a caller passes a non-positive limit.
const DefaultPageSize = 10

// Client is the subset of *hubspot.Client the service depends on.
type Client interface {
	GetPage(ctx context.Context, kind hubspot.ObjectKind, limit int, after string, properties []string) (*hubspot.Page, error)
	GetByID(ctx context.Context, kind hubspot.ObjectKind, id string, properties []string) (*hubspot.Object, error)
	Create(ctx context.Context, kind hubspot.ObjectKind, properties map[string]any) (*hubspot.Object, error)
	Update(ctx context.Context, kind hubspot.ObjectKind, id string, properties map[string]any) (*hubspot.Object, error)
	Search(ctx context.Context, kind hubspot.ObjectKind, req hubspot.SearchRequest) (*hubspot.Page, error)
}

var (
	contactListProperties   = []string{"firstname", "lastname", "email", "phone", "company", "lifecyclestage"}
	contactSearchProperties = []string{"firstname", "lastname", "email", "phone", "company"}
	companyListProperties   = []string{"name", "domain", "industry", "city", "state", "country"}
	dealListProperties      = []string{"dealname", "amount", "dealstage", "pipeline", "closedate", "dealtype"}
	timestampProperties     = []string{"createdate", "lastmodifieddate"}
)

// Service forwards record operations to the CRM client. Errors from the
// client are returned unchanged.
type Service struct {
	client Client
	sender EmailSender
}

// NewService returns a Service. A nil sender leaves SendEmail as a stub.
func NewService(client Client, sender EmailSender) *Service {
	return &Service{client: client, sender: sender}
}

// PageParams selects a single page of records.
type PageParams struct {
	Limit      int
	After      string
	Properties []string
}

func (s *Service) getPage(ctx context.Context, kind hubspot.ObjectKind, p PageParams, defaults []string) (*hubspot.Page, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return s.client.GetPage(ctx, kind, limit, p.After, orDefault(p.Properties, defaults))
}

func (s *Service) getOne(ctx context.Context, kind hubspot.ObjectKind, id string, properties, defaults []string) (*hubspot.Object, error) {
	return s.client.GetByID(ctx, kind, id, orDefault(properties, withTimestamps(defaults)))
}

// Contacts

func (s *Service) GetContacts(ctx context.Context, p PageParams) (*hubspot.Page, error) {
	return s.getPage(ctx, hubspot.Contacts, p, contactListProperties)
}

func (s *Service) GetContact(ctx context.Context, id string, properties []string) (*hubspot.Object, error) {
	return s.getOne(ctx, hubspot.Contacts, id, properties, contactListProperties)
}

func (s *Service) CreateContact(ctx context.Context, properties map[string]any) (*hubspot.Object, error) {
	return s.client.Create(ctx, hubspot.Contacts, properties)
}

func (s *Service) UpdateContact(ctx context.Context, id string, properties map[string]any) (*hubspot.Object, error) {
	return s.client.Update(ctx, hubspot.Contacts, id, properties)
}

// SearchContacts runs a full-text contact search for one page of results.
func (s *Service) SearchContacts(ctx context.Context, query string, p PageParams) (*hubspot.Page, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return s.client.Search(ctx, hubspot.Contacts, hubspot.SearchRequest{
		Query:      query,
		Limit:      limit,
		After:      p.After,
		Properties: orDefault(p.Properties, contactSearchProperties),
	})
}

// Companies

func (s *Service) GetCompanies(ctx context.Context, p PageParams) (*hubspot.Page, error) {
	return s.getPage(ctx, hubspot.Companies, p, companyListProperties)
}

func (s *Service) GetCompany(ctx context.Context, id string, properties []string) (*hubspot.Object, error) {
	return s.getOne(ctx, hubspot.Companies, id, properties, companyListProperties)
}

func (s *Service) CreateCompany(ctx context.Context, properties map[string]any) (*hubspot.Object, error) {
	return s.client.Create(ctx, hubspot.Companies, properties)
}

func (s *Service) UpdateCompany(ctx context.Context, id string, properties map[string]any) (*hubspot.Object, error) {
	return s.client.Update(ctx, hubspot.Companies, id, properties)
}

// Deals

func (s *Service) GetDeals(ctx context.Context, p PageParams) (*hubspot.Page, error) {
	return s.getPage(ctx, hubspot.Deals, p, dealListProperties)
}

func (s *Service) GetDeal(ctx context.Context, id string, properties []string) (*hubspot.Object, error) {
	return s.getOne(ctx, hubspot.Deals, id, properties, dealListProperties)
}

func (s *Service) CreateDeal(ctx context.Context, properties map[string]any) (*hubspot.Object, error) {
	return s.client.Create(ctx, hubspot.Deals, properties)
}

func (s *Service) UpdateDeal(ctx context.Context, id string, properties map[string]any) (*hubspot.Object, error) {
	return s.client.Update(ctx, hubspot.Deals, id, properties)
}

func orDefault(properties, defaults []string) []string {
	if len(properties) > 0 {
		return properties
	}
	out := make([]string, len(defaults))
	copy(out, defaults)
	return out
}

func withTimestamps(defaults []string) []string {
	out := make([]string, 0, len(defaults)+len(timestampProperties))
	out = append(out, defaults...)
	return append(out, timestampProperties...)
}

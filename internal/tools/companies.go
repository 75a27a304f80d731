package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
)

var companyDefaultProperties = []string{"name", "domain", "industry", "city", "state"}

var companyNamedFields = []string{"name", "domain", "industry", "city", "state", "country", "phone"}

var (
	companyCreateFields = propertyBag{named: companyNamedFields}
	companyUpdateFields = propertyBag{named: companyNamedFields, reserved: []string{"companyId"}}
)

func companyFieldProps() map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"name":                  stringProp("Company name"),
		"domain":                stringProp("Company domain/website"),
		"industry":              stringProp("Company industry"),
		"city":                  stringProp("Company city"),
		"state":                 stringProp("Company state/province"),
		"country":               stringProp("Company country"),
		"phone":                 stringProp("Company phone number"),
		additionalPropertiesKey: additionalPropertiesProp("company"),
	}
}

var companyTools = []Descriptor{
	{
		Name:        "get_companies",
		Description: "Get a list of companies from HubSpot",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"limit":      limitProp("Number of companies to retrieve (default: 10, max: 100)"),
			"after":      afterProp(),
			"properties": stringListProp("List of company properties to retrieve", companyDefaultProperties...),
		}),
		Annotations: readOnly("List companies"),
	},
	{
		Name:        "get_company",
		Description: "Get a specific company by ID from HubSpot",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"companyId":  stringProp("The ID of the company to retrieve"),
			"properties": stringListProp("List of company properties to retrieve", companyDefaultProperties...),
		}, "companyId"),
		Annotations: readOnly("Get company"),
	},
	{
		Name:        "create_company",
		Description: "Create a new company in HubSpot",
		InputSchema: objectSchema(companyFieldProps(), "name"),
		Annotations: creates("Create company"),
	},
	{
		Name:        "update_company",
		Description: "Update an existing company in HubSpot",
		InputSchema: func() *jsonschema.Schema {
			props := companyFieldProps()
			props["companyId"] = stringProp("The ID of the company to update")
			return objectSchema(props, "companyId")
		}(),
		Annotations: updates("Update company"),
	},
}

// CompanyHandler serves the company tools.
type CompanyHandler struct {
	svc Service
}

func NewCompanyHandler(svc Service) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

func (h *CompanyHandler) Tools() []Descriptor { return cloneDescriptors(companyTools) }

func (h *CompanyHandler) Execute(ctx context.Context, name string, args map[string]any) (*Result, error) {
	switch name {
	case "get_companies":
		page, err := h.svc.GetCompanies(ctx, pageParams(args))
		if err != nil {
			return nil, err
		}
		return pageResult(page), nil
	case "get_company":
		return h.getCompany(ctx, args)
	case "create_company":
		return h.createCompany(ctx, args)
	case "update_company":
		return h.updateCompany(ctx, args)
	default:
		return nil, UnknownToolError(name)
	}
}

func (h *CompanyHandler) getCompany(ctx context.Context, args map[string]any) (*Result, error) {
	if err := requireArgs(args, "companyId"); err != nil {
		return nil, err
	}
	obj, err := h.svc.GetCompany(ctx, readString(args, "companyId"), readStringSlice(args, "properties"))
	if err != nil {
		return nil, err
	}
	return dataResult(obj, ""), nil
}

func (h *CompanyHandler) createCompany(ctx context.Context, args map[string]any) (*Result, error) {
	if err := requireArgs(args, "name"); err != nil {
		return nil, err
	}
	obj, err := h.svc.CreateCompany(ctx, companyCreateFields.build(args))
	if err != nil {
		return nil, err
	}
	return dataResult(obj, "Company created successfully"), nil
}

func (h *CompanyHandler) updateCompany(ctx context.Context, args map[string]any) (*Result, error) {
	if err := requireArgs(args, "companyId"); err != nil {
		return nil, err
	}
	obj, err := h.svc.UpdateCompany(ctx, readString(args, "companyId"), companyUpdateFields.buildUpdate(args))
	if err != nil {
		return nil, err
	}
	return dataResult(obj, "Company updated successfully"), nil
}

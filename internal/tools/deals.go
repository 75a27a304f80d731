package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
)

var dealDefaultProperties = []string{"dealname", "amount", "dealstage", "pipeline", "closedate"}

var dealNamedFields = []string{"dealname", "dealstage", "amount", "pipeline", "closedate", "dealtype"}

// HubSpot stores amount as a string-typed number.
var dealCoerce = map[string]func(any) any{"amount": toString}

var (
	dealCreateFields = propertyBag{named: dealNamedFields, coerce: dealCoerce}
	dealUpdateFields = propertyBag{named: dealNamedFields, reserved: []string{"dealId"}, coerce: dealCoerce}
)

func dealFieldProps(stageDescription, typeDescription string) map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"dealname":              stringProp("Deal name/title"),
		"amount":                numberProp("Deal amount/value"),
		"dealstage":             stringProp(stageDescription),
		"pipeline":              stringProp("Deal pipeline ID"),
		"closedate":             stringProp("Expected close date (YYYY-MM-DD format)"),
		"dealtype":              stringProp(typeDescription),
		additionalPropertiesKey: additionalPropertiesProp("deal"),
	}
}

var dealTools = []Descriptor{
	{
		Name:        "get_deals",
		Description: "Get a list of deals from HubSpot",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"limit":      limitProp("Number of deals to retrieve (default: 10, max: 100)"),
			"after":      afterProp(),
			"properties": stringListProp("List of deal properties to retrieve", dealDefaultProperties...),
		}),
		Annotations: readOnly("List deals"),
	},
	{
		Name:        "get_deal",
		Description: "Get a specific deal by ID from HubSpot",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"dealId":     stringProp("The ID of the deal to retrieve"),
			"properties": stringListProp("List of deal properties to retrieve", dealDefaultProperties...),
		}, "dealId"),
		Annotations: readOnly("Get deal"),
	},
	{
		Name:        "create_deal",
		Description: "Create a new deal in HubSpot",
		InputSchema: objectSchema(dealFieldProps(
			"Deal stage (e.g., 'qualifiedtobuy', 'presentationscheduled', 'decisionmakerboughtin', 'contractsent', 'closedwon', 'closedlost')",
			"Type of deal (e.g., 'newbusiness', 'existingbusiness')",
		), "dealname", "dealstage"),
		Annotations: creates("Create deal"),
	},
	{
		Name:        "update_deal",
		Description: "Update an existing deal in HubSpot",
		InputSchema: func() *jsonschema.Schema {
			props := dealFieldProps("Deal stage", "Type of deal")
			props["dealId"] = stringProp("The ID of the deal to update")
			return objectSchema(props, "dealId")
		}(),
		Annotations: updates("Update deal"),
	},
}

// DealHandler serves the deal tools.
type DealHandler struct {
	svc Service
}

func NewDealHandler(svc Service) *DealHandler {
	return &DealHandler{svc: svc}
}

func (h *DealHandler) Tools() []Descriptor { return cloneDescriptors(dealTools) }

func (h *DealHandler) Execute(ctx context.Context, name string, args map[string]any) (*Result, error) {
	switch name {
	case "get_deals":
		return h.getDeals(ctx, args)
	case "get_deal":
		return h.getDeal(ctx, args)
	case "create_deal":
		return h.createDeal(ctx, args)
	case "update_deal":
		return h.updateDeal(ctx, args)
	default:
		return nil, UnknownToolError(name)
	}
}

func (h *DealHandler) getDeals(ctx context.Context, args map[string]any) (*Result, error) {
	page, err := h.svc.GetDeals(ctx, pageParams(args))
	if err != nil {
		return nil, err
	}
	return pageResult(page), nil
}

func (h *DealHandler) getDeal(ctx context.Context, args map[string]any) (*Result, error) {
	if err := requireArgs(args, "dealId"); err != nil {
		return nil, err
	}
	obj, err := h.svc.GetDeal(ctx, readString(args, "dealId"), readStringSlice(args, "properties"))
	if err != nil {
		return nil, err
	}
	return dataResult(obj, ""), nil
}

func (h *DealHandler) createDeal(ctx context.Context, args map[string]any) (*Result, error) {
	if err := requireArgs(args, "dealname", "dealstage"); err != nil {
		return nil, err
	}
	obj, err := h.svc.CreateDeal(ctx, dealCreateFields.build(args))
	if err != nil {
		return nil, err
	}
	return dataResult(obj, "Deal created successfully"), nil
}

func (h *DealHandler) updateDeal(ctx context.Context, args map[string]any) (*Result, error) {
	if err := requireArgs(args, "dealId"); err != nil {
		return nil, err
	}
	obj, err := h.svc.UpdateDeal(ctx, readString(args, "dealId"), dealUpdateFields.buildUpdate(args))
	if err != nil {
		return nil, err
	}
	return dataResult(obj, "Deal updated successfully"), nil
}

package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
)

var contactDefaultProperties = []string{"firstname", "lastname", "email", "phone", "company"}

var contactNamedFields = []string{"email", "firstname", "lastname", "phone", "company", "lifecyclestage"}

var (
	contactCreateFields = propertyBag{named: contactNamedFields}
	contactUpdateFields = propertyBag{named: contactNamedFields, reserved: []string{"contactId"}}
)

func contactFieldProps() map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"email":                 stringProp("Contact's email address"),
		"firstname":             stringProp("Contact's first name"),
		"lastname":              stringProp("Contact's last name"),
		"phone":                 stringProp("Contact's phone number"),
		"company":               stringProp("Contact's company name"),
		"lifecyclestage":        stringProp("Contact's lifecycle stage"),
		additionalPropertiesKey: additionalPropertiesProp("contact"),
	}
}

var contactTools = []Descriptor{
	{
		Name:        "get_contacts",
		Description: "Get a list of contacts from HubSpot",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"limit":      limitProp("Number of contacts to retrieve (default: 10, max: 100)"),
			"after":      afterProp(),
			"properties": stringListProp("List of contact properties to retrieve", contactDefaultProperties...),
		}),
		Annotations: readOnly("List contacts"),
	},
	{
		Name:        "get_contact",
		Description: "Get a specific contact by ID from HubSpot",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"contactId":  stringProp("The ID of the contact to retrieve"),
			"properties": stringListProp("List of contact properties to retrieve", contactDefaultProperties...),
		}, "contactId"),
		Annotations: readOnly("Get contact"),
	},
	{
		Name:        "create_contact",
		Description: "Create a new contact in HubSpot",
		InputSchema: objectSchema(contactFieldProps(), "email"),
		Annotations: creates("Create contact"),
	},
	{
		Name:        "update_contact",
		Description: "Update an existing contact in HubSpot",
		InputSchema: func() *jsonschema.Schema {
			props := contactFieldProps()
			props["contactId"] = stringProp("The ID of the contact to update")
			return objectSchema(props, "contactId")
		}(),
		Annotations: updates("Update contact"),
	},
	{
		Name:        "search_contacts",
		Description: "Search for contacts in HubSpot",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"query":      stringProp("Search query (name, email, or other contact information)"),
			"limit":      limitProp("Number of contacts to return (default: 10, max: 100)"),
			"after":      afterProp(),
			"properties": stringListProp("List of contact properties to retrieve", contactDefaultProperties...),
		}, "query"),
		Annotations: readOnly("Search contacts"),
	},
}

// ContactHandler serves the contact tools.
type ContactHandler struct {
	svc Service
}

func NewContactHandler(svc Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) Tools() []Descriptor { return cloneDescriptors(contactTools) }

func (h *ContactHandler) Execute(ctx context.Context, name string, args map[string]any) (*Result, error) {
	switch name {
	case "get_contacts":
		return h.getContacts(ctx, args)
	case "get_contact":
		return h.getContact(ctx, args)
	case "create_contact":
		return h.createContact(ctx, args)
	case "update_contact":
		return h.updateContact(ctx, args)
	case "search_contacts":
		return h.searchContacts(ctx, args)
	default:
		return nil, UnknownToolError(name)
	}
}

func (h *ContactHandler) getContacts(ctx context.Context, args map[string]any) (*Result, error) {
	page, err := h.svc.GetContacts(ctx, pageParams(args))
	if err != nil {
		return nil, err
	}
	return pageResult(page), nil
}

func (h *ContactHandler) getContact(ctx context.Context, args map[string]any) (*Result, error) {
	if err := requireArgs(args, "contactId"); err != nil {
		return nil, err
	}
	obj, err := h.svc.GetContact(ctx, readString(args, "contactId"), readStringSlice(args, "properties"))
	if err != nil {
		return nil, err
	}
	return dataResult(obj, ""), nil
}

func (h *ContactHandler) createContact(ctx context.Context, args map[string]any) (*Result, error) {
	if err := requireArgs(args, "email"); err != nil {
		return nil, err
	}
	obj, err := h.svc.CreateContact(ctx, contactCreateFields.build(args))
	if err != nil {
		return nil, err
	}
	return dataResult(obj, "Contact created successfully"), nil
}

func (h *ContactHandler) updateContact(ctx context.Context, args map[string]any) (*Result, error) {
	if err := requireArgs(args, "contactId"); err != nil {
		return nil, err
	}
	obj, err := h.svc.UpdateContact(ctx, readString(args, "contactId"), contactUpdateFields.buildUpdate(args))
	if err != nil {
		return nil, err
	}
	return dataResult(obj, "Contact updated successfully"), nil
}

func (h *ContactHandler) searchContacts(ctx context.Context, args map[string]any) (*Result, error) {
	if err := requireArgs(args, "query"); err != nil {
		return nil, err
	}
	query := readString(args, "query")
	page, err := h.svc.SearchContacts(ctx, query, pageParams(args))
	if err != nil {
		return nil, err
	}
	res := pageResult(page)
	res.Query = query
	return res, nil
}

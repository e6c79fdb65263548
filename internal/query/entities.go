package query

import "fmt"

func direct(table, name string, t FieldType) Field {
	return Field{Name: name, Kind: KindDirect, Type: t, Column: table + "." + name}
}

func relation(name, column, path, scope string) Field {
	return Field{Name: name, Kind: KindRelation, Type: TypeText, Column: column, Path: path, Scope: scope}
}

// toOne builds the scope of a to-one relation held by fkColumn on the root table
func toOne(fkColumn, table, alias string) string {
	return fmt.Sprintf("%s IN (SELECT %s.id FROM %s %s WHERE %s.deleted_at IS NULL AND %%s)",
		fkColumn, alias, table, alias, alias)
}

// addressFields declares the first-address fields reachable through a join table
func addressFields(rootTable, joinTable, fkColumn string) []Field {
	scope := fmt.Sprintf(
		"%s.id IN (SELECT j.%s FROM %s j JOIN addresses a ON a.id = j.address_id WHERE j.deleted_at IS NULL AND %%s)",
		rootTable, fkColumn, joinTable)

	names := []string{"street", "district", "city", "state", "zip_code"}
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{
			Name:   name,
			Kind:   KindAddress,
			Type:   TypeText,
			Column: "a." + name,
			Path:   "addresses.0.address." + name,
			Scope:  scope,
		})
	}
	return fields
}

// contactFields declares the first-contact fields reachable through a join table
func contactFields(rootTable, joinTable, fkColumn string) []Field {
	scope := fmt.Sprintf(
		"%s.id IN (SELECT j.%s FROM %s j JOIN contacts c ON c.id = j.contact_id WHERE j.deleted_at IS NULL AND %%s)",
		rootTable, fkColumn, joinTable)

	names := []string{"contact", "phone", "cellphone", "email"}
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{
			Name:   name,
			Kind:   KindContact,
			Type:   TypeText,
			Column: "c." + name,
			Path:   "contacts.0.contact." + name,
			Scope:  scope,
		})
	}
	return fields
}

func concat(groups ...[]Field) []Field {
	var out []Field
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// PropertyFields is the field table of the properties listing
var PropertyFields = NewMapping("property", concat(
	[]Field{
		direct("properties", "title", TypeText),
		direct("properties", "tax_registration", TypeText),
		direct("properties", "notes", TypeText),
		direct("properties", "bedrooms", TypeNumber),
		direct("properties", "bathrooms", TypeNumber),
		direct("properties", "half_bathrooms", TypeNumber),
		direct("properties", "garage_spaces", TypeNumber),
		direct("properties", "area_total", TypeNumber),
		direct("properties", "area_built", TypeNumber),
		direct("properties", "frontage_width", TypeNumber),
		direct("properties", "floor_number", TypeNumber),
		direct("properties", "furnished", TypeBool),
		direct("properties", "owner_id", TypeNumber),
		direct("properties", "type_id", TypeNumber),
		direct("properties", "agency_id", TypeNumber),
		direct("properties", "created_at", TypeDate),
		direct("properties", "updated_at", TypeDate),
		relation("owner_name", "o.name", "owner.name", toOne("properties.owner_id", "owners", "o")),
		relation("type_description", "pt.description", "type.description", toOne("properties.type_id", "property_types", "pt")),
		relation("agency_name", "ag.trade_name", "agency.trade_name", toOne("properties.agency_id", "agencies", "ag")),
	},
	addressFields("properties", "property_addresses", "property_id"),
)...)

// partyFields declares the columns shared by owners and tenants
func partyFields(table string) []Field {
	return []Field{
		direct(table, "name", TypeText),
		direct(table, "internal_code", TypeText),
		direct(table, "occupation", TypeText),
		direct(table, "cpf", TypeText),
		direct(table, "cnpj", TypeText),
		direct(table, "state_registration", TypeText),
		direct(table, "municipal_registration", TypeText),
		direct(table, "marital_status", TypeEnum),
		direct(table, "created_at", TypeDate),
		direct(table, "updated_at", TypeDate),
	}
}

// OwnerFields is the field table of the owners listing
var OwnerFields = NewMapping("owner", concat(
	partyFields("owners"),
	addressFields("owners", "owner_addresses", "owner_id"),
	contactFields("owners", "owner_contacts", "owner_id"),
)...)

// TenantFields is the field table of the tenants listing
var TenantFields = NewMapping("tenant", concat(
	partyFields("tenants"),
	addressFields("tenants", "tenant_addresses", "tenant_id"),
	contactFields("tenants", "tenant_contacts", "tenant_id"),
)...)

// AgencyFields is the field table of the agencies listing
var AgencyFields = NewMapping("agency", concat(
	[]Field{
		direct("agencies", "trade_name", TypeText),
		direct("agencies", "legal_name", TypeText),
		direct("agencies", "cnpj", TypeText),
		direct("agencies", "state_registration", TypeText),
		direct("agencies", "municipal_registration", TypeText),
		direct("agencies", "license_number", TypeText),
		direct("agencies", "created_at", TypeDate),
		direct("agencies", "updated_at", TypeDate),
	},
	addressFields("agencies", "agency_addresses", "agency_id"),
	contactFields("agencies", "agency_contacts", "agency_id"),
)...)

// LeaseFields is the field table of the leases listing
var LeaseFields = NewMapping("lease",
	direct("leases", "contract_number", TypeText),
	direct("leases", "start_date", TypeDate),
	direct("leases", "end_date", TypeDate),
	direct("leases", "rent_amount", TypeNumber),
	direct("leases", "condo_fee", TypeNumber),
	direct("leases", "property_tax", TypeNumber),
	direct("leases", "extra_charges", TypeNumber),
	direct("leases", "commission_amount", TypeNumber),
	direct("leases", "rent_due_day", TypeNumber),
	direct("leases", "tax_due_day", TypeNumber),
	direct("leases", "condo_due_day", TypeNumber),
	direct("leases", "property_id", TypeNumber),
	direct("leases", "owner_id", TypeNumber),
	direct("leases", "tenant_id", TypeNumber),
	direct("leases", "type_id", TypeNumber),
	direct("leases", "created_at", TypeDate),
	direct("leases", "updated_at", TypeDate),
	relation("property_title", "p.title", "property.title", toOne("leases.property_id", "properties", "p")),
	relation("owner_name", "o.name", "owner.name", toOne("leases.owner_id", "owners", "o")),
	relation("tenant_name", "t.name", "tenant.name", toOne("leases.tenant_id", "tenants", "t")),
	relation("type_description", "pt.description", "type.description", toOne("leases.type_id", "property_types", "pt")),
)

// UserFields is the field table of the users listing. Users expose direct fields only.
var UserFields = NewMapping("user",
	direct("users", "name", TypeText),
	direct("users", "email", TypeText),
	direct("users", "gender", TypeEnum),
	direct("users", "role", TypeEnum),
	direct("users", "birth_date", TypeDate),
	direct("users", "created_at", TypeDate),
	direct("users", "updated_at", TypeDate),
)

// PropertyTypeFields is the field table of the property types listing
var PropertyTypeFields = NewMapping("property_type",
	direct("property_types", "description", TypeText),
	direct("property_types", "created_at", TypeDate),
	direct("property_types", "updated_at", TypeDate),
)

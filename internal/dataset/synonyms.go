package dataset

import "realty/internal/utils"

// Role is a canonical column meaning
type Role string

const (
	RoleSector       Role = "sector"
	RoleLat          Role = "lat"
	RoleLon          Role = "lon"
	RolePrice        Role = "price"
	RolePricePerArea Role = "price_per_area"
	RoleArea         Role = "area"
	RoleBedrooms     Role = "bedroom_count"
	RolePropertyType Role = "property_type"
)

// Roles lists every canonical role
var Roles = []Role{
	RoleSector, RoleLat, RoleLon, RolePrice,
	RolePricePerArea, RoleArea, RoleBedrooms, RolePropertyType,
}

// NumericRoles are coerced to numbers when a canonical view is built
var NumericRoles = []Role{RoleLat, RoleLon, RolePrice, RolePricePerArea, RoleArea, RoleBedrooms}

// Synonyms per role, highest priority first
var Synonyms = map[Role][]string{
	RoleSector:       {"sector", "sector_name", "sectors", "locality", "location", "neighborhood", "neighbourhood"},
	RoleLat:          {"lat", "latitude", "lat_deg", "lat_degrees"},
	RoleLon:          {"lon", "lng", "long", "longitude", "lon_deg", "lng_deg"},
	RolePrice:        {"price", "price_cr", "price_crore", "sale_price", "listing_price"},
	RolePricePerArea: {"price_per_sqft", "price_per_sq_ft", "psf", "price_sqft", "rate_per_sqft"},
	RoleArea:         {"built_up_area", "builtup_area", "area", "area_sqft", "super_built_up_area", "carpet_area"},
	RoleBedrooms:     {"bedroom", "bedrooms", "bedRoom", "bhk", "beds", "bedroom_count"},
	RolePropertyType: {"property_type", "type", "unit_type", "propertytype"},
}

// Resolve finds the column playing a role. The second result is false when
// no column matches, which callers treat as the feature being unavailable.
func Resolve(columns []string, role Role) (string, bool) {
	return utils.MatchColumn(columns, Synonyms[role])
}

// ResolveAll resolves every role, omitting unmatched ones
func ResolveAll(columns []string) map[Role]string {
	out := make(map[Role]string, len(Roles))
	for _, role := range Roles {
		if col, ok := Resolve(columns, role); ok {
			out[role] = col
		}
	}
	return out
}

package model

// Listing is one row of the optional listings table used as the primary
// analytics dataset. Nullable columns are pointers.
type Listing struct {
	ID           int64    `json:"id" db:"id"`
	Price        *float64 `json:"price,omitempty" db:"price"`
	PricePerSqft *float64 `json:"price_per_sqft,omitempty" db:"price_per_sqft"`
	Bedrooms     *int     `json:"bedrooms,omitempty" db:"bedrooms"`
	Bathrooms    *int     `json:"bathrooms,omitempty" db:"bathrooms"`
	AreaSqft     *float64 `json:"area_sqft,omitempty" db:"area_sqft"`
	UnitType     *string  `json:"unit_type,omitempty" db:"unit_type"`
	Location     *string  `json:"location,omitempty" db:"location"`
	Latitude     *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude    *float64 `json:"longitude,omitempty" db:"longitude"`
}

// ListingColumns is the column order used when a set of listings is turned
// into a table. Names line up with the synonym lists of the analytics roles.
var ListingColumns = []string{
	"price", "price_per_sqft", "bedrooms", "bathroom", "area_sqft",
	"unit_type", "location", "latitude", "longitude",
}

// Row flattens a listing in ListingColumns order. Missing values become
// empty strings so numeric coercion later marks them as missing.
func (l Listing) Row() []string {
	return []string{
		floatCell(l.Price),
		floatCell(l.PricePerSqft),
		intCell(l.Bedrooms),
		intCell(l.Bathrooms),
		floatCell(l.AreaSqft),
		stringCell(l.UnitType),
		stringCell(l.Location),
		floatCell(l.Latitude),
		floatCell(l.Longitude),
	}
}

package schema

import "realty/internal/model"

// Form field names as submitted by clients
const (
	FieldBedroom      = "bedRoom"
	FieldBathroom     = "bathroom"
	FieldArea         = "built_up_area"
	FieldServantRoom  = "servant_room"
	FieldStoreRoom    = "store_room"
	FieldPropertyType = "property_type"
	FieldSector       = "sector"
	FieldBalcony      = "balcony"
	FieldAge          = "agePossession"
	FieldFurnishing   = "furnishing_type"
	FieldLuxury       = "luxury_category"
	FieldFloor        = "floor_category"
)

// Training column names of the two renamed fields
const (
	ColumnServantRoom = "servant room"
	ColumnStoreRoom   = "store room"
)

// NumericFields are coerced to float64 and range-checked
var NumericFields = []string{FieldBedroom, FieldBathroom, FieldArea, FieldServantRoom, FieldStoreRoom}

// CategoricalFields are trimmed and checked against allowed values
var CategoricalFields = []string{
	FieldPropertyType, FieldSector, FieldBalcony, FieldAge,
	FieldFurnishing, FieldLuxury, FieldFloor,
}

// RequiredColumns must all be present in the expected-columns list
var RequiredColumns = []string{
	FieldBedroom, FieldBathroom, FieldArea, ColumnServantRoom, ColumnStoreRoom,
	FieldPropertyType, FieldSector, FieldBalcony, FieldAge,
	FieldFurnishing, FieldLuxury, FieldFloor,
}

// ColumnName maps a form field to its training column name
func ColumnName(field string) string {
	switch field {
	case FieldServantRoom:
		return ColumnServantRoom
	case FieldStoreRoom:
		return ColumnStoreRoom
	}
	return field
}

// IsNumericColumn reports whether a training column holds a numeric field
func IsNumericColumn(column string) bool {
	for _, f := range NumericFields {
		if ColumnName(f) == column {
			return true
		}
	}
	return false
}

// IsCategoricalColumn reports whether a training column holds a categorical field
func IsCategoricalColumn(column string) bool {
	for _, f := range CategoricalFields {
		if f == column {
			return true
		}
	}
	return false
}

func ptr(v float64) *float64 { return &v }

func defaultNumericHints() map[string]model.NumericHint {
	return map[string]model.NumericHint{
		FieldBedroom:     {Min: ptr(1), Max: ptr(10), Step: ptr(1)},
		FieldBathroom:    {Min: ptr(1), Max: ptr(10), Step: ptr(1)},
		FieldArea:        {Min: ptr(50), Max: ptr(20000), Step: ptr(1)},
		FieldServantRoom: {Min: ptr(0), Max: ptr(1), Step: ptr(1)},
		FieldStoreRoom:   {Min: ptr(0), Max: ptr(1), Step: ptr(1)},
	}
}

func defaultAllowedValues() map[string][]string {
	return map[string][]string{
		FieldPropertyType: {"flat", "house"},
		FieldSector:       {},
		FieldBalcony:      {"0", "1", "2", "3", "3+"},
		FieldAge:          {"New Property", "Relatively New", "Moderately Old", "Old Property", "Under Construction"},
		FieldFurnishing:   {"unfurnished", "semifurnished", "furnished"},
		FieldLuxury:       {"Low", "Medium", "High"},
		FieldFloor:        {"Low Floor", "Mid Floor", "High Floor"},
	}
}

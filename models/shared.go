package models

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Account roles.
const (
	RoleAdmin     = "ADMIN"
	RoleAnnotator = "ANNOTATOR"
	RoleTraveller = "TRAVELLER"
)

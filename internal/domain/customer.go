package domain

// Address is the part of a customer address relevant to routing.
// Coordinates are optional; customers without them are not routable.
type Address struct {
	Street      string    `json:"street,omitempty"`
	City        string    `json:"city,omitempty"`
	Coordinates *GeoPoint `json:"coordinates,omitempty"`
}

// CustomerLocation is the routing view of a CRM customer record.
type CustomerLocation struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Address        Address `json:"address"`
	Phone          string  `json:"phone,omitempty"`
	TotalSales     float64 `json:"totalSales"`
	LastVisitDate  string  `json:"lastVisitDate"`
	PotentialSales float64 `json:"potentialSales"`
}

// Routable reports whether the customer carries well-formed coordinates.
func (c CustomerLocation) Routable() bool {
	return c.Address.Coordinates != nil && c.Address.Coordinates.Valid()
}

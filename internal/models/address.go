package models

// Address is embedded by Person and Location. Columns get an "address_"
// prefix so both owners keep a flat table.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Package catalog manages the clinic's service price list. The master list
// of offerable treatments is read-only and grouped by category; the clinic
// picks its available services from it and prices them, with room for
// custom entries the master list does not carry.
package catalog

// Group is one category of the master service list. Non-custom service
// names are translation keys resolved by the front-end, stored verbatim.
type Group struct {
	Category string   `json:"category"`
	Services []string `json:"services"`
}

// Item is one priced service on the clinic's list.
type Item struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Custom bool    `json:"custom,omitempty"`
}

package domain

import "strings"

// Specs describes the vehicle being advertised. Make and Model are the only
// required fields; everything else is optional free-form text supplied by the
// caller.
type Specs struct {
	Make          string `json:"make"`
	Model         string `json:"model"`
	Year          string `json:"year,omitempty"`
	Trim          string `json:"trim,omitempty"`
	Engine        string `json:"engine,omitempty"`
	Transmission  string `json:"transmission,omitempty"`
	Mileage       string `json:"mileage,omitempty"`
	Axle          string `json:"axle,omitempty"`
	Sleeper       string `json:"sleeper,omitempty"`
	Tech          string `json:"tech,omitempty"`
	SellingPoints string `json:"sellingPoints,omitempty"`
	UseCase       string `json:"useCase,omitempty"`
	Location      string `json:"location,omitempty"`
	Range         string `json:"range,omitempty"`
	Contact       string `json:"contact,omitempty"`
}

// Validate checks that the required fields are present.
func (s *Specs) Validate() error {
	if strings.TrimSpace(s.Make) == "" || strings.TrimSpace(s.Model) == "" {
		return &ValidationError{Message: "specs.make and specs.model are required"}
	}
	return nil
}

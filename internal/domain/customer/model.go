package customer

// Meta is the resolved metadata of a customer used for scope matching.
type Meta struct {
	CustomerCode  string `json:"customer_code"`
	CustomerGroup string `json:"customer_group"`
	Territory     string `json:"territory"`
}

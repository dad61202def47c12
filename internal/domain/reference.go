package domain

// Category is a closed reference enumeration for incident classification.
type Category struct {
	ID   int64  `json:"id_categoria"`
	Name string `json:"nombre"`
}

// Status is a closed reference enumeration for incident lifecycle states.
type Status struct {
	ID   int64  `json:"id_estado"`
	Name string `json:"nombre"`
}

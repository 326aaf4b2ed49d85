package dto

// ColumnResponse describes one column of a table.
type ColumnResponse struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Nullable   bool    `json:"nullable"`
	PrimaryKey bool    `json:"primary_key"`
	Default    *string `json:"default,omitempty"`
	References *string `json:"references,omitempty"`
}

// TableResponse describes one table of the schema.
type TableResponse struct {
	Name           string           `json:"name"`
	Comment        string           `json:"comment,omitempty"`
	PrimaryKey     []string         `json:"primary_key"`
	PrimaryKeyName string           `json:"primary_key_name"`
	Columns        []ColumnResponse `json:"columns"`
}

// WriteResponse is returned after a batch has been written.
type WriteResponse struct {
	Table string `json:"table"`
	Mode  string `json:"mode"`
	Rows  int    `json:"rows"`
}

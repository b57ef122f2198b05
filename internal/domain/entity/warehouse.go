package entity

// Warehouse almacén físico; es la unidad de alcance de la autorización.
type Warehouse struct {
	ID      ID
	Name    string
	Address *string
}

package entity

// ProductType categoría de producto (tipo_producto).
type ProductType struct {
	ID   ID
	Name string
}

// Product producto con stock entero en un único almacén.
type Product struct {
	ID            ID
	Name          string
	ProductTypeID ID
	ProductType   string // nombre del tipo, solo lectura
	Stock         int64
	MinStock      int64
	WarehouseID   ID
}

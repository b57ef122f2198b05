package entity

// WarehouseAccess un almacén visible para el usuario con el rol que tiene en él.
type WarehouseAccess struct {
	ID      ID      `json:"id"`
	Name    string  `json:"nombre"`
	Address *string `json:"direccion"`
	Role    string  `json:"rol"`
	RoleID  ID      `json:"rolId"`
}

// AuthorizationProfile perfil de autorización calculado en cada petición (nunca se cachea).
type AuthorizationProfile struct {
	IsSystemAdmin bool              `json:"esAdminSistema"`
	Warehouses    []WarehouseAccess `json:"almacenes"`
}

// Access busca el almacén id dentro del perfil.
func (p AuthorizationProfile) Access(id ID) (WarehouseAccess, bool) {
	for _, w := range p.Warehouses {
		if w.ID == id {
			return w, true
		}
	}
	return WarehouseAccess{}, false
}

// Principal quién llama y qué puede hacer; existe solo durante una petición.
type Principal struct {
	User    User
	Profile AuthorizationProfile
}

// Package memstore implementa en memoria los puertos de repositorio para tests.
// Las transacciones se serializan con un único candado (equivalente a bloquear
// las filas afectadas) y se revierten restaurando una copia del estado.
package memstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/domain/repository"
)

// ErrUnavailable error de infraestructura simulado.
var ErrUnavailable = errors.New("memstore: store no disponible")

type state struct {
	users        map[entity.ID]entity.User
	roles        map[entity.ID]entity.Role
	warehouses   map[entity.ID]entity.Warehouse
	access       map[entity.ID]entity.UserRoleWarehouse
	sysAdmins    map[entity.ID]entity.SystemAdministrator // por user id
	products     map[entity.ID]entity.Product
	productTypes map[entity.ID]entity.ProductType
	saleTypes    map[entity.ID]entity.SaleType
	sales        map[entity.ID]entity.Sale
	seq          entity.ID
}

func newState() state {
	return state{
		users:        map[entity.ID]entity.User{},
		roles:        map[entity.ID]entity.Role{},
		warehouses:   map[entity.ID]entity.Warehouse{},
		access:       map[entity.ID]entity.UserRoleWarehouse{},
		sysAdmins:    map[entity.ID]entity.SystemAdministrator{},
		products:     map[entity.ID]entity.Product{},
		productTypes: map[entity.ID]entity.ProductType{},
		saleTypes:    map[entity.ID]entity.SaleType{},
		sales:        map[entity.ID]entity.Sale{},
	}
}

func (s state) clone() state {
	c := newState()
	c.seq = s.seq
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.roles {
		c.roles[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.access {
		c.access[k] = v
	}
	for k, v := range s.sysAdmins {
		c.sysAdmins[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.productTypes {
		c.productTypes[k] = v
	}
	for k, v := range s.saleTypes {
		c.saleTypes[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	return c
}

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu   sync.Mutex // protege st
	txMu sync.Mutex // serializa transacciones
	st   state

	// Err, si no es nil, lo devuelven todas las operaciones.
	Err error
	// Calls cuenta las consultas recibidas (útil para verificar que no hay caché).
	Calls int
}

// New crea un store vacío.
func New() *Store {
	return &Store{st: newState()}
}

func (s *Store) nextID() entity.ID {
	s.st.seq++
	return s.st.seq
}

func (s *Store) enter() error {
	s.mu.Lock()
	s.Calls++
	if s.Err != nil {
		s.mu.Unlock()
		return s.Err
	}
	return nil
}

// ─── Helpers de fixture ──────────────────────────────────────────────────────

// AddRole inserta un rol y devuelve su id.
func (s *Store) AddRole(name string) entity.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID()
	s.st.roles[id] = entity.Role{ID: id, Name: name}
	return id
}

// AddWarehouse inserta un almacén y devuelve su id.
func (s *Store) AddWarehouse(name string) entity.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID()
	s.st.warehouses[id] = entity.Warehouse{ID: id, Name: name}
	return id
}

// AddWarehouseWithID inserta un almacén con un id concreto.
func (s *Store) AddWarehouseWithID(id entity.ID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id > s.st.seq {
		s.st.seq = id
	}
	s.st.warehouses[id] = entity.Warehouse{ID: id, Name: name}
}

// RemoveWarehouse borra un almacén sin cascada (para simular FKs colgantes).
func (s *Store) RemoveWarehouse(id entity.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.st.warehouses, id)
}

// RemoveRole borra un rol sin cascada.
func (s *Store) RemoveRole(id entity.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.st.roles, id)
}

// AddUser inserta un usuario y devuelve su id.
func (s *Store) AddUser(name, email, passwordHash string) entity.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID()
	now := time.Now()
	s.st.users[id] = entity.User{ID: id, Name: name, Surname: "Test", Email: email, PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	return id
}

// Assign crea una relación usuario-rol-almacén sin validar claves foráneas.
func (s *Store) Assign(userID, warehouseID, roleID entity.ID) entity.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID()
	s.st.access[id] = entity.UserRoleWarehouse{ID: id, UserID: userID, WarehouseID: warehouseID, RoleID: roleID}
	return id
}

// MakeSystemAdmin marca al usuario como administrador del sistema.
func (s *Store) MakeSystemAdmin(userID entity.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.sysAdmins[userID] = entity.SystemAdministrator{ID: s.nextID(), UserID: userID, CreatedAt: time.Now()}
}

// AddProductType inserta un tipo de producto.
func (s *Store) AddProductType(name string) entity.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID()
	s.st.productTypes[id] = entity.ProductType{ID: id, Name: name}
	return id
}

// AddProduct inserta un producto.
func (s *Store) AddProduct(name string, warehouseID, typeID entity.ID, stock int64) entity.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID()
	s.st.products[id] = entity.Product{ID: id, Name: name, WarehouseID: warehouseID, ProductTypeID: typeID, Stock: stock}
	return id
}

// Product devuelve una copia del producto (para asserts).
func (s *Store) Product(id entity.ID) (entity.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.st.products[id]
	return p, ok
}

// AccessFor devuelve las relaciones del usuario (para asserts).
func (s *Store) AccessFor(userID entity.ID) []entity.UserRoleWarehouse {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.UserRoleWarehouse
	for _, a := range s.st.access {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SaleCount número de ventas registradas.
func (s *Store) SaleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.sales)
}

// AddSaleType inserta un tipo de venta.
func (s *Store) AddSaleType(st entity.SaleType) entity.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	st.ID = s.nextID()
	s.st.saleTypes[st.ID] = st
	return st.ID
}

// AddSale inserta una venta ya calculada.
func (s *Store) AddSale(sale entity.Sale) entity.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale.ID = s.nextID()
	s.st.sales[sale.ID] = sale
	return sale.ID
}

// ─── Repositorios ────────────────────────────────────────────────────────────

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// Roles repositorio de roles.
func (s *Store) Roles() repository.RoleRepository { return roleRepo{s} }

// Warehouses repositorio de almacenes.
func (s *Store) Warehouses() repository.WarehouseRepository { return warehouseRepo{s} }

// Access repositorio de relaciones y administradores del sistema.
func (s *Store) Access() repository.AccessRepository { return accessRepo{s} }

// Products repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return productRepo{s} }

// ProductTypes repositorio de tipos de producto.
func (s *Store) ProductTypes() repository.ProductTypeRepository { return productTypeRepo{s} }

// Sales repositorio de ventas.
func (s *Store) Sales() repository.SaleRepository { return saleRepo{s} }

// SaleTypes repositorio de tipos de venta.
func (s *Store) SaleTypes() repository.SaleTypeRepository { return saleTypeRepo{s} }

// ─── TxRunner ────────────────────────────────────────────────────────────────

func (s *Store) run(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()
	if err := fn(); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// RunIdentity ejecuta fn de forma atómica con los repos de identidad.
func (s *Store) RunIdentity(ctx context.Context, fn func(users repository.UserRepository, access repository.AccessRepository) error) error {
	return s.run(func() error { return fn(s.Users(), s.Access()) })
}

// RunSale ejecuta fn de forma atómica con los repos de ventas.
func (s *Store) RunSale(ctx context.Context, fn func(products repository.ProductRepository, sales repository.SaleRepository) error) error {
	return s.run(func() error { return fn(s.Products(), s.Sales()) })
}

// ─── users ───────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	if err := r.s.enter(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for _, o := range r.s.st.users {
		if strings.EqualFold(o.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	u.ID = r.s.nextID()
	r.s.st.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id entity.ID) (*entity.User, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, u := range r.s.st.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) EmailTaken(_ context.Context, email string, excludeID entity.ID) (bool, error) {
	if err := r.s.enter(); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	for _, u := range r.s.st.users {
		if u.ID != excludeID && strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	if err := r.s.enter(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.users[u.ID] = *u
	return nil
}

func (r userRepo) Delete(_ context.Context, id entity.ID) error {
	if err := r.s.enter(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	delete(r.s.st.users, id)
	delete(r.s.st.sysAdmins, id)
	for k, a := range r.s.st.access {
		if a.UserID == id {
			delete(r.s.st.access, k)
		}
	}
	return nil
}

func (r userRepo) ListByWarehouse(_ context.Context, warehouseID entity.ID) ([]*entity.User, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	ids := map[entity.ID]bool{}
	for _, a := range r.s.st.access {
		if a.WarehouseID == warehouseID {
			ids[a.UserID] = true
		}
	}
	var out []*entity.User
	for id := range ids {
		if u, ok := r.s.st.users[id]; ok {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ─── roles ───────────────────────────────────────────────────────────────────

type roleRepo struct{ s *Store }

func (r roleRepo) GetByID(_ context.Context, id entity.ID) (*entity.Role, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	role, ok := r.s.st.roles[id]
	if !ok {
		return nil, nil
	}
	return &role, nil
}

func (r roleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, role := range r.s.st.roles {
		if role.Name == name {
			role := role
			return &role, nil
		}
	}
	return nil, nil
}

func (r roleRepo) ListByIDs(_ context.Context, ids []entity.ID) ([]*entity.Role, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []*entity.Role
	for _, id := range uniq(ids) {
		if role, ok := r.s.st.roles[id]; ok {
			role := role
			out = append(out, &role)
		}
	}
	return out, nil
}

func (r roleRepo) List(_ context.Context) ([]*entity.Role, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []*entity.Role
	for _, role := range r.s.st.roles {
		role := role
		out = append(out, &role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ─── warehouses ──────────────────────────────────────────────────────────────

type warehouseRepo struct{ s *Store }

func (r warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	if err := r.s.enter(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	w.ID = r.s.nextID()
	r.s.st.warehouses[w.ID] = *w
	return nil
}

func (r warehouseRepo) GetByID(_ context.Context, id entity.ID) (*entity.Warehouse, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	w, ok := r.s.st.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r warehouseRepo) ListAll(_ context.Context) ([]*entity.Warehouse, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []*entity.Warehouse
	for _, w := range r.s.st.warehouses {
		w := w
		out = append(out, &w)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r warehouseRepo) ListByIDs(_ context.Context, ids []entity.ID) ([]*entity.Warehouse, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []*entity.Warehouse
	for _, id := range uniq(ids) {
		if w, ok := r.s.st.warehouses[id]; ok {
			w := w
			out = append(out, &w)
		}
	}
	return out, nil
}

// ─── access ──────────────────────────────────────────────────────────────────

type accessRepo struct{ s *Store }

func (r accessRepo) IsSystemAdmin(_ context.Context, userID entity.ID) (bool, error) {
	if err := r.s.enter(); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	_, ok := r.s.st.sysAdmins[userID]
	return ok, nil
}

func (r accessRepo) ListAccessRows(_ context.Context, userID entity.ID) ([]entity.AccessRow, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var rows []entity.AccessRow
	for _, a := range r.s.st.access {
		if a.UserID != userID {
			continue
		}
		row := entity.AccessRow{JoinID: a.ID, WarehouseID: a.WarehouseID, RoleID: a.RoleID}
		if w, ok := r.s.st.warehouses[a.WarehouseID]; ok {
			name := w.Name
			row.WarehouseName = &name
			row.WarehouseAddress = w.Address
		}
		if role, ok := r.s.st.roles[a.RoleID]; ok {
			name := role.Name
			row.RoleName = &name
		}
		rows = append(rows, row)
	}
	// NULLS LAST como en PostgreSQL.
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].WarehouseName, rows[j].WarehouseName
		switch {
		case a == nil && b == nil:
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a < *b
		}
		return rows[i].JoinID < rows[j].JoinID
	})
	return rows, nil
}

func (r accessRepo) HasRole(_ context.Context, userID, roleID entity.ID) (bool, error) {
	if err := r.s.enter(); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	for _, a := range r.s.st.access {
		if a.UserID == userID && a.RoleID == roleID {
			return true, nil
		}
	}
	return false, nil
}

func (r accessRepo) ReplaceForUser(_ context.Context, userID entity.ID, rows []entity.UserRoleWarehouse) error {
	if err := r.s.enter(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for k, a := range r.s.st.access {
		if a.UserID == userID {
			delete(r.s.st.access, k)
		}
	}
	seen := map[entity.ID]bool{}
	for _, row := range rows {
		if seen[row.WarehouseID] {
			return domain.ErrDuplicate
		}
		seen[row.WarehouseID] = true
		id := r.s.nextID()
		r.s.st.access[id] = entity.UserRoleWarehouse{ID: id, UserID: userID, WarehouseID: row.WarehouseID, RoleID: row.RoleID}
	}
	return nil
}

func (r accessRepo) DeleteForUser(_ context.Context, userID entity.ID) error {
	if err := r.s.enter(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for k, a := range r.s.st.access {
		if a.UserID == userID {
			delete(r.s.st.access, k)
		}
	}
	return nil
}

func (r accessRepo) GrantSystemAdmin(_ context.Context, userID entity.ID) error {
	if err := r.s.enter(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.sysAdmins[userID]; ok {
		return nil
	}
	r.s.st.sysAdmins[userID] = entity.SystemAdministrator{ID: r.s.nextID(), UserID: userID, CreatedAt: time.Now()}
	return nil
}

func (r accessRepo) RevokeSystemAdmin(_ context.Context, userID entity.ID) error {
	if err := r.s.enter(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	delete(r.s.st.sysAdmins, userID)
	return nil
}

// ─── products ────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	if err := r.s.enter(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	p.ID = r.s.nextID()
	r.s.st.products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(_ context.Context, id entity.ID) (*entity.Product, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	p, ok := r.s.st.products[id]
	if !ok {
		return nil, nil
	}
	p.ProductType = r.s.st.productTypes[p.ProductTypeID].Name
	return &p, nil
}

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	if err := r.s.enter(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.products[p.ID] = *p
	return nil
}

func (r productRepo) Delete(_ context.Context, id entity.ID) error {
	if err := r.s.enter(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	delete(r.s.st.products, id)
	return nil
}

func (r productRepo) list(filter func(entity.Product) bool) []*entity.Product {
	var out []*entity.Product
	for _, p := range r.s.st.products {
		if filter(p) {
			p := p
			p.ProductType = r.s.st.productTypes[p.ProductTypeID].Name
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r productRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return r.list(func(entity.Product) bool { return true }), nil
}

func (r productRepo) ListByWarehouse(_ context.Context, warehouseID entity.ID) ([]*entity.Product, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return r.list(func(p entity.Product) bool { return p.WarehouseID == warehouseID }), nil
}

func (r productRepo) GetForUpdate(_ context.Context, warehouseID entity.ID, ids []entity.ID) ([]*entity.Product, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	want := map[entity.ID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	return r.list(func(p entity.Product) bool { return want[p.ID] && p.WarehouseID == warehouseID }), nil
}

func (r productRepo) UpdateStock(_ context.Context, id entity.ID, stock int64) error {
	if err := r.s.enter(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	p, ok := r.s.st.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	r.s.st.products[id] = p
	return nil
}

type productTypeRepo struct{ s *Store }

func (r productTypeRepo) List(_ context.Context) ([]*entity.ProductType, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []*entity.ProductType
	for _, t := range r.s.st.productTypes {
		t := t
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r productTypeRepo) GetByID(_ context.Context, id entity.ID) (*entity.ProductType, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	t, ok := r.s.st.productTypes[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// ─── sales ───────────────────────────────────────────────────────────────────

type saleRepo struct{ s *Store }

func (r saleRepo) withType(sale entity.Sale) *entity.Sale {
	if st, ok := r.s.st.saleTypes[sale.SaleTypeID]; ok {
		st := st
		sale.SaleType = &st
	}
	return &sale
}

func (r saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	if err := r.s.enter(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	sale.ID = r.s.nextID()
	stored := *sale
	stored.SaleType = nil
	r.s.st.sales[sale.ID] = stored
	return nil
}

func (r saleRepo) GetByID(_ context.Context, id entity.ID) (*entity.Sale, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	sale, ok := r.s.st.sales[id]
	if !ok {
		return nil, nil
	}
	return r.withType(sale), nil
}

func (r saleRepo) Update(_ context.Context, sale *entity.Sale) error {
	if err := r.s.enter(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.sales[sale.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *sale
	stored.SaleType = nil
	r.s.st.sales[sale.ID] = stored
	return nil
}

func (r saleRepo) Delete(_ context.Context, id entity.ID) error {
	if err := r.s.enter(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	delete(r.s.st.sales, id)
	return nil
}

func (r saleRepo) ListByWarehouse(_ context.Context, warehouseID entity.ID) ([]*entity.Sale, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []*entity.Sale
	for _, sale := range r.s.st.sales {
		if sale.WarehouseID == warehouseID {
			out = append(out, r.withType(sale))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r saleRepo) ListInRange(_ context.Context, warehouseID *entity.ID, from, to time.Time) ([]*entity.Sale, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []*entity.Sale
	for _, sale := range r.s.st.sales {
		if warehouseID != nil && sale.WarehouseID != *warehouseID {
			continue
		}
		if sale.Date.Before(from) || sale.Date.After(to) {
			continue
		}
		out = append(out, r.withType(sale))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type saleTypeRepo struct{ s *Store }

func (r saleTypeRepo) Create(_ context.Context, st *entity.SaleType) error {
	if err := r.s.enter(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	st.ID = r.s.nextID()
	r.s.st.saleTypes[st.ID] = *st
	return nil
}

func (r saleTypeRepo) GetByID(_ context.Context, id entity.ID) (*entity.SaleType, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	st, ok := r.s.st.saleTypes[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (r saleTypeRepo) Update(_ context.Context, st *entity.SaleType) error {
	if err := r.s.enter(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.saleTypes[st.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.saleTypes[st.ID] = *st
	return nil
}

func (r saleTypeRepo) Delete(_ context.Context, id entity.ID) error {
	if err := r.s.enter(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	delete(r.s.st.saleTypes, id)
	return nil
}

func (r saleTypeRepo) List(_ context.Context) ([]*entity.SaleType, error) {
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []*entity.SaleType
	for _, st := range r.s.st.saleTypes {
		st := st
		out = append(out, &st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func uniq(ids []entity.ID) []entity.ID {
	seen := make(map[entity.ID]bool, len(ids))
	out := make([]entity.ID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

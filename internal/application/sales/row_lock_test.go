package sales

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/domain/repository"
)

// rowLockDB tabla de productos con un candado por fila, como SELECT ... FOR UPDATE.
// Las transacciones no se serializan entre sí: solo chocan en las filas que bloquean.
type rowLockDB struct {
	mu    sync.Mutex
	stock map[entity.ID]int64
	rows  map[entity.ID]*sync.Mutex
	wh    entity.ID
}

func newRowLockDB(warehouseID entity.ID, stock map[entity.ID]int64) *rowLockDB {
	db := &rowLockDB{stock: stock, rows: map[entity.ID]*sync.Mutex{}, wh: warehouseID}
	for id := range stock {
		db.rows[id] = &sync.Mutex{}
	}
	return db
}

func (db *rowLockDB) current(id entity.ID) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.stock[id]
}

// rowLockTx implementa TxRunner sobre rowLockDB; afterLock se invoca con el número de
// transacción justo después de obtener los bloqueos.
type rowLockTx struct {
	db        *rowLockDB
	sales     repository.SaleRepository
	afterLock func(txn int32)
	seq       atomic.Int32
}

func (r *rowLockTx) RunSale(ctx context.Context, fn func(repository.ProductRepository, repository.SaleRepository) error) error {
	tx := &lockedProducts{db: r.db, txn: r.seq.Add(1), hook: r.afterLock, pending: map[entity.ID]int64{}}
	defer tx.release()
	if err := fn(tx, r.sales); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// lockedProducts vista transaccional: escrituras diferidas hasta el commit,
// bloqueos retenidos hasta el final de la transacción.
type lockedProducts struct {
	repository.ProductRepository // solo GetForUpdate y UpdateStock participan en la venta

	db      *rowLockDB
	txn     int32
	hook    func(txn int32)
	held    []*sync.Mutex
	pending map[entity.ID]int64
}

func (t *lockedProducts) GetForUpdate(_ context.Context, warehouseID entity.ID, ids []entity.ID) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range ids {
		row, ok := t.db.rows[id]
		if !ok || warehouseID != t.db.wh {
			continue
		}
		row.Lock()
		t.held = append(t.held, row)
		out = append(out, &entity.Product{ID: id, Name: fmt.Sprintf("p%d", id), Stock: t.db.current(id), WarehouseID: warehouseID})
		// Deja a otras transacciones avanzar entre un bloqueo y el siguiente.
		time.Sleep(time.Millisecond)
	}
	if t.hook != nil {
		t.hook(t.txn)
	}
	return out, nil
}

func (t *lockedProducts) UpdateStock(_ context.Context, id entity.ID, stock int64) error {
	t.pending[id] = stock
	return nil
}

func (t *lockedProducts) commit() {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	for id, s := range t.pending {
		t.db.stock[id] = s
	}
}

func (t *lockedProducts) release() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.held[i].Unlock()
	}
}

func TestCreate_BloqueoDeFilaEsperaAlCommit(t *testing.T) {
	e := newEnv()
	emp := e.user("emp", e.centro, e.emp)
	p := e.principal(t, emp)
	const prod entity.ID = 500

	locked := make(chan struct{})
	release := make(chan struct{})
	db := newRowLockDB(e.centro, map[entity.ID]int64{prod: 5})
	tx := &rowLockTx{db: db, sales: e.store.Sales(), afterLock: func(txn int32) {
		if txn == 1 {
			close(locked)
			<-release
		}
	}}
	uc := NewUseCase(tx, e.store.Sales(), e.store.SaleTypes(), 0.19, e.uc.log)

	first := make(chan error, 1)
	go func() {
		_, err := uc.Create(context.Background(), p, saleReq("1000", e.centro, e.efectivo, item(prod, 5)))
		first <- err
	}()
	<-locked

	second := make(chan error, 1)
	go func() {
		_, err := uc.Create(context.Background(), p, saleReq("1000", e.centro, e.efectivo, item(prod, 5)))
		second <- err
	}()

	select {
	case err := <-second:
		t.Fatalf("la segunda venta terminó con la fila bloqueada por la primera: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-first)
	assert.ErrorIs(t, <-second, domain.ErrInsufficientStock, "tras el commit la segunda venta ve stock 0")
	assert.Equal(t, int64(0), db.current(prod))
	assert.Equal(t, 1, e.store.SaleCount())
}

func TestCreate_OrdenDeLineasNoProvocaInterbloqueo(t *testing.T) {
	e := newEnv()
	emp := e.user("emp", e.centro, e.emp)
	p := e.principal(t, emp)
	const a, b entity.ID = 700, 701

	db := newRowLockDB(e.centro, map[entity.ID]int64{a: 100, b: 100})
	uc := NewUseCase(&rowLockTx{db: db, sales: e.store.Sales()}, e.store.Sales(), e.store.SaleTypes(), 0.19, e.uc.log)

	const workers = 20
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			first, second := a, b
			if i%2 == 1 {
				first, second = b, a
			}
			_, err := uc.Create(context.Background(), p,
				saleReq("1000", e.centro, e.efectivo, item(first, 1), item(second, 1)))
			errs <- err
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ventas concurrentes con líneas en distinto orden quedaron interbloqueadas")
	}
	close(errs)

	var failed []error
	for err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	assert.Empty(t, failed, "%v", errors.Join(failed...))
	assert.Equal(t, int64(100-workers), db.current(a))
	assert.Equal(t, int64(100-workers), db.current(b))
}

// Package memory implementa los puertos del gateway en memoria (GATEWAY_DRIVER=memory y tests).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/estoque-ti/internal/application/inventory"
	"github.com/jhoicas/estoque-ti/internal/domain"
	"github.com/jhoicas/estoque-ti/internal/domain/entity"
	"github.com/jhoicas/estoque-ti/internal/domain/repository"
)

// Operaciones sobre las que se puede inyectar un fallo con FailOn.
const (
	OpProductCreate  = "produtos.create"
	OpProductGet     = "produtos.get"
	OpProductUpdate  = "produtos.update"
	OpProductSetQty  = "produtos.set_quantity"
	OpProductList    = "produtos.list"
	OpProductDelete  = "produtos.delete"
	OpMovementCreate = "movimentacoes.create"
	OpMovementList   = "movimentacoes.list"
	OpMovementLatest = "movimentacoes.latest"
	OpMovementDelete = "movimentacoes.delete"
	OpShipmentCreate = "envios_filiais.create"
	OpShipmentList   = "envios_filiais.list"
	OpBranchList     = "filiais.list"
)

// Store guarda las cuatro tablas. Todas las lecturas devuelven copias.
type Store struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.Movement
	shipments []*entity.BranchShipment
	branches  []*entity.Branch
	failures  map[string]error
	now       func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products: make(map[string]*entity.Product),
		failures: make(map[string]error),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj usado para fechas por defecto.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// FailOn hace que la operación op devuelva err hasta que se llame con nil.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// Seed carga datos iniciales (demo o fixtures de tests).
func (s *Store) Seed(products []*entity.Product, movements []*entity.Movement, branches []*entity.Branch, shipments []*entity.BranchShipment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		cp := *p
		if cp.ID == "" {
			cp.ID = uuid.New().String()
		}
		s.products[cp.ID] = &cp
	}
	for _, m := range movements {
		cp := *m
		cp.Product = nil
		if cp.ID == "" {
			cp.ID = uuid.New().String()
		}
		s.movements = append(s.movements, &cp)
	}
	for _, b := range branches {
		cp := *b
		s.branches = append(s.branches, &cp)
	}
	for _, sh := range shipments {
		cp := *sh
		if cp.ID == "" {
			cp.ID = uuid.New().String()
		}
		s.shipments = append(s.shipments, &cp)
	}
}

// Products, Movements, Branches y Shipments exponen cada tabla como puerto.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }
func (s *Store) Branches() *BranchRepo { return &BranchRepo{s: s} }
func (s *Store) Shipments() *ShipmentRepo { return &ShipmentRepo{s: s} }

// fail devuelve el error inyectado para op. Llamar con mu tomado.
func (s *Store) fail(op string) error {
	return s.failures[op]
}

type tables struct {
	products  map[string]*entity.Product
	movements []*entity.Movement
	shipments []*entity.BranchShipment
}

func (s *Store) copyTables() tables {
	t := tables{
		products:  make(map[string]*entity.Product, len(s.products)),
		movements: append([]*entity.Movement(nil), s.movements...),
		shipments: append([]*entity.BranchShipment(nil), s.shipments...),
	}
	for id, p := range s.products {
		cp := *p
		t.products[id] = &cp
	}
	return t
}

// ─── TxRunner ─────────────────────────────────────────────────────────────────

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner serializa transacciones y restaura la copia previa si fn falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn; ante error, o si ctx se cancela antes de confirmar, las tablas
// vuelven al estado anterior.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.Lock()
	before := r.s.copyTables()
	r.s.mu.Unlock()

	err := fn(r.s.Movements(), r.s.Products())
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		r.s.restore(before)
		return err
	}
	return nil
}

func (s *Store) restore(t tables) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = t.products
	s.movements = t.movements
	s.shipments = t.shipments
}

// ─── produtos ─────────────────────────────────────────────────────────────────

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo tabla produtos en memoria.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpProductCreate); err != nil {
		return err
	}
	for _, existing := range r.s.products {
		if existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.s.now()
	}
	cp := *p
	r.s.products[cp.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpProductGet); err != nil {
		return nil, err
	}
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) MaxCode(_ context.Context) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpProductGet); err != nil {
		return "", err
	}
	max := ""
	for _, p := range r.s.products {
		if p.Code > max {
			max = p.Code
		}
	}
	return max, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpProductUpdate); err != nil {
		return err
	}
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Name = p.Name
	cur.MinQuantity = p.MinQuantity
	cur.Category = p.Category
	cur.Description = p.Description
	cur.NotifyOnLow = p.NotifyOnLow
	cur.NotifyEmail = p.NotifyEmail
	return nil
}

func (r *ProductRepo) SetQuantity(_ context.Context, id string, previous, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpProductSetQty); err != nil {
		return err
	}
	cur, ok := r.s.products[id]
	if !ok || cur.Quantity != previous {
		return domain.ErrConflict
	}
	cur.Quantity = quantity
	return nil
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpProductList); err != nil {
		return nil, err
	}
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].Code < list[j].Code
	})
	return list, nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpProductDelete); err != nil {
		return err
	}
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	kept := r.s.shipments[:0:0]
	for _, sh := range r.s.shipments {
		if sh.ProductID != id {
			kept = append(kept, sh)
		}
	}
	r.s.shipments = kept
	return nil
}

// ─── movimentacoes ────────────────────────────────────────────────────────────

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo tabla movimentacoes en memoria.
type MovementRepo struct{ s *Store }

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpMovementCreate); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Date.IsZero() {
		m.Date = r.s.now()
	}
	cp := *m
	cp.Product = nil
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

// newestFirst copia las filas de más reciente a más antigua; empates por orden inverso de inserción.
func (r *MovementRepo) newestFirst() []*entity.Movement {
	list := make([]*entity.Movement, 0, len(r.s.movements))
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		cp := *r.s.movements[i]
		list = append(list, &cp)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return list
}

func (r *MovementRepo) ListWithProduct(_ context.Context) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpMovementList); err != nil {
		return nil, err
	}
	list := r.newestFirst()
	for _, m := range list {
		if p, ok := r.s.products[m.ProductID]; ok {
			cp := *p
			m.Product = &cp
		}
	}
	return list, nil
}

func (r *MovementRepo) LatestFor(_ context.Context, productID string, branchID *string) (*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpMovementLatest); err != nil {
		return nil, err
	}
	for _, m := range r.newestFirst() {
		if m.ProductID == productID && sameBranch(m.BranchID, branchID) {
			return m, nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) DeleteByProduct(_ context.Context, productID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpMovementDelete); err != nil {
		return err
	}
	kept := r.s.movements[:0:0]
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	return nil
}

func sameBranch(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ─── envios_filiais ───────────────────────────────────────────────────────────

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo tabla envios_filiais en memoria.
type ShipmentRepo struct{ s *Store }

func (r *ShipmentRepo) Create(_ context.Context, sh *entity.BranchShipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpShipmentCreate); err != nil {
		return err
	}
	if sh.ID == "" {
		sh.ID = uuid.New().String()
	}
	if sh.SentAt.IsZero() {
		sh.SentAt = r.s.now()
	}
	cp := *sh
	r.s.shipments = append(r.s.shipments, &cp)
	return nil
}

func (r *ShipmentRepo) List(_ context.Context) ([]*entity.BranchShipment, error) {
	return r.filter(func(*entity.BranchShipment) bool { return true })
}

func (r *ShipmentRepo) ListByBranch(_ context.Context, branchID *string) ([]*entity.BranchShipment, error) {
	return r.filter(func(sh *entity.BranchShipment) bool { return sameBranch(sh.BranchID, branchID) })
}

func (r *ShipmentRepo) filter(keep func(*entity.BranchShipment) bool) ([]*entity.BranchShipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpShipmentList); err != nil {
		return nil, err
	}
	var list []*entity.BranchShipment
	for i := len(r.s.shipments) - 1; i >= 0; i-- {
		if sh := r.s.shipments[i]; keep(sh) {
			cp := *sh
			list = append(list, &cp)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].SentAt.After(list[j].SentAt) })
	return list, nil
}

// ─── filiais ──────────────────────────────────────────────────────────────────

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo tabla filiais en memoria (solo lectura).
type BranchRepo struct{ s *Store }

func (r *BranchRepo) List(_ context.Context) ([]*entity.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpBranchList); err != nil {
		return nil, err
	}
	list := make([]*entity.Branch, 0, len(r.s.branches))
	for _, b := range r.s.branches {
		cp := *b
		list = append(list, &cp)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *BranchRepo) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.branches {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

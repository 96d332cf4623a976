// Package state mantiene el snapshot en memoria de produtos, movimentações,
// filiais y envíos, recargado por completo después de cada acción que muta datos.
package state

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/estoque-ti/internal/domain"
	"github.com/jhoicas/estoque-ti/internal/domain/entity"
	"github.com/jhoicas/estoque-ti/internal/domain/inventory"
	"github.com/jhoicas/estoque-ti/internal/domain/repository"
)

// Stats indicadores del dashboard.
type Stats struct {
	TotalProducts  int `json:"total_products"`
	LowStock       int `json:"low_stock"`
	TodayMovements int `json:"today_movements"`
}

// Snapshot copia inmutable del estado cargado. No modificar los slices.
type Snapshot struct {
	Products  []*entity.Product
	Movements []*entity.Movement // más recientes primero
	Branches  []*entity.Branch   // ordenadas por nombre
	Shipments []*entity.BranchShipment
	Stats     Stats
	LoadedAt  time.Time

	branchNames map[string]string
	productByID map[string]*entity.Product
}

// BranchName resuelve el nombre de la filial: "—" para nil, "ID <id>" si no se conoce.
func (s *Snapshot) BranchName(id *string) string {
	if id == nil {
		return "—"
	}
	if name, ok := s.branchNames[*id]; ok {
		return name
	}
	return "ID " + *id
}

// Product busca un producto cargado por ID.
func (s *Snapshot) Product(id string) *entity.Product {
	return s.productByID[id]
}

// Cache dueño del snapshot. Reload reemplaza el snapshot completo; las recargas
// se serializan para que dos acciones rápidas no intercalen resultados.
type Cache struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	branches  repository.BranchRepository
	shipments repository.ShipmentRepository
	loc       *time.Location
	now       func() time.Time

	reloadMu sync.Mutex
	mu       sync.RWMutex
	snap     *Snapshot
}

// NewCache construye la caché vacía; llamar Reload antes de servir.
func NewCache(
	products repository.ProductRepository,
	movements repository.MovementRepository,
	branches repository.BranchRepository,
	shipments repository.ShipmentRepository,
	loc *time.Location,
) *Cache {
	if loc == nil {
		loc = time.UTC
	}
	return &Cache{
		products:  products,
		movements: movements,
		branches:  branches,
		shipments: shipments,
		loc:       loc,
		now:       time.Now,
		snap:      buildSnapshot(nil, nil, nil, nil, time.Time{}, loc),
	}
}

// WithClock reemplaza el reloj (tests).
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Snapshot devuelve el último snapshot cargado (nunca nil).
func (c *Cache) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Reload carga las cuatro tablas en paralelo y reemplaza el snapshot.
// Si alguna carga falla se conserva el snapshot anterior.
func (c *Cache) Reload(ctx context.Context) error {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	var (
		products  []*entity.Product
		movements []*entity.Movement
		branches  []*entity.Branch
		shipments []*entity.BranchShipment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = c.products.List(gctx)
		return wrapLoad("produtos", err)
	})
	g.Go(func() (err error) {
		movements, err = c.movements.ListWithProduct(gctx)
		return wrapLoad("movimentacoes", err)
	})
	g.Go(func() (err error) {
		branches, err = c.branches.List(gctx)
		return wrapLoad("filiais", err)
	})
	g.Go(func() (err error) {
		shipments, err = c.shipments.List(gctx)
		return wrapLoad("envios_filiais", err)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	snap := buildSnapshot(products, movements, branches, shipments, c.now(), c.loc)
	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()
	return nil
}

func wrapLoad(table string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: carregar %s: %w", domain.ErrGateway, table, err)
}

func buildSnapshot(
	products []*entity.Product,
	movements []*entity.Movement,
	branches []*entity.Branch,
	shipments []*entity.BranchShipment,
	now time.Time,
	loc *time.Location,
) *Snapshot {
	sortedBranches := append([]*entity.Branch(nil), branches...)
	sort.SliceStable(sortedBranches, func(i, j int) bool { return sortedBranches[i].Name < sortedBranches[j].Name })

	snap := &Snapshot{
		Products:    products,
		Movements:   movements,
		Branches:    sortedBranches,
		Shipments:   shipments,
		LoadedAt:    now,
		branchNames: make(map[string]string, len(branches)),
		productByID: make(map[string]*entity.Product, len(products)),
	}
	for _, b := range branches {
		snap.branchNames[b.ID] = b.Name
	}
	for _, p := range products {
		snap.productByID[p.ID] = p
	}
	snap.Stats = ComputeStats(products, movements, now, loc)
	return snap
}

// ComputeStats calcula total de produtos, produtos en/bajo el mínimo y
// movimentações cuyo día (en loc) coincide con el día de now.
func ComputeStats(products []*entity.Product, movements []*entity.Movement, now time.Time, loc *time.Location) Stats {
	if loc == nil {
		loc = time.UTC
	}
	today := now.In(loc).Format(time.DateOnly)
	st := Stats{TotalProducts: len(products)}
	for _, p := range products {
		if inventory.IsLowStock(p.Quantity, p.MinQuantity) {
			st.LowStock++
		}
	}
	for _, m := range movements {
		if m.Date.In(loc).Format(time.DateOnly) == today {
			st.TodayMovements++
		}
	}
	return st
}

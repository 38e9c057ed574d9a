package service

import (
	"context"
	"sort"
	"time"

	"comercial/internal/authz"
	"comercial/internal/dto"
	"comercial/internal/model"
	"comercial/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Compras ───────────────────────────────────────────────────────────────────
// memCompraRepo keeps everything in maps. WithTx snapshots both maps and
// restores them when fn fails, which is what a rolled back transaction looks like.

type memCompraRepo struct {
	compras  map[uuid.UUID]model.Compra
	detalles map[uuid.UUID]model.DetalleCompra
	clock    time.Time

	productos map[uuid.UUID]model.Producto

	failUpdateTotales  error
	beforeUpdateTotals func()
	updateTotalesCalls int
	// failDeleteHeader fails Delete after the lines are gone.
	failDeleteHeader error
}

func newMemCompraRepo(productos map[uuid.UUID]model.Producto) *memCompraRepo {
	return &memCompraRepo{
		compras:   map[uuid.UUID]model.Compra{},
		detalles:  map[uuid.UUID]model.DetalleCompra{},
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		productos: productos,
	}
}

func (r *memCompraRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *memCompraRepo) WithTx(_ context.Context, fn func(tx repository.CompraRepository) error) error {
	compras := make(map[uuid.UUID]model.Compra, len(r.compras))
	for k, v := range r.compras {
		compras[k] = v
	}
	detalles := make(map[uuid.UUID]model.DetalleCompra, len(r.detalles))
	for k, v := range r.detalles {
		detalles[k] = v
	}
	if err := fn(r); err != nil {
		r.compras, r.detalles = compras, detalles
		return err
	}
	return nil
}

func (r *memCompraRepo) Create(_ context.Context, c *model.Compra) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = r.tick()
	stored := *c
	stored.Detalles = nil
	r.compras[c.ID] = stored
	return nil
}

func (r *memCompraRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error) {
	c, ok := r.compras[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	lineas, _ := r.ListDetalles(ctx, id)
	for i := range lineas {
		if p, ok := r.productos[lineas[i].ProductoID]; ok {
			lineas[i].Producto = &p
		}
	}
	c.Detalles = lineas
	return &c, nil
}

func (r *memCompraRepo) List(_ context.Context, filter dto.DocumentoFilter) ([]model.Compra, int64, error) {
	var out []model.Compra
	for _, c := range r.compras {
		if filter.Estado == "" || c.Estado == filter.Estado {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memCompraRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	c, ok := r.compras[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Estado = estado
	r.compras[id] = c
	return nil
}

func (r *memCompraRepo) UpdateTotales(_ context.Context, id uuid.UUID, t model.Totales) error {
	r.updateTotalesCalls++
	if r.failUpdateTotales != nil {
		return r.failUpdateTotales
	}
	if hook := r.beforeUpdateTotals; hook != nil {
		r.beforeUpdateTotals = nil
		hook()
	}
	c, ok := r.compras[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Subtotal, c.DescuentoTotal, c.Total = t.Subtotal, t.DescuentoTotal, t.Total
	r.compras[id] = c
	return nil
}

func (r *memCompraRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.compras[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for k, d := range r.detalles {
		if d.CompraID == id {
			delete(r.detalles, k)
		}
	}
	if r.failDeleteHeader != nil {
		return r.failDeleteHeader
	}
	delete(r.compras, id)
	return nil
}

func (r *memCompraRepo) SaveDetalle(_ context.Context, d *model.DetalleCompra) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
		d.CreatedAt = r.tick()
	}
	stored := *d
	stored.Producto = nil
	r.detalles[d.ID] = stored
	return nil
}

func (r *memCompraRepo) FindDetalle(_ context.Context, compraID, detalleID uuid.UUID) (*model.DetalleCompra, error) {
	d, ok := r.detalles[detalleID]
	if !ok || d.CompraID != compraID {
		return nil, gorm.ErrRecordNotFound
	}
	return &d, nil
}

func (r *memCompraRepo) DeleteDetalle(_ context.Context, d *model.DetalleCompra) error {
	delete(r.detalles, d.ID)
	return nil
}

func (r *memCompraRepo) ListDetalles(_ context.Context, compraID uuid.UUID) ([]model.DetalleCompra, error) {
	var out []model.DetalleCompra
	for _, d := range r.detalles {
		if d.CompraID == compraID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ── Ventas ────────────────────────────────────────────────────────────────────

type memVentaRepo struct {
	ventas   map[uuid.UUID]model.Venta
	detalles map[uuid.UUID]model.DetalleVenta
	clock    time.Time

	productos map[uuid.UUID]model.Producto

	failUpdateTotales  error
	beforeUpdateTotals func()
	updateTotalesCalls int
	// failDeleteHeader fails Delete after the lines are gone.
	failDeleteHeader error
}

func newMemVentaRepo(productos map[uuid.UUID]model.Producto) *memVentaRepo {
	return &memVentaRepo{
		ventas:    map[uuid.UUID]model.Venta{},
		detalles:  map[uuid.UUID]model.DetalleVenta{},
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		productos: productos,
	}
}

func (r *memVentaRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *memVentaRepo) WithTx(_ context.Context, fn func(tx repository.VentaRepository) error) error {
	ventas := make(map[uuid.UUID]model.Venta, len(r.ventas))
	for k, v := range r.ventas {
		ventas[k] = v
	}
	detalles := make(map[uuid.UUID]model.DetalleVenta, len(r.detalles))
	for k, v := range r.detalles {
		detalles[k] = v
	}
	if err := fn(r); err != nil {
		r.ventas, r.detalles = ventas, detalles
		return err
	}
	return nil
}

func (r *memVentaRepo) Create(_ context.Context, c *model.Venta) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = r.tick()
	stored := *c
	stored.Detalles = nil
	r.ventas[c.ID] = stored
	return nil
}

func (r *memVentaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	c, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	lineas, _ := r.ListDetalles(ctx, id)
	for i := range lineas {
		if p, ok := r.productos[lineas[i].ProductoID]; ok {
			lineas[i].Producto = &p
		}
	}
	c.Detalles = lineas
	return &c, nil
}

func (r *memVentaRepo) List(_ context.Context, filter dto.DocumentoFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, c := range r.ventas {
		if filter.Estado == "" || c.Estado == filter.Estado {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memVentaRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	c, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Estado = estado
	r.ventas[id] = c
	return nil
}

func (r *memVentaRepo) UpdateTotales(_ context.Context, id uuid.UUID, t model.Totales) error {
	r.updateTotalesCalls++
	if r.failUpdateTotales != nil {
		return r.failUpdateTotales
	}
	if hook := r.beforeUpdateTotals; hook != nil {
		r.beforeUpdateTotals = nil
		hook()
	}
	c, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Subtotal, c.DescuentoTotal, c.Total = t.Subtotal, t.DescuentoTotal, t.Total
	r.ventas[id] = c
	return nil
}

func (r *memVentaRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.ventas[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for k, d := range r.detalles {
		if d.VentaID == id {
			delete(r.detalles, k)
		}
	}
	if r.failDeleteHeader != nil {
		return r.failDeleteHeader
	}
	delete(r.ventas, id)
	return nil
}

func (r *memVentaRepo) SaveDetalle(_ context.Context, d *model.DetalleVenta) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
		d.CreatedAt = r.tick()
	}
	stored := *d
	stored.Producto = nil
	r.detalles[d.ID] = stored
	return nil
}

func (r *memVentaRepo) FindDetalle(_ context.Context, ventaID, detalleID uuid.UUID) (*model.DetalleVenta, error) {
	d, ok := r.detalles[detalleID]
	if !ok || d.VentaID != ventaID {
		return nil, gorm.ErrRecordNotFound
	}
	return &d, nil
}

func (r *memVentaRepo) DeleteDetalle(_ context.Context, d *model.DetalleVenta) error {
	delete(r.detalles, d.ID)
	return nil
}

func (r *memVentaRepo) ListDetalles(_ context.Context, ventaID uuid.UUID) ([]model.DetalleVenta, error) {
	var out []model.DetalleVenta
	for _, d := range r.detalles {
		if d.VentaID == ventaID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ── Catalog ───────────────────────────────────────────────────────────────────

type memProductoRepo struct{ items map[uuid.UUID]model.Producto }

func (r *memProductoRepo) Create(_ context.Context, p *model.Producto) error {
	p.ID = uuid.New()
	r.items[p.ID] = *p
	return nil
}

func (r *memProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *memProductoRepo) List(context.Context, dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.items {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *memProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.items[p.ID] = *p
	return nil
}

func (r *memProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p := r.items[id]
	p.Estado = false
	r.items[id] = p
	return nil
}

type memProveedorRepo struct{ items map[uuid.UUID]model.Proveedor }

func (r *memProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	p.ID = uuid.New()
	r.items[p.ID] = *p
	return nil
}

func (r *memProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *memProveedorRepo) List(context.Context) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.items {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	r.items[p.ID] = *p
	return nil
}

func (r *memProveedorRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p := r.items[id]
	p.Estado = false
	r.items[id] = p
	return nil
}

type memClienteRepo struct{ items map[uuid.UUID]model.Cliente }

func (r *memClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	c.ID = uuid.New()
	r.items[c.ID] = *c
	return nil
}

func (r *memClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *memClienteRepo) List(context.Context) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.items {
		out = append(out, c)
	}
	return out, nil
}

func (r *memClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.items[c.ID] = *c
	return nil
}

func (r *memClienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	c := r.items[id]
	c.Estado = false
	r.items[id] = c
	return nil
}

// ── Fixtures ──────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func conPrincipal(perms ...string) context.Context {
	p := authz.NewPrincipal(uuid.New(), "Tester", "tester@example.com", perms)
	return authz.WithPrincipal(context.Background(), p)
}

type catalogo struct {
	productos   *memProductoRepo
	proveedores *memProveedorRepo
	clientes    *memClienteRepo
	activo      uuid.UUID
	inactivo    uuid.UUID
	proveedor   uuid.UUID
	cliente     uuid.UUID
}

func nuevoCatalogo() *catalogo {
	c := &catalogo{
		productos:   &memProductoRepo{items: map[uuid.UUID]model.Producto{}},
		proveedores: &memProveedorRepo{items: map[uuid.UUID]model.Proveedor{}},
		clientes:    &memClienteRepo{items: map[uuid.UUID]model.Cliente{}},
		activo:      uuid.New(),
		inactivo:    uuid.New(),
		proveedor:   uuid.New(),
		cliente:     uuid.New(),
	}
	c.productos.items[c.activo] = model.Producto{ID: c.activo, Codigo: "P-1", Nombre: "Yerba", Estado: true}
	c.productos.items[c.inactivo] = model.Producto{ID: c.inactivo, Codigo: "P-2", Nombre: "Discontinuado", Estado: false}
	c.proveedores.items[c.proveedor] = model.Proveedor{ID: c.proveedor, RazonSocial: "Distribuidora SA", Documento: "20123456789", Estado: true}
	c.clientes.items[c.cliente] = model.Cliente{ID: c.cliente, Codigo: "C-1", Nombre: "Juan Perez", Estado: true}
	return c
}

package authz

// Capability slugs checked by the router. The seeder creates one Permiso row per slug.
const (
	UsuariosVer          = "usuarios.ver"
	UsuariosCrear        = "usuarios.crear"
	UsuariosEditar       = "usuarios.editar"
	UsuariosEliminar     = "usuarios.eliminar"
	UsuariosAsignarRoles = "usuarios.asignar_roles"

	RolesVer    = "roles.ver"
	RolesCrear  = "roles.crear"
	RolesEditar = "roles.editar"

	CategoriasVer      = "categorias.ver"
	CategoriasCrear    = "categorias.crear"
	CategoriasEditar   = "categorias.editar"
	CategoriasEliminar = "categorias.eliminar"

	ProductosVer      = "productos.ver"
	ProductosCrear    = "productos.crear"
	ProductosEditar   = "productos.editar"
	ProductosEliminar = "productos.eliminar"

	ProveedoresVer      = "proveedores.ver"
	ProveedoresCrear    = "proveedores.crear"
	ProveedoresEditar   = "proveedores.editar"
	ProveedoresEliminar = "proveedores.eliminar"

	ClientesVer      = "clientes.ver"
	ClientesCrear    = "clientes.crear"
	ClientesEditar   = "clientes.editar"
	ClientesEliminar = "clientes.eliminar"

	ComprasVer      = "compras.ver"
	ComprasCrear    = "compras.crear"
	ComprasEditar   = "compras.editar"
	ComprasEliminar = "compras.eliminar"

	VentasVer      = "ventas.ver"
	VentasCrear    = "ventas.crear"
	VentasEditar   = "ventas.editar"
	VentasEliminar = "ventas.eliminar"

	AuditoriaVer = "auditoria.ver"
)

// Definicion describes a slug for seeding.
type Definicion struct {
	Slug   string
	Nombre string
	Modulo string
}

// Catalogo lists every capability the application knows about.
var Catalogo = []Definicion{
	{UsuariosVer, "Ver usuarios", "usuarios"},
	{UsuariosCrear, "Crear usuarios", "usuarios"},
	{UsuariosEditar, "Editar usuarios", "usuarios"},
	{UsuariosEliminar, "Eliminar usuarios", "usuarios"},
	{UsuariosAsignarRoles, "Asignar roles", "usuarios"},
	{RolesVer, "Ver roles", "roles"},
	{RolesCrear, "Crear roles", "roles"},
	{RolesEditar, "Editar roles", "roles"},
	{CategoriasVer, "Ver categorias", "categorias"},
	{CategoriasCrear, "Crear categorias", "categorias"},
	{CategoriasEditar, "Editar categorias", "categorias"},
	{CategoriasEliminar, "Eliminar categorias", "categorias"},
	{ProductosVer, "Ver productos", "productos"},
	{ProductosCrear, "Crear productos", "productos"},
	{ProductosEditar, "Editar productos", "productos"},
	{ProductosEliminar, "Eliminar productos", "productos"},
	{ProveedoresVer, "Ver proveedores", "proveedores"},
	{ProveedoresCrear, "Crear proveedores", "proveedores"},
	{ProveedoresEditar, "Editar proveedores", "proveedores"},
	{ProveedoresEliminar, "Eliminar proveedores", "proveedores"},
	{ClientesVer, "Ver clientes", "clientes"},
	{ClientesCrear, "Crear clientes", "clientes"},
	{ClientesEditar, "Editar clientes", "clientes"},
	{ClientesEliminar, "Eliminar clientes", "clientes"},
	{ComprasVer, "Ver compras", "compras"},
	{ComprasCrear, "Crear compras", "compras"},
	{ComprasEditar, "Editar compras", "compras"},
	{ComprasEliminar, "Eliminar compras", "compras"},
	{VentasVer, "Ver ventas", "ventas"},
	{VentasCrear, "Crear ventas", "ventas"},
	{VentasEditar, "Editar ventas", "ventas"},
	{VentasEliminar, "Eliminar ventas", "ventas"},
	{AuditoriaVer, "Ver auditoria", "auditoria"},
}

// PermisosVendedor is the capability set the seeder grants to role VENDEDOR.
var PermisosVendedor = []string{
	VentasVer, VentasCrear, VentasEditar, VentasEliminar,
	ClientesVer, ClientesCrear, ClientesEditar, ClientesEliminar,
	ProductosVer, CategoriasVer,
}

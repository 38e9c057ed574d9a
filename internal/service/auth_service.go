package service

import (
	"context"
	"errors"
	"time"

	"comercial/internal/audit"
	"comercial/internal/authz"
	"comercial/internal/config"
	"comercial/internal/dto"
	"comercial/internal/model"
	"comercial/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenAcceso  = "access"
	tokenRefresh = "refresh"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	// CargarPrincipal rebuilds the principal and its current capability set
	// from the store. Inactive or missing users yield ErrNoEncontrado.
	CargarPrincipal(ctx context.Context, usuarioID uuid.UUID) (*authz.Principal, error)

	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	ObtenerUsuario(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error)
	ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	EliminarUsuario(ctx context.Context, id uuid.UUID) error
	AlternarEstado(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error)
	AsignarRoles(ctx context.Context, id uuid.UUID, roles []string) (*dto.UsuarioResponse, error)
}

type authService struct {
	repo  repository.UsuarioRepository
	cfg   *config.Config
	audit *audit.Logger
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config, auditLog *audit.Logger) AuthService {
	return &authService{repo: repo, cfg: cfg, audit: auditLog}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if repository.EsNoEncontrado(err) {
			s.audit.Login(ctx, "Intento de login fallido para "+req.Email)
			return nil, ErrCredenciales
		}
		return nil, traducir("buscar usuario", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil || !user.Estado {
		s.audit.Login(ctx, "Intento de login fallido para "+req.Email)
		return nil, ErrCredenciales
	}

	resp, err := s.emitir(ctx, user)
	if err != nil {
		return nil, err
	}
	s.audit.Login(ctx, "Login exitoso de "+user.Email)
	return resp, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Join(ErrCredenciales, errors.New("refresh token invalido o expirado"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != tokenRefresh {
		return nil, ErrCredenciales
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrCredenciales
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrCredenciales
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Estado {
		return nil, ErrCredenciales
	}
	return s.emitir(ctx, user)
}

func (s *authService) CargarPrincipal(ctx context.Context, usuarioID uuid.UUID) (*authz.Principal, error) {
	user, err := s.repo.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, traducir("buscar usuario", err)
	}
	if !user.Estado {
		return nil, ErrNoEncontrado
	}
	permisos, err := s.repo.PermisosDe(ctx, usuarioID)
	if err != nil {
		return nil, traducir("cargar permisos", err)
	}
	return authz.NewPrincipal(user.ID, user.Nombre, user.Email, permisos), nil
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	rolIDs, err := parseIDs("roles", req.Roles)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		Estado:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, traducir("crear usuario", err)
	}
	// gorm skips zero values on columns with a default, so false needs its own write
	if req.Estado != nil && !*req.Estado {
		user.Estado = false
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, traducir("crear usuario", err)
		}
	}
	if len(rolIDs) > 0 {
		if err := s.repo.ReemplazarRoles(ctx, user.ID, rolIDs); err != nil {
			return nil, traducir("asignar roles", err)
		}
	}
	s.audit.Insercion(ctx, "Usuario creado", map[string]string{"id": user.ID.String(), "email": user.Email})
	return s.ObtenerUsuario(ctx, user.ID)
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, traducir("listar usuarios", err)
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = usuarioToResponse(&users[i])
	}
	s.audit.Consulta(ctx, "Listado de usuarios")
	return resp, nil
}

func (s *authService) ObtenerUsuario(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir("buscar usuario", err)
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir("buscar usuario", err)
	}
	if req.Nombre != "" {
		user.Nombre = req.Nombre
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, traducir("actualizar usuario", err)
	}
	s.audit.Actualizacion(ctx, "Usuario actualizado", map[string]any{"id": id, "nombre": user.Nombre, "email": user.Email})
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) EliminarUsuario(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return traducir("eliminar usuario", err)
	}
	s.audit.Eliminacion(ctx, "Usuario eliminado", id.String())
	return nil
}

// AlternarEstado flips estado. A deactivated user loses every capability on
// its next request.
func (s *authService) AlternarEstado(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir("buscar usuario", err)
	}
	user.Estado = !user.Estado
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, traducir("actualizar usuario", err)
	}
	s.audit.Actualizacion(ctx, "Estado de usuario actualizado", map[string]any{"id": id, "estado": user.Estado})
	resp := usuarioToResponse(user)
	return &resp, nil
}

// AsignarRoles replaces the role set. An empty list detaches every role.
func (s *authService) AsignarRoles(ctx context.Context, id uuid.UUID, roles []string) (*dto.UsuarioResponse, error) {
	rolIDs, err := parseIDs("roles", roles)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, traducir("buscar usuario", err)
	}
	if err := s.repo.ReemplazarRoles(ctx, id, rolIDs); err != nil {
		return nil, traducir("asignar roles", err)
	}
	s.audit.Actualizacion(ctx, "Roles de usuario actualizados", map[string]any{"id": id, "roles": roles})
	return s.ObtenerUsuario(ctx, id)
}

func (s *authService) emitir(ctx context.Context, user *model.Usuario) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, tokenAcceso, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, tokenRefresh, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         usuarioToResponse(user),
	}, nil
}

func (s *authService) generateToken(user *model.Usuario, tipo string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"typ":     tipo,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func parseIDs(campo string, raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, invalido(campo, "contiene un id invalido: "+r)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	roles := make([]dto.RolResponse, len(u.Roles))
	for i := range u.Roles {
		roles[i] = rolToResponse(&u.Roles[i])
	}
	return dto.UsuarioResponse{
		ID:     u.ID.String(),
		Nombre: u.Nombre,
		Email:  u.Email,
		Estado: u.Estado,
		Roles:  roles,
	}
}

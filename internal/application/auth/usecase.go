package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/application/usecase"
	"github.com/koerner360/koerner360-api/internal/domain"
	"github.com/koerner360/koerner360-api/internal/domain/entity"
	"github.com/koerner360/koerner360-api/internal/domain/permission"
	"github.com/koerner360/koerner360-api/internal/domain/repository"
	"github.com/koerner360/koerner360-api/pkg/jwt"
	"github.com/koerner360/koerner360-api/pkg/logger"
)

// JWTConfig configuração para geração dos tokens de sessão.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticação: login, sessão e logout.
type AuthUseCase struct {
	userRepo repository.UserRepository
	audit    *usecase.AuditUseCase
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase constrói o caso de uso de auth. audit e log podem ser nil.
func NewAuthUseCase(userRepo repository.UserRepository, audit *usecase.AuditUseCase, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, audit: audit, jwtCfg: jwtCfg, log: log}
}

// Login verifica email/senha, gera o token e devolve token + usuário.
// Email inexistente e senha errada produzem o mesmo erro.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, ip string) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.NewValidationError().With("email", "email e senha são obrigatórios")
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, domain.ErrInactiveUser
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, identityOf(user), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if uc.audit != nil {
		actor := permission.Actor{UserID: user.ID, Role: user.Role}
		if err := uc.audit.RecordSession(ctx, actor, entity.AuditLogin, ip); err != nil {
			uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("auditoria de login")
		}
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(uc.MaxAge()),
		User:      *usecase.ToUserResponse(user),
	}, nil
}

// Logout registra a saída do usuário autenticado.
func (uc *AuthUseCase) Logout(ctx context.Context, actor permission.Actor, ip string) error {
	if uc.audit == nil || actor.UserID == "" {
		return nil
	}
	if err := uc.audit.RecordSession(ctx, actor, entity.AuditLogout, ip); err != nil {
		uc.log.Warn().Err(err).Str("user_id", actor.UserID).Msg("auditoria de logout")
	}
	return nil
}

// ParseToken valida o token de sessão.
func (uc *AuthUseCase) ParseToken(token string) (*jwt.Claims, error) {
	return jwt.Parse(uc.jwtCfg.Secret, token)
}

// Session descreve a sessão contida nos claims.
func (uc *AuthUseCase) Session(claims *jwt.Claims) dto.SessionResponse {
	id := claims.Identity()
	out := dto.SessionResponse{
		User: dto.SessionUser{
			ID:           id.UserID,
			Name:         id.Name,
			Email:        id.Email,
			Role:         id.Role,
			SupervisorID: id.SupervisorID,
		},
		Permissions: permission.For(id.Role),
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		out.ExpiresAt = &exp
	}
	return out
}

// MaxAge é a validade do token, usada também no cookie.
func (uc *AuthUseCase) MaxAge() time.Duration {
	return time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute
}

func identityOf(u *entity.User) jwt.Identity {
	return jwt.Identity{
		UserID:       u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		SupervisorID: u.SupervisorIDValue(),
	}
}

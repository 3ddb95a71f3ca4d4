package auth

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ramadhanarif/storefront-client/internal/session"
	"github.com/ramadhanarif/storefront-client/pkg/enums"
	pkgerrors "github.com/ramadhanarif/storefront-client/pkg/errors"
	"github.com/ramadhanarif/storefront-client/pkg/logger"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the signup payload. Role defaults to customer; the
// backend ignores attempts to self-register as admin.
type Registration struct {
	Username string         `json:"username" validate:"required,min=3"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=8"`
	Role     enums.UserRole `json:"role"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

type poster interface {
	Post(ctx context.Context, path string, body, out any) error
}

type Service struct {
	api      poster
	sessions *session.Manager
	logg     *logger.Logger
}

func NewService(api poster, sessions *session.Manager, logg *logger.Logger) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("backend client required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{api: api, sessions: sessions, logg: logg}, nil
}

func validationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = "is invalid (" + fieldErr.Tag() + ")"
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

// Login exchanges credentials for a token and stores the session.
func (s *Service) Login(ctx context.Context, creds Credentials) (session.User, error) {
	creds.Email = strings.TrimSpace(strings.ToLower(creds.Email))
	if err := validate.Struct(creds); err != nil {
		return session.User{}, validationError(err)
	}

	var resp authResponse
	if err := s.api.Post(ctx, "/auth/login", creds, &resp); err != nil {
		return session.User{}, err
	}
	if err := s.sessions.Set(ctx, session.Snapshot{Token: resp.Token, User: resp.User}); err != nil {
		return session.User{}, err
	}

	s.logg.Info(s.logg.WithUserID(ctx, resp.User.ID), "logged in")
	return resp.User, nil
}

// Register creates an account and logs the new user straight in.
func (s *Service) Register(ctx context.Context, reg Registration) (session.User, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(strings.ToLower(reg.Email))
	if reg.Role == "" {
		reg.Role = enums.UserRoleCustomer
	}
	if err := validate.Struct(reg); err != nil {
		return session.User{}, validationError(err)
	}
	if !reg.Role.IsValid() {
		return session.User{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role %q", reg.Role))
	}

	var resp authResponse
	if err := s.api.Post(ctx, "/auth/register", reg, &resp); err != nil {
		return session.User{}, err
	}
	if err := s.sessions.Set(ctx, session.Snapshot{Token: resp.Token, User: resp.User}); err != nil {
		return session.User{}, err
	}

	s.logg.Info(s.logg.WithUserID(ctx, resp.User.ID), "registered")
	return resp.User, nil
}

// Logout clears the stored session. Purely local, nothing to revoke
// server-side.
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

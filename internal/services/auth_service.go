package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"invoicedash/internal/models"
	"invoicedash/internal/repositories"
)

// Authentication error types reported by an IdentityProvider.
const (
	AuthErrorCredentialsSignin = "CredentialsSignin"
	AuthErrorCallbackRoute     = "CallbackRouteError"
	AuthErrorConfiguration     = "Configuration"
)

const (
	MsgInvalidCredentials = "Invalid credentials."
	MsgSomethingWentWrong = "Something went wrong."
)

const minPasswordLength = 6

// AuthError is the closed set of sign-in failures an IdentityProvider reports.
type AuthError struct {
	Type string
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Type, e.Err)
	}
	return e.Type
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IdentityProvider performs the actual sign-in.
type IdentityProvider interface {
	SignIn(ctx context.Context, creds models.Credentials) (*models.Session, error)
}

// AuthService turns provider failures into messages for the login form.
type AuthService interface {
	// Authenticate returns a session on success, or a display message for a recognised
	// failure. Errors that are not an *AuthError are returned as is.
	Authenticate(ctx context.Context, creds models.Credentials) (*models.Session, string, error)
}

type authService struct {
	provider IdentityProvider
}

// NewAuthService creates a new authentication service
func NewAuthService(provider IdentityProvider) AuthService {
	return &authService{provider: provider}
}

func (s *authService) Authenticate(ctx context.Context, creds models.Credentials) (*models.Session, string, error) {
	session, err := s.provider.SignIn(ctx, creds)
	if err == nil {
		return session, "", nil
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		switch authErr.Type {
		case AuthErrorCredentialsSignin:
			return nil, MsgInvalidCredentials, nil
		default:
			return nil, MsgSomethingWentWrong, nil
		}
	}
	return nil, "", err
}

type credentialsProvider struct {
	users  repositories.UserRepository
	hasher PasswordHasher
	tokens *TokenIssuer
}

// NewCredentialsProvider signs users in with email and password from the users table.
func NewCredentialsProvider(users repositories.UserRepository, hasher PasswordHasher, tokens *TokenIssuer) IdentityProvider {
	return &credentialsProvider{users: users, hasher: hasher, tokens: tokens}
}

func (p *credentialsProvider) SignIn(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	email := strings.TrimSpace(creds.Email)
	if !validEmail(email) || len(creds.Password) < minPasswordLength {
		return nil, &AuthError{Type: AuthErrorCredentialsSignin}
	}

	user, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, &AuthError{Type: AuthErrorCredentialsSignin, Err: err}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &AuthError{Type: AuthErrorCallbackRoute, Err: err}
	}

	if err := p.hasher.Compare(user.PasswordHash, creds.Password); err != nil {
		return nil, &AuthError{Type: AuthErrorCredentialsSignin}
	}

	session, err := p.tokens.Issue(user)
	if err != nil {
		return nil, &AuthError{Type: AuthErrorConfiguration, Err: err}
	}
	return session, nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

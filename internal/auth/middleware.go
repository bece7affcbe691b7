package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/attendx/hrms-service/internal/domain"
	apperrors "github.com/attendx/hrms-service/pkg/util"
)

const accountKey = "auth_account"

// AccountLookup loads accounts by id. repository.AccountRepository satisfies it.
type AccountLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
}

// Resolver turns bearer tokens into live accounts.
type Resolver struct {
	tokens   *TokenManager
	accounts AccountLookup
}

// NewResolver constructs the resolver.
func NewResolver(tokens *TokenManager, accounts AccountLookup) *Resolver {
	return &Resolver{tokens: tokens, accounts: accounts}
}

// Authenticate resolves the caller. With required set, an unresolvable caller is rejected with 401;
// otherwise the request continues anonymously.
func (r *Resolver) Authenticate(required bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		account, err := r.Resolve(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}
		if account == nil {
			if required {
				return apperrors.NewUnauthorized("could not validate credentials")
			}
			return c.Next()
		}
		c.Locals(accountKey, account)
		return c.Next()
	}
}

// Resolve maps an Authorization header value to an active account. A nil account with a nil error
// means the caller is anonymous; only store failures produce an error.
func (r *Resolver) Resolve(ctx context.Context, header string) (*domain.Account, error) {
	token, ok := bearerToken(header)
	if !ok {
		return nil, nil
	}

	claims, err := r.tokens.Verify(token)
	if err != nil {
		return nil, nil
	}
	id, err := claims.AccountID()
	if err != nil {
		return nil, nil
	}

	account, err := r.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.MapError(err)
	}
	if !account.IsActive() {
		return nil, nil
	}
	return account, nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// AccountFromContext retrieves the authenticated account, if any.
func AccountFromContext(c *fiber.Ctx) (*domain.Account, bool) {
	val := c.Locals(accountKey)
	if val == nil {
		return nil, false
	}
	account, ok := val.(*domain.Account)
	return account, ok && account != nil
}

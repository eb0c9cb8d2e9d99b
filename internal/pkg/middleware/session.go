package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	internaljwt "github.com/tsel-ticketmaster/tm-scan/internal/pkg/jwt"
	"github.com/tsel-ticketmaster/tm-scan/internal/pkg/session"
	"github.com/tsel-ticketmaster/tm-scan/pkg/errors"
	"github.com/tsel-ticketmaster/tm-scan/pkg/response"
	"github.com/tsel-ticketmaster/tm-scan/pkg/status"
)

// ScannerSession authenticates scanning devices and door staff. The
// bearer token's subject is the session key; the session store holds
// the actor record.
type ScannerSession struct {
	jsonWebToken *internaljwt.JSONWebToken
	store        session.Store
	allowedRoles []string
}

func NewScannerSessionMiddleware(jsonWebToken *internaljwt.JSONWebToken, store session.Store) *ScannerSession {
	return &ScannerSession{
		jsonWebToken: jsonWebToken,
		store:        store,
		allowedRoles: []string{"scanner", "admin"},
	}
}

// AdminSession authenticates operator dashboard users.
type AdminSession = ScannerSession

func NewAdminSessionMiddleware(jsonWebToken *internaljwt.JSONWebToken, store session.Store) *AdminSession {
	return &AdminSession{
		jsonWebToken: jsonWebToken,
		store:        store,
		allowedRoles: []string{"admin"},
	}
}

func (m *ScannerSession) Verify(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		authorization := r.Header.Get("Authorization")
		tokenString, found := strings.CutPrefix(authorization, "Bearer ")
		if !found || tokenString == "" {
			response.JSON(w, http.StatusUnauthorized, response.RESTEnvelope{
				Status:  status.UNAUTHORIZED,
				Message: "unauthorized scanner",
			})

			return
		}

		claims := &jwt.RegisteredClaims{}
		if err := m.jsonWebToken.Parse(ctx, tokenString, claims); err != nil {
			ae := errors.Destruct(err)
			response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
				Status:  ae.Status,
				Message: ae.Message,
			})

			return
		}

		account, err := m.store.Get(ctx, claims.Subject)
		if err != nil {
			ae := errors.Destruct(err)
			response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
				Status:  ae.Status,
				Message: ae.Message,
			})

			return
		}

		if !m.roleAllowed(account.Role) {
			response.JSON(w, http.StatusForbidden, response.RESTEnvelope{
				Status:  status.FORBIDDEN,
				Message: "account is not allowed to perform this action",
			})

			return
		}

		next(w, r.WithContext(session.SetAccountToCtx(ctx, account)))
	}
}

func (m *ScannerSession) roleAllowed(role string) bool {
	for _, allowed := range m.allowedRoles {
		if role == allowed {
			return true
		}
	}

	return false
}

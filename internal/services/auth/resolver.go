package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tablekit/tablekit/internal/model"
	"github.com/tablekit/tablekit/internal/storage"
)

// Resolver turns a request's cookies into a validated Identity.
//
// Staff claims are trusted as signed (staff secrets are not versioned).
// Customer claims are additionally checked against the table's current
// PIN version in storage: a PIN change bumps the version, which voids
// every outstanding customer credential for that table on its next
// request. No session table or revocation list is involved.
type Resolver struct {
	codec   *TokenCodec
	storage storage.Storage
	logger  *slog.Logger
}

// NewResolver creates a new Resolver
func NewResolver(codec *TokenCodec, store storage.Storage, logger *slog.Logger) *Resolver {
	return &Resolver{
		codec:   codec,
		storage: store,
		logger:  logger.With(slog.String("component", "session-resolver")),
	}
}

// Resolve produces the request's Identity: zero, one, or two claims.
// A customer credential whose version no longer matches (or whose table
// is gone) is rejected and its cookie actively cleared on the response,
// so the browser stops presenting it. Storage errors during the version
// check fail closed into "no session" rather than surfacing a 500.
func (r *Resolver) Resolve(w http.ResponseWriter, req *http.Request) Identity {
	var id Identity

	if cookie, err := req.Cookie(StaffCookieName); err == nil {
		if claims, ok := r.codec.DecodeStaff(cookie.Value); ok {
			id.Staff = claims
		}
	}

	if cookie, err := req.Cookie(CustomerCookieName); err == nil {
		if claims, ok := r.codec.DecodeCustomer(cookie.Value); ok {
			id.Customer = r.checkCustomer(w, req, claims)
		}
	}

	return id
}

func (r *Resolver) checkCustomer(w http.ResponseWriter, req *http.Request, claims *CustomerClaims) *CustomerClaims {
	current, err := r.storage.GetTablePINVersion(req.Context(), claims.TableID)
	if err != nil {
		if errors.Is(err, model.ErrTableNotFound) {
			// Table deleted out from under the session
			ClearCustomerCookie(w)
			return nil
		}
		// Transient backend failure: treat the session as invalid for
		// this request but leave the cookie alone so the next request
		// can succeed.
		r.logger.Warn("customer session check failed",
			slog.Int64("table_id", int64(claims.TableID)),
			slog.Any("error", err))
		return nil
	}

	if current != claims.PINVersion {
		ClearCustomerCookie(w)
		return nil
	}
	return claims
}

package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tablekit/tablekit/internal/dependencies/clock"
	"github.com/tablekit/tablekit/internal/model"
)

// Cookie names for the two credential tracks. A request may carry both at
// once: a manager browsing the customer UI for a table keeps the staff
// cookie and gains a customer cookie, and the two never collapse into one.
const (
	// StaffCookieName carries a kitchen or manager credential
	StaffCookieName = "staff_session"

	// CustomerCookieName carries a table-scoped customer credential
	CustomerCookieName = "customer_session"

	// LegacyCookieName is the pre-split single session cookie. Current
	// logins never write it; logout still clears it so stale browsers
	// end up fully signed out.
	LegacyCookieName = "session"
)

// StaffClaims is a validated kitchen or manager identity
type StaffClaims struct {
	Role model.Role
}

// CustomerClaims is a candidate customer identity for one table.
// PINVersion is the table's PIN version at issue time; the claim is only
// valid while it matches the stored version.
type CustomerClaims struct {
	TableID    model.TableID
	PINVersion int64
}

// tokenClaims is the JWT payload shared by both tracks
type tokenClaims struct {
	jwt.RegisteredClaims
	Role       string        `json:"role"`
	TableID    model.TableID `json:"table_id,omitempty"`
	PINVersion int64         `json:"pin_version,omitempty"`
}

// TokenCodec signs and verifies credential tokens. Stateless: all claims
// live in the token, and customer staleness is checked against storage by
// the Resolver, not here.
type TokenCodec struct {
	secret   []byte
	tokenTTL time.Duration
	clock    clock.Clock
}

// NewTokenCodec creates a codec signing with the given symmetric secret.
// An empty secret is allowed at construction so the server can start for
// inspection, but issuing then fails with ErrSecretNotConfigured.
func NewTokenCodec(secret string, tokenTTL time.Duration, clk clock.Clock) *TokenCodec {
	return &TokenCodec{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		clock:    clk,
	}
}

// IssueStaff produces a signed staff token and its expiry
func (c *TokenCodec) IssueStaff(role model.Role) (string, time.Time, error) {
	if !model.ValidStaffRole(role) {
		return "", time.Time{}, model.ErrInvalidCredentials
	}
	return c.sign(tokenClaims{Role: string(role)})
}

// IssueCustomer produces a signed customer token bound to the table's
// current PIN version
func (c *TokenCodec) IssueCustomer(tableID model.TableID, pinVersion int64) (string, time.Time, error) {
	return c.sign(tokenClaims{
		Role:       string(model.RoleCustomer),
		TableID:    tableID,
		PINVersion: pinVersion,
	})
}

func (c *TokenCodec) sign(claims tokenClaims) (string, time.Time, error) {
	if len(c.secret) == 0 {
		return "", time.Time{}, model.ErrSecretNotConfigured
	}

	now := c.clock.Now()
	expiresAt := now.Add(c.tokenTTL)
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(expiresAt)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// DecodeStaff verifies a staff-track token. Any failure (bad signature,
// expiry, customer claims in the staff slot) reads as "no credential".
func (c *TokenCodec) DecodeStaff(token string) (*StaffClaims, bool) {
	claims, ok := c.decode(token)
	if !ok {
		return nil, false
	}
	role := model.Role(claims.Role)
	if !model.ValidStaffRole(role) {
		return nil, false
	}
	return &StaffClaims{Role: role}, true
}

// DecodeCustomer verifies a customer-track token. Any failure reads as
// "no credential".
func (c *TokenCodec) DecodeCustomer(token string) (*CustomerClaims, bool) {
	claims, ok := c.decode(token)
	if !ok {
		return nil, false
	}
	if model.Role(claims.Role) != model.RoleCustomer || claims.TableID == 0 || claims.PINVersion < 1 {
		return nil, false
	}
	return &CustomerClaims{
		TableID:    claims.TableID,
		PINVersion: claims.PINVersion,
	}, true
}

func (c *TokenCodec) decode(token string) (*tokenClaims, bool) {
	if len(c.secret) == 0 || token == "" {
		return nil, false
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return nil, false
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok {
		return nil, false
	}
	return claims, true
}

// SetStaffCookie issues a staff token and writes it to the staff track
func (c *TokenCodec) SetStaffCookie(w http.ResponseWriter, role model.Role) error {
	token, expiresAt, err := c.IssueStaff(role)
	if err != nil {
		return err
	}
	setSessionCookie(w, StaffCookieName, token, expiresAt)
	return nil
}

// SetCustomerCookie issues a customer token and writes it to the customer track
func (c *TokenCodec) SetCustomerCookie(w http.ResponseWriter, tableID model.TableID, pinVersion int64) error {
	token, expiresAt, err := c.IssueCustomer(tableID, pinVersion)
	if err != nil {
		return err
	}
	setSessionCookie(w, CustomerCookieName, token, expiresAt)
	return nil
}

func setSessionCookie(w http.ResponseWriter, name, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearStaffCookie expires the staff-track cookie without touching the
// customer track
func ClearStaffCookie(w http.ResponseWriter) {
	clearCookie(w, StaffCookieName)
}

// ClearCustomerCookie expires the customer-track cookie without touching
// the staff track
func ClearCustomerCookie(w http.ResponseWriter) {
	clearCookie(w, CustomerCookieName)
}

// ClearLegacyCookie expires the pre-split session cookie
func ClearLegacyCookie(w http.ResponseWriter) {
	clearCookie(w, LegacyCookieName)
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

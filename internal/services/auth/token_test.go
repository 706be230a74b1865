package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tablekit/tablekit/internal/dependencies/mocks"
	"github.com/tablekit/tablekit/internal/model"
)

type TokenCodecSuite struct {
	suite.Suite
	clock *mocks.MockClock
	codec *TokenCodec
}

func TestTokenCodecSuite(t *testing.T) {
	suite.Run(t, new(TokenCodecSuite))
}

func (s *TokenCodecSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.codec = NewTokenCodec("test-secret", 12*time.Hour, s.clock)
}

func (s *TokenCodecSuite) TestStaffRoundTrip() {
	token, expiresAt, err := s.codec.IssueStaff(model.RoleManager)
	s.Require().NoError(err)
	s.Equal(s.clock.Now().Add(12*time.Hour), expiresAt)

	claims, ok := s.codec.DecodeStaff(token)
	s.Require().True(ok)
	s.Equal(model.RoleManager, claims.Role)
}

func (s *TokenCodecSuite) TestCustomerRoundTrip() {
	token, _, err := s.codec.IssueCustomer(model.TableID(7), 3)
	s.Require().NoError(err)

	claims, ok := s.codec.DecodeCustomer(token)
	s.Require().True(ok)
	s.Equal(model.TableID(7), claims.TableID)
	s.Equal(int64(3), claims.PINVersion)
}

func (s *TokenCodecSuite) TestIssueStaffRejectsCustomerRole() {
	_, _, err := s.codec.IssueStaff(model.RoleCustomer)
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *TokenCodecSuite) TestTamperedTokenRejected() {
	token, _, err := s.codec.IssueStaff(model.RoleKitchen)
	s.Require().NoError(err)

	tampered := token[:len(token)-2] + "xx"
	_, ok := s.codec.DecodeStaff(tampered)
	s.False(ok)
}

func (s *TokenCodecSuite) TestWrongSecretRejected() {
	other := NewTokenCodec("other-secret", 12*time.Hour, s.clock)
	token, _, err := other.IssueStaff(model.RoleKitchen)
	s.Require().NoError(err)

	_, ok := s.codec.DecodeStaff(token)
	s.False(ok)
}

func (s *TokenCodecSuite) TestExpiredTokenRejected() {
	token, _, err := s.codec.IssueStaff(model.RoleKitchen)
	s.Require().NoError(err)

	s.clock.Advance(13 * time.Hour)
	_, ok := s.codec.DecodeStaff(token)
	s.False(ok)
}

func (s *TokenCodecSuite) TestTokenValidJustBeforeExpiry() {
	token, _, err := s.codec.IssueStaff(model.RoleKitchen)
	s.Require().NoError(err)

	s.clock.Advance(11 * time.Hour)
	_, ok := s.codec.DecodeStaff(token)
	s.True(ok)
}

func (s *TokenCodecSuite) TestCustomerTokenRejectedInStaffSlot() {
	token, _, err := s.codec.IssueCustomer(model.TableID(7), 1)
	s.Require().NoError(err)

	_, ok := s.codec.DecodeStaff(token)
	s.False(ok)
}

func (s *TokenCodecSuite) TestStaffTokenRejectedInCustomerSlot() {
	token, _, err := s.codec.IssueStaff(model.RoleManager)
	s.Require().NoError(err)

	_, ok := s.codec.DecodeCustomer(token)
	s.False(ok)
}

func (s *TokenCodecSuite) TestEmptySecretCannotIssue() {
	codec := NewTokenCodec("", 12*time.Hour, s.clock)
	_, _, err := codec.IssueStaff(model.RoleManager)
	s.ErrorIs(err, model.ErrSecretNotConfigured)
}

func (s *TokenCodecSuite) TestEmptyTokenRejected() {
	_, ok := s.codec.DecodeStaff("")
	s.False(ok)
	_, ok = s.codec.DecodeCustomer("")
	s.False(ok)
}

func (s *TokenCodecSuite) TestSetStaffCookieWritesStaffTrack() {
	rec := httptest.NewRecorder()
	err := s.codec.SetStaffCookie(rec, model.RoleManager)
	s.Require().NoError(err)

	cookie := findCookie(s.T(), rec, StaffCookieName)
	s.Require().NotNil(cookie)
	s.True(cookie.HttpOnly)
	s.Equal("/", cookie.Path)

	claims, ok := s.codec.DecodeStaff(cookie.Value)
	s.Require().True(ok)
	s.Equal(model.RoleManager, claims.Role)
}

func (s *TokenCodecSuite) TestSetCustomerCookieWritesCustomerTrack() {
	rec := httptest.NewRecorder()
	err := s.codec.SetCustomerCookie(rec, model.TableID(5), 2)
	s.Require().NoError(err)

	cookie := findCookie(s.T(), rec, CustomerCookieName)
	s.Require().NotNil(cookie)

	claims, ok := s.codec.DecodeCustomer(cookie.Value)
	s.Require().True(ok)
	s.Equal(model.TableID(5), claims.TableID)
}

func (s *TokenCodecSuite) TestClearCustomerCookieExpiresIt() {
	rec := httptest.NewRecorder()
	ClearCustomerCookie(rec)

	cookie := findCookie(s.T(), rec, CustomerCookieName)
	s.Require().NotNil(cookie)
	s.Empty(cookie.Value)
	s.Negative(cookie.MaxAge)
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestClearStaffCookieLeavesCustomerTrackAlone(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearStaffCookie(rec)

	for _, c := range rec.Result().Cookies() {
		if strings.EqualFold(c.Name, CustomerCookieName) {
			t.Fatalf("customer cookie touched by staff clear")
		}
	}
}

package voice

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/usestring/gvoice-mcp/pkg/loginform"
)

type SessionTestSuite struct {
	suite.Suite
	fake   *fakeVoice
	client *Client
	ctx    context.Context
}

func (s *SessionTestSuite) SetupTest() {
	s.fake = newFakeVoice(s.T())
	s.client = s.fake.client()
	s.ctx = context.Background()
}

func (s *SessionTestSuite) TestLogin_Success() {
	s.Require().False(s.client.IsLoggedIn())
	s.Equal(StateAnonymous, s.client.State())

	s.Require().NoError(s.client.Login(s.ctx, testUser, testPassword))

	s.True(s.client.IsLoggedIn())
	s.Equal(StateAuthenticated, s.client.State())
	s.Equal([]string{
		"GET /ServiceLogin",
		"POST /signin/identifier",
		"POST /signin/challenge",
		"GET /voice/m",
	}, s.fake.Paths())
}

func (s *SessionTestSuite) TestLogin_RoundTripsHiddenFields() {
	s.Require().NoError(s.client.Login(s.ctx, testUser, testPassword))

	reqs := s.fake.Requests()
	s.Require().Len(reqs, 4)
	s.Equal("GALX=csrf-1&Email=alice%40example.com&signIn=Next", reqs[1].Body)
	s.Equal("GALX=csrf-2&Email=alice%40example.com&Passwd=s3cret&signIn=Sign+in", reqs[2].Body)
}

func (s *SessionTestSuite) TestLogin_PasswordNotSentInUsernameRound() {
	s.fake.SetPage("/ServiceLogin", `<form id="gaia_loginform" action="/signin/identifier">
		<input type="hidden" name="GALX" value="csrf-1">
		<input name="Email" value="">
		<input name="Passwd" value="">
	</form>`)

	s.Require().NoError(s.client.Login(s.ctx, testUser, testPassword))
	s.NotContains(s.fake.Requests()[1].Body, testPassword)
}

func (s *SessionTestSuite) TestLogin_FirstFormMissing() {
	s.fake.SetPage("/ServiceLogin", "<html><body>maintenance</body></html>")

	err := s.client.Login(s.ctx, testUser, testPassword)

	var scrapeErr *ScrapeError
	s.Require().ErrorAs(err, &scrapeErr)
	s.Equal(1, scrapeErr.Occurrence)
	s.ErrorIs(err, ErrLoginFormMissing)
	s.ErrorIs(err, loginform.ErrFormNotFound)
	s.Equal([]string{"GET /ServiceLogin"}, s.fake.Paths())
	s.Equal(StateFailed, s.client.State())
	s.False(s.client.IsLoggedIn())
}

func (s *SessionTestSuite) TestLogin_SecondFormMissing() {
	s.fake.SetPage("/signin/identifier", "<html><body>captcha required</body></html>")

	err := s.client.Login(s.ctx, testUser, testPassword)

	var scrapeErr *ScrapeError
	s.Require().ErrorAs(err, &scrapeErr)
	s.Equal(2, scrapeErr.Occurrence)
	s.ErrorIs(err, ErrLoginFormMissing)
	s.Equal([]string{"GET /ServiceLogin", "POST /signin/identifier"}, s.fake.Paths())
}

func (s *SessionTestSuite) TestLogin_FormWithoutInputs() {
	s.fake.SetPage("/ServiceLogin", `<form id="gaia_loginform" action="/x"><button>go</button></form>`)

	err := s.client.Login(s.ctx, testUser, testPassword)

	s.ErrorIs(err, loginform.ErrNoInputFields)
	s.NotErrorIs(err, ErrLoginFormMissing)
}

func (s *SessionTestSuite) TestLogin_MissingSessionCookie() {
	s.fake.SetOmitCookie(true)

	err := s.client.Login(s.ctx, testUser, testPassword)

	s.ErrorIs(err, ErrMissingSessionCookie)
	s.False(s.client.IsLoggedIn())
	s.Equal(StateFailed, s.client.State())
}

func (s *SessionTestSuite) TestLogin_StaleCookieIsNotASession() {
	s.Require().NoError(s.client.Login(s.ctx, testUser, testPassword))
	s.Require().True(s.client.IsLoggedIn())
	s.fake.SetOmitCookie(true)

	err := s.client.Login(s.ctx, testUser, testPassword)

	s.ErrorIs(err, ErrMissingSessionCookie)
	s.False(s.client.IsLoggedIn())
	s.Equal(StateFailed, s.client.State())
}

func (s *SessionTestSuite) TestLogin_UnexpectedStatus() {
	cases := []struct {
		path string
		want int
	}{
		{"/ServiceLogin", 1},
		{"/signin/identifier", 2},
	}
	for _, tc := range cases {
		s.Run(tc.path, func() {
			fake := newFakeVoice(s.T())
			fake.SetStatus(tc.path, http.StatusServiceUnavailable)
			client := fake.client()

			err := client.Login(s.ctx, testUser, testPassword)

			var apiErr *APIError
			s.Require().ErrorAs(err, &apiErr)
			s.Equal(http.StatusServiceUnavailable, apiErr.StatusCode)
			s.ErrorIs(err, ErrUnexpectedResponse)
			s.Len(fake.Requests(), tc.want)
		})
	}
}

func (s *SessionTestSuite) TestLogin_WrongPassword() {
	err := s.client.Login(s.ctx, testUser, "nope")

	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusUnauthorized, apiErr.StatusCode)
	s.Contains(apiErr.Message, "bad challenge submit")
	s.False(strings.Contains(apiErr.URL, "?"))
}

func (s *SessionTestSuite) TestLogin_EmptyCredentials() {
	s.ErrorIs(s.client.Login(s.ctx, "", testPassword), ErrInvalidCredentials)
	s.ErrorIs(s.client.Login(s.ctx, testUser, ""), ErrInvalidCredentials)
	s.Empty(s.fake.Requests())
}

func (s *SessionTestSuite) TestLogout() {
	s.Require().NoError(s.client.Login(s.ctx, testUser, testPassword))
	s.fake.Reset()

	s.Require().NoError(s.client.Logout(s.ctx))

	s.Equal([]string{"GET /voice/m/logout"}, s.fake.Paths())
	s.Equal(StateAnonymous, s.client.State())
	// the fake does not expire the cookie
	s.True(s.client.IsLoggedIn())
}

func (s *SessionTestSuite) TestLogout_UnexpectedStatus() {
	s.fake.SetStatus("/voice/m/logout", http.StatusInternalServerError)

	err := s.client.Logout(s.ctx)
	s.ErrorIs(err, ErrUnexpectedResponse)
}

func (s *SessionTestSuite) TestResetSession() {
	s.Require().NoError(s.client.Login(s.ctx, testUser, testPassword))
	old := s.client.Jar()

	s.client.ResetSession()

	s.False(s.client.IsLoggedIn())
	s.NotSame(old, s.client.Jar())
	s.Equal(StateAnonymous, s.client.State())
}

func (s *SessionTestSuite) TestIndependentSessions() {
	other := s.fake.client()
	s.Require().NoError(s.client.Login(s.ctx, testUser, testPassword))

	s.True(s.client.IsLoggedIn())
	s.False(other.IsLoggedIn())
}

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func TestLoginState_String(t *testing.T) {
	cases := map[LoginState]string{
		StateAnonymous:        "anonymous",
		StateAwaitingUsername: "awaiting_username",
		StateAwaitingPassword: "awaiting_password",
		StateAuthenticated:    "authenticated",
		StateFailed:           "failed",
		LoginState(42):        "LoginState(42)",
	}
	for state, want := range cases {
		assert.Equal(t, want, state.String())
	}
}

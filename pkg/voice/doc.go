// Package voice is a Go client for the Google Voice mobile web service.
//
// It drives the two-round-trip accounts login (username form, then password
// form), tracks the resulting gvx session cookie, and reads or changes the
// call-forwarding state of the account's phones through the service's
// private settings endpoint.
//
// # Quick Start
//
//	c := voice.New()
//	if err := c.Login(ctx, username, password); err != nil {
//	    return err
//	}
//	settings, err := c.FetchSettings(ctx)
//	for _, phone := range settings.Phones() {
//	    fmt.Println(phone)
//	}
//
// # Sessions
//
// A Client owns its cookie jar, so several clients can hold independent
// sessions in one process. The gvx cookie is the only signal of an
// authenticated session: IsLoggedIn checks for it without any network call,
// and FetchSettings and SetPhoneState fail with ErrNotAuthenticated before
// sending anything when it is missing.
//
// A Client is not safe for concurrent use. Calls are sequential request and
// response exchanges; wrap them in a mutex if several goroutines share one.
//
// # Toggling Phones
//
// The settings endpoint has no partial update. SetPhoneState resends every
// field of the Phone it is given, so pass a Phone from a recent FetchSettings:
//
//	phone, ok := settings.Phone(4)
//	if ok {
//	    err = c.DisablePhone(ctx, phone)
//	}
//
// On success the Phone's Enabled field is updated locally without a re-fetch.
//
// # Errors
//
// Non-2xx responses are returned as *APIError (matching ErrUnexpectedResponse).
// A missing login form is a *ScrapeError (matching ErrLoginFormMissing) that
// records whether the first or the second form was absent. Settings payloads
// that are truncated or do not match the expected schema fail with
// ErrMalformedResponse. No call is retried.
package voice

// Package zoominfo provides a client for the ZoomInfo contact enrichment API.
//
// The client exchanges a username and password for a short-lived bearer token,
// caches it for 55 minutes and attaches it to every request. A 401 from any call
// drops the cached token so the next call authenticates again.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := zoominfo.NewClient(
//		zoominfo.DefaultBaseURL,
//		zoominfo.Credentials{Username: user, Password: pass},
//		logger,
//		zoominfo.WithRequestInterval(time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	records, err := client.FetchPagedData(ctx, "/search/contact", map[string]any{
//		"jobTitle":    "CEO",
//		"companyName": "Acme",
//	})
//
// # Paging
//
// FetchPagedData is best effort: a page that fails ends the search and the
// records collected so far are returned without an error. Get and Post always
// return their failures.
//
// # Error Handling
//
//   - ErrAuthentication: the credential exchange failed (never retried)
//   - RequestError: any failed data call, carrying the HTTP status
//   - APIError: the raw non-2xx response wrapped by RequestError
//
// Every failure is logged with its category (bad request, unauthorized,
// forbidden, rate limited, server error) before being returned.
package zoominfo

// Package httputil provides retry support for the row source clients.
//
// Sheets are fetched over the network at most a few times per run, but the
// APIs behind them throttle and occasionally fail with 5xx responses.
// [Retry] re-runs a request when its error is wrapped in [RetryableError]:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// Non-retryable errors (bad credentials, unknown tables) return at once.
// A 429 response carries the server's Retry-After in [RetryableError.After],
// which lengthens the next wait.
package httputil

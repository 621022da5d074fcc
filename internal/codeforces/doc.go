// Package codeforces provides the Codeforces API client.
//
// Every method is a GET against https://codeforces.com/api/{method}. The
// response is wrapped in an envelope:
//
//	{"status": "OK", "result": ...}
//	{"status": "FAILED", "comment": "..."}
//
// FAILED envelopes become *APIError; transport failures, timeouts and
// non-2xx answers without an envelope become *NetworkError. The client never
// retries.
package codeforces

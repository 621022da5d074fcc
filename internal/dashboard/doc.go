// Package dashboard serves the web dashboard and its JSON endpoints.
//
// Routes:
//   - GET /                 dashboard page
//   - GET /api/settings     default handles and division filter
//   - GET /api/contests     upcoming contests (?filter=div2,div3&include_gym=false)
//   - GET /api/stats        user summary (?handle=)
//   - GET /api/user         full user record (?handle=)
//   - GET /api/live         websocket stream of the upcoming contest feed
//   - GET /health           liveness probe
//
// Every JSON body carries status "success" or "error".
package dashboard

// Package http exposes the NeuroSync client core as a JSON API.
//
// The router serves these endpoints:
//   - GET /healthz: liveness probe, also reports whether the initial load finished.
//   - POST /session/register: body {"name","email","sensoryProfile"}; replaces the
//     stored profile and empties the reservation list. Responds 201 with the profile.
//   - POST /session/login: body {"email"}; 200 with the profile when the stored
//     profile has exactly that email, 401 otherwise.
//   - GET /session, DELETE /session: current profile, and logout (204).
//   - GET /reservations[?date=YYYY-MM-DD], POST /reservations: list (newest first)
//     and create. Require a signed-in profile.
//   - PATCH /reservations/{id}: partial update. Changing date or time of a
//     reservation that is no longer active yields 409.
//   - POST /reservations/{id}/cancel, POST /reservations/{id}/complete: 204.
//   - GET /rooms[?noise=&light=]: catalog with the available room count.
//   - GET /rooms/{id}: one room, 404 when unknown.
//   - GET /theme, POST /theme/toggle: current theme and toggle.
//
// Every endpoint except /healthz answers 503 until the initial load completes.
// Request/response DTOs live alongside their handlers.
package http

// Package api handles incoming HTTP requests for ProcrastiList: routing
// parameters, request decoding and validation, and response formatting. It
// adapts HTTP to the task and user services and maps their errors to status
// codes without leaking internal details.
package api

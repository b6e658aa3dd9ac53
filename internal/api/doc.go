// Package api contains the HTTP handlers, request/response models, and
// error mapping for the excuse email draft API.
package api

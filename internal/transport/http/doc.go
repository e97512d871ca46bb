// Package http contains the HTTP transport layer: chi handlers that map
// requests onto the dashboard services and render JSON envelopes or RFC 7807
// problem responses. Handlers depend on narrow service interfaces so tests
// can stub the catalog without touching the filesystem.
package http

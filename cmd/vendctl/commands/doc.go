// Package commands implements the vendctl command line: inspecting a catalog
// and running purchases against an in-memory machine without the HTTP server.
package commands

// Package connectors provides upstream API clients. Each connector knows how
// to fetch and normalise data from a specific external service.
//
// MiroView currently ships a single connector, the Miro REST v2 client in
// the miro subpackage.
package connectors

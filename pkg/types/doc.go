// Package types provides shared type definitions used across the rigmap packages.
//
// SourceID and ResourceType are referenced by the catalog, provenance, authority
// and reconcile packages; keeping them here avoids import cycles.
//
//nolint:revive // Package name 'types' is appropriate for common type definitions
package types

// Package driven defines the interfaces the registry client calls OUT to
// infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// The registry client depends on these interfaces, and infrastructure
// adapters implement them:
//
//   - Transport: HTTP verbs plus multipart file upload
//   - DocumentCodec: SBOL sequence-document parsing and serialization
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven

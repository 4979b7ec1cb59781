// Package domain defines the core business entities for LCAS.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CaseConfig: Validated per-run configuration
//   - Taxonomy / TaxonomyNode: The legal-argument category tree
//   - EvidenceItem: One discovered file, the atomic unit of classification
//   - PluginDescriptor / PluginOutcome: Plugin metadata and per-run results
//   - RunContext: The single run's shared mutable state
//   - RunReport: The immutable aggregation of a completed run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services and plugins depend on these interfaces; infrastructure
// adapters implement them.
//
// # Capability Adapters
//
// The externally-owned operations the core consumes but never
// implements:
//
//   - TextExtractor / ExtractorRegistry: per-format text extraction
//   - Digester: deterministic content digests
//   - AIService: the AI oracle (summarisation, scoring assistance)
//   - CaseLoader: configuration decoding
//
// # Plugin Contract
//
// Plugin is the polymorphic unit of work orchestrated by the engine.
// Plugins consume capability adapters; the registry and engine operate
// over their declared descriptors only.
package driven

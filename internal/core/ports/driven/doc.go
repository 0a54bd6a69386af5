// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Converter: Orthography conversion (OpenCC)
//   - ConfigStore: Application configuration
//
// # Word Count Interfaces
//
// Only the cutwords command and the count_words MCP tool need these:
//
//   - MessageSource / MessageStore: Archived messages (SQLite, memory)
//   - DumpReader: Exported .jsonl and .jsonl.zst dump files
//   - Tagger: Word segmentation with part-of-speech tags (gse)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

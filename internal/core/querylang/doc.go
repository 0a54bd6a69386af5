// Package querylang parses search queries and rewrites their literals into
// every orthographic spelling.
//
// Parse and Expand are pure: they read no global state and never modify
// their inputs, so independent queries can be processed concurrently.
// Rendering back to text is domain.Query.String.
package querylang

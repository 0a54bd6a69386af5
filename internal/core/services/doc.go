// Package services implements the driving port interfaces.
// Services contain the core logic and orchestrate calls to driven ports
// (adapters): the query language in querylang, a Converter for spellings,
// a MessageSource and Tagger for word counting, and a ConfigStore for
// settings.
package services

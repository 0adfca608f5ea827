// Package services implements the driving port interfaces.
//
// Corpus holds articles and derives the term statistics (term-document
// matrices, similarity, inverse document frequency, hot terms) from them
// on demand. Ingestor turns feeds into articles and SettingsService reads
// and writes the application settings.
//
// Services only talk to adapters through the driven ports.
package services

// Package normalisers holds the Normaliser implementations that turn feed
// markup into the plain text the corpus tokenises.
package normalisers

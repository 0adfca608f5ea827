// Package html provides a Normaliser for HTML feed content.
// It strips tags, scripts and styles and decodes entities so that article
// text tokenises cleanly, and it extracts image sources for the picture
// cache.
package html

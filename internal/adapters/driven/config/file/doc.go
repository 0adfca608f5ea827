// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML configuration under the platform config directory
//     (for example ~/.config/feedcorpus/config.toml)
package file

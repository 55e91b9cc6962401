// Package manifest handles parsing and validation of extension.yaml files
// that extension authors ship alongside their source. A manifest is never
// required to install an extension; the validate command uses this package
// so authors can check their metadata before publishing.
package manifest

// Package extension resolves, installs, uninstalls, and enumerates the
// executable just-* extension binaries kept in the bin directory. It owns
// the naming convention (just-<repo> plus the platform executable suffix)
// and the install pipeline that clones an extension repository, builds it
// with cargo, and places the release binary.
package extension

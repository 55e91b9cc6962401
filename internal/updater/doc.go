// Package updater implements the new-version check for the justx binary.
// It compares the running version against the latest GitHub release and
// powers the startup banner through a daily-cached check. Downloading and
// replacing the binary is left to the user's package manager.
package updater

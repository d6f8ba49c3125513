// Package tui is the interactive front end for automatic mode: pick the
// missing track lists directory, toggle options, and watch the lists being
// consumed into the library.
package tui

// Package ux persists the two user-facing preferences of keycalc: the theme
// name and whether button tones are enabled.
//
// Preferences live in .keycalc/preferences.json inside the workspace. The
// calculator core never reads them; the presentation layer loads them at
// startup, saves them when the user cycles the theme or toggles sound, and
// can follow edits made by another process through Watcher.
package ux

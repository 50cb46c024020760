// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for playlist assembly:
//  1. [EntryListView] : Review the entries parsed from saved chart pages
//  2. [TargetView] : Name a new playlist or point at an existing one
//  3. [BuildView] : Monitor real-time resolution progress
//  4. [ResultView] : Display match statistics and skipped entries
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the BuildEngine, providing non-blocking status reporting during resolution.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, tab, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui

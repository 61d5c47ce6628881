// Package tui provides a Bubble Tea terminal user interface for storesearch.
//
// The TUI is a thin presentation layer over the search session, the grid
// tiler and the thumbnail loader. It renders whatever state they publish
// and never decides anything on its own.
//
// # Screens
//
// The list screen shows the category tabs, the query box and the sorted
// results. The landscape screen (ctrl+t) lays the same results out with
// grid.ComputeLayout, one page at a time, and fills each visible cell
// with the average colour of its thumbnail once it loads.
//
// # Callbacks
//
// Session and loader callbacks must run on the Update loop. The model
// installs a dispatch.Func that wraps each callback in a CallbackMsg and
// hands it to tea.Program.Send; Update runs it and then handles any
// messages the callback emitted.
//
// # Usage
//
//	settings, _ := config.Load(config.DefaultPath())
//	if err := tui.Run(settings, false); err != nil {
//	    log.Fatal(err)
//	}
package tui

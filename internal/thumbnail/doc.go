// Package thumbnail loads result artwork for individual presentation slots.
//
// Every visible button or cell is a Slot. A slot asks the Loader for its
// thumbnail, gets a Handle back at once, and receives the decoded image
// later through the Loader's Dispatcher. When the slot goes away (scrolled
// off, new search, screen torn down) it releases its request, and the
// callback is guaranteed not to run.
//
// Failures are per item and quiet: the callback sees ThumbnailFailed with
// an error wrapping model.ErrThumbnail, and the slot keeps its placeholder.
// Nothing is retried.
package thumbnail

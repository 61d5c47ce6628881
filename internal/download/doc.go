// Package download saves the artwork of search results to disk.
//
// # Manager
//
// The Manager coordinates an export:
//
//  1. Plan one file per result with artwork, named from a template
//  2. Download artwork concurrently
//  3. Optionally scale it and re-encode as JPEG
//  4. Write each file atomically
//
// # Basic Usage
//
//	manager := download.NewManager(client, download.DefaultConfig("/tmp/art"), func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Export(ctx, results); err != nil {
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// Config.MaxConcurrent caps parallel downloads through errgroup.SetLimit.
// One failed file never stops the others; cancellation stops them all.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// # Retry Logic
//
// Failed downloads are retried with exponential backoff, configurable via
// Config.MaxRetries, Config.RetryCooldown and Config.RetryExponent. HTTP
// 4xx responses are not retried.
package download

// Package tracking forwards storefront lifecycle events (identity, browsing,
// cart, checkout, engagement) to an analytics sink.
//
// Every operation is best effort. A Tracker without a sink drops the event
// and returns nil; there is no buffering and no retry. Payload shaping is
// pure and lives in FormatProduct, FormatCart and CartValue so it can be
// exercised without a sink.
package tracking

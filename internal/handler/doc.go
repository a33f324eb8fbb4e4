// Package handler runs one promiedos-alerts invocation: acquire the snapshot, format
// the notification, hand it to the notifier, and return the snapshot.
//
// Acquisition failures (transport, status, markup) are returned to the caller.
// Delivery failures are logged and reported in Result.Delivery but never fail the run,
// so a scheduler sees a successful invocation whenever the snapshot was obtained.
package handler

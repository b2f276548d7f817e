// Package bridge exposes the catalog operations to an embedding shell over newline-delimited JSON.
//
// # Wire format
//
// Each line read is one [Request]:
//
//	{"id": "1", "channel": "get-videos", "method": "ReadVideo", "args": [3, true]}
//
// Each line written is one [Response] carrying the same id:
//
//	{"id": "1", "result": {...}, "error": ""}
//
// A request without an id gets a generated one.
//
// # Channels
//
// Only channels named in the allow list are dispatched ([DefaultChannel] unless configured).
// A request on any other channel gets a null result and no error; no handler runs and nothing is written to the store.
//
// # Methods
//
// Arguments are positional and keep their JSON shapes until a handler decides what they mean.
// Read methods choose the catalog call from the shape of the id argument:
// an array of numbers reads several rows, a number reads one, anything else reads all.
//
// # Middleware
//
// [Middleware] wraps handlers in reverse order (last added executes first), the same way an HTTP middleware stack does.
// [Logging] and [Recover] make up the default stack installed by [NewCatalogBridge].
package bridge

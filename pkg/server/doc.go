// Package server is the edit host: it serves one editing session as an
// editable HTML page plus the JSON endpoints used by the editor runtime.
// Handlers are serialised by a single mutex.
package server

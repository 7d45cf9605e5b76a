// Package session holds one editing session over a page content document.
//
// A Session owns a private working copy of the document. Field edits and
// block list operations mutate that copy in place; nothing reaches the store
// until Submit, which overwrites the document wholesale. A failed submit keeps
// the working copy so no edits are lost.
//
// Sessions are not safe for concurrent use. Hosts that serve several callers
// must serialise access themselves.
package session

// Package store persists the page content document and uploaded assets.
//
// A Store holds exactly one document. Saves replace the whole file; there is
// no field-level persistence, no versioning and no merge: the last writer wins.
package store

// Package reconcile merges the media server listing with the persisted
// catalog and fills in what the film database and ratings service know about
// new movies.
//
// Engine.Run is pure with respect to storage: it reads prior state through
// the Catalog interface and returns the next record set plus the image tags
// whose thumbnails are superseded. Writing both is the caller's job.
package reconcile

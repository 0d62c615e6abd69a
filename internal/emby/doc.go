// Package emby talks to the Emby media server, the source of truth for the
// movie inventory.
//
// Client lists the movie items of one library folder and downloads primary
// images. Check validates a raw item and decodes it into Item, and
// Item.Record maps a validated item onto the canonical movie record.
package emby

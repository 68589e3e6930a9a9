// Package content provides read-only stores for localized content items.
//
// A content item is identified by a slash-separated id whose first segment
// is the item's language directory, for example "es/lessons/intro.md".
// Stores only list and open items; they never modify them.
//
// Three implementations are provided:
//
//   - FSStore walks an fs.FS such as os.DirFS or an embed.FS.
//   - S3Store lists and downloads objects from an S3-compatible bucket.
//   - CachedStore shares the id listing of another store through Redis.
//
// Example:
//
//	store, err := content.NewFSStore(os.DirFS("./content"))
//	if err != nil {
//		return err
//	}
//	ids, err := store.IDs(ctx)
//
// Stores implement the i18n.Lister contract through i18n.ListerFunc(store.IDs),
// which lets a Scanner derive the available languages from the listing.
//
// Watcher reports changes under a local content directory so a long-running
// server can pick up new language directories without a restart.
package content

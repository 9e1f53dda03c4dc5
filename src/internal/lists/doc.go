// Package lists downloads the external hosts list for mergehosts.
//
// The list configured as external.url is fetched over HTTP, checked to be a
// well-formed hosts file and stored in the lists directory. An MD5 checksum
// kept next to the file skips the write when the list did not change.
//
// # Example Usage
//
//	d := &lists.Downloader{Logger: logger}
//	changed, err := d.DownloadExternal(ctx, cfg)
package lists

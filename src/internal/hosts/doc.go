// Package hosts merges local, hard-coded, untrusted and external host
// definitions into a single hosts file.
//
// A merge run reads the four sources in a fixed order (local, hard-coded,
// untrusted, external) and keeps one Registry of the hostnames already
// written. The first source to claim a hostname wins; later claims are
// dropped. Local hosts are bound to every local address, untrusted and
// external hosts are bound to the sinkhole address, hard-coded hosts keep the
// address given in the file.
//
// # Example Usage
//
//	merger := hosts.NewMerger(hosts.Options{}, logger)
//	published, err := hosts.Publish("/etc/hosts", hosts.PublishOptions{Logger: logger},
//		func(w io.Writer) error {
//			_, err := merger.Merge(w, sources)
//			return err
//		})
//
// Publish renders into a scratch file next to the destination and renames it
// over the destination only after the whole document was written, so a
// failed run never leaves a half-written hosts file behind.
package hosts

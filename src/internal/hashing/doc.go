// Package hashing provides MD5 checksum calculation utilities.
//
// The proxies calculate a checksum while data flows through an io.Reader or
// io.Writer. They are used to detect whether a downloaded external list or a
// freshly merged hosts file differs from the copy already on disk, so
// unchanged files are not rewritten.
//
// # Example Usage
//
//	proxy := hashing.NewMD5ReaderProxy(resp.Body)
//	content, _ := io.ReadAll(proxy)
//	checksum, _ := proxy.GetChecksum()
//
// Writing through a proxy and excluding a volatile header:
//
//	w := hashing.NewMD5WriterProxy(file)
//	w.Pause()
//	fmt.Fprintf(w, "# generated at %s\n", time.Now())
//	w.Resume()
//	io.WriteString(w, body)
//	checksum, _ := w.GetChecksum()
package hashing

// Package hostsfile reads the system hosts file to seed the local section
// with the names the machine already resolves to a loopback address.
package hostsfile

import (
	"io"
	"os"
	"sort"
	"strings"

	hostsfile "github.com/kevinburke/hostsfile/lib"
	"golang.org/x/exp/maps"
)

// Location is the path of the system hosts file.
var Location = hostsfile.Location

// LoopbackAliases returns the lower-cased hostnames bound to a loopback
// address in the hosts file at path, sorted. A missing file yields no aliases.
func LoopbackAliases(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	return readLoopbackAliases(f)
}

func readLoopbackAliases(r io.Reader) ([]string, error) {
	hf, err := hostsfile.Decode(r)
	if err != nil {
		return nil, err
	}

	aliases := make(map[string]struct{})
	for _, r := range hf.Records() {
		if r.IpAddress.IP.IsLoopback() {
			for a := range r.Hostnames {
				aliases[strings.ToLower(a)] = struct{}{}
			}
		}
	}

	v := maps.Keys(aliases)
	sort.Strings(v)
	return v, nil
}

package hosts

import (
	"fmt"
	"io"
)

// Kind identifies one of the four input categories.
type Kind int

const (
	KindLocal Kind = iota
	KindHardCoded
	KindUntrusted
	KindExternal
)

// String returns the name used in duplicate warnings and error messages.
func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindHardCoded:
		return "hard-coded"
	case KindUntrusted:
		return "untrusted"
	case KindExternal:
		return "external"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Title returns the section banner text.
func (k Kind) Title() string {
	switch k {
	case KindLocal:
		return "Local Hosts"
	case KindHardCoded:
		return "Hard Coded Hosts"
	case KindUntrusted:
		return "Untrusted Hosts"
	case KindExternal:
		return "External Hosts"
	default:
		return k.String()
	}
}

// Kinds lists the source kinds in merge order.
var Kinds = []Kind{KindLocal, KindHardCoded, KindUntrusted, KindExternal}

// Source is one input stream. The caller owns Reader and closes it.
// A nil Reader yields an empty section.
type Source struct {
	// Name is shown in log and error messages, usually the file path.
	Name   string
	Reader io.Reader
}

// Sources holds the inputs of a merge run.
type Sources struct {
	// LocalSeeds are written in the local section before the Local stream,
	// typically "localhost" and the machine's hostname.
	LocalSeeds []string
	Local      Source
	HardCoded  Source
	Untrusted  Source
	External   Source
}

func (s *Sources) get(kind Kind) Source {
	switch kind {
	case KindLocal:
		return s.Local
	case KindHardCoded:
		return s.HardCoded
	case KindUntrusted:
		return s.Untrusted
	default:
		return s.External
	}
}

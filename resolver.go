package marble

import (
	"embed"
	"os"
	"path/filepath"
)

//go:embed testdata/lib
var embeddedLibrary embed.FS

// embeddedResolver serves the prelude library bundled into the binary
// via go:embed, keyed by logical name ("list" -> testdata/lib/list.mrbl).
type embeddedResolver struct{}

// Library returns the resolver backing Marble's embedded standard
// library, the fallback every Execute call consults after the caller's
// own resolver has had a chance to answer.
func Library() embeddedResolver {
	return embeddedResolver{}
}

func (embeddedResolver) Resolve(name string) ([]byte, bool) {
	data, err := embeddedLibrary.ReadFile(filepath.Join("testdata/lib", name+".mrbl"))
	if err != nil {
		return nil, false
	}
	return data, true
}

// DirResolver resolves imports by reading "<Base>/<name>.mrbl" off disk,
// the host-provided counterpart to the embedded library.
type DirResolver struct {
	Base string
}

func (d DirResolver) Resolve(name string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(d.Base, name+".mrbl"))
	if err != nil {
		return nil, false
	}
	return data, true
}

// chainResolver tries first, then falls back to second. first may be
// nil, in which case second alone is consulted.
type chainResolver struct {
	first  interface {
		Resolve(name string) ([]byte, bool)
	}
	second interface {
		Resolve(name string) ([]byte, bool)
	}
}

func (c chainResolver) Resolve(name string) ([]byte, bool) {
	if c.first != nil {
		if data, ok := c.first.Resolve(name); ok {
			return data, ok
		}
	}
	if c.second != nil {
		return c.second.Resolve(name)
	}
	return nil, false
}

package cmd

import (
	"fmt"
	"os"
)

// bundleEntry is one record of the bundle manifest: the archive-relative
// path of an uploaded file, its original permission bits, and its content
// compressed with bzip2 and base64-encoded for transport inside the
// companion script.
type bundleEntry struct {
	ArchivePath string
	Mode        os.FileMode
	Payload     string
}

// instruction renders the extraction instruction executed on the remote
// side. The shape is fixed by the companion script's extract() helper:
// extract('<path>', 0o<mode>, '<payload>').
func (e bundleEntry) instruction() string {
	return fmt.Sprintf("extract(%s, 0o%o, '%s')", pyQuote(e.ArchivePath), uint32(e.Mode.Perm()), e.Payload)
}

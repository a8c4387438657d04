package domain

// Command is the closed set of protocol command variants. Values are
// transient: constructed from a decoded akl URI or from internal link
// synthesis, dispatched, and discarded.
type Command interface {
	isCommand()
}

// OpenCommand asks the archive to open a reference, optionally at a
// named destination or page of the document.
type OpenCommand struct {
	Reference   string
	StorageRoot string
	Dest        *string
	Page        *int

	// Paths threaded through for the citation-capture companion.
	Bibtex    string
	Knowledge string
}

// ImportCommand asks the archive to import the document reachable at
// DownloadRef, described by the candidate record.
type ImportCommand struct {
	DownloadRef string
	Record      Record
	StorageRoot string
}

// CiteCommand asks the archive to produce a citation for a destination
// of a document and place it on the clipboard.
type CiteCommand struct {
	Reference   string
	StorageRoot string
	Dest        string
	Page        int

	Bibtex    string
	Knowledge string
}

func (OpenCommand) isCommand()   {}
func (ImportCommand) isCommand() {}
func (CiteCommand) isCommand()   {}

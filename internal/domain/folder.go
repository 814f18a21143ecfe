package domain

// Folder is a named grouping of entries owned by one user.
//
// ItemCount is denormalized: it tracks how many entries reference the folder
// and is maintained by the journal service on create and folder reassignment.
// Entry deletion intentionally does not decrement it (historical behavior of
// the product, kept until the counter's contract is settled).
type Folder struct {
	ID         int64
	OwnerLogin string
	Name       string
	ItemCount  int
}

// DefaultFolderName is the display name of the folder every new account
// starts with.
const DefaultFolderName = "Main"

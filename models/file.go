package models

// FileRecord stores an opaque binary payload with its metadata, linked to
// an entry or a ticket. The core treats the payload as a blob; decoding is
// a presentation concern.
type FileRecord struct {
	// ID is the unique identifier of the file record (UUID).
	ID string `json:"id"`

	// EntryID links the file to an entry. Empty when the file belongs to
	// a ticket instead.
	EntryID string `json:"entry_id"`

	// TicketID links the file to a ticket. Empty when the file belongs to
	// an entry instead.
	TicketID string `json:"ticket_id"`

	// Name is the original file name.
	Name string `json:"name"`

	// Mime is the declared MIME type of the payload.
	Mime string `json:"mime"`

	// Size is the payload size in bytes as declared by the caller.
	Size int64 `json:"size"`

	// Blob is the opaque payload.
	Blob []byte `json:"-"`
}

// TableName returns the name of the database table
// associated with the FileRecord model.
func (f FileRecord) TableName() string {
	return "files"
}

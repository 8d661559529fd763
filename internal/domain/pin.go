package domain

// Pin describes an uploaded image stored on local disk.
type Pin struct {
	Name      string
	Path      string
	SizeBytes int64
	MimeType  string
}

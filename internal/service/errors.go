package service

import "errors"

// Alerts shown to the employee. Existing users and tests match them verbatim.
const (
	MsgInvalidFileType = "Seuls les fichiers JPG, JPEG et PNG sont autorisés"
	MsgMissingFields   = "Veuillez remplir tous les champs"
)

// PlaceholderProofURL is shown in the proof modal when a bill has no file.
const PlaceholderProofURL = "https://www.shutterstock.com/image-vector/default-ui-image-placeholder-wireframes-600nw-1037719192.jpg"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrNoPendingBill      = errors.New("no bill key reserved for this submission")
)

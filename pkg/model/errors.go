package model

type errorString string

func (e errorString) Error() string {
	return string(e)
}

const (
	// NameIsRequired error whenever a name is expected but not provided
	NameIsRequired errorString = "name is required"

	// IDIsRequired error whenever an id is expected but not provided
	IDIsRequired errorString = "id is required"

	// InvalidName when a name contains unsupported characters
	InvalidName errorString = "invalid name"
)

package editor

import "errors"

// Invariant violations. Actions returning one of these leave the document
// unchanged.
var (
	ErrRequiredBlock       = errors.New("block is required")
	ErrUnknownBlockType    = errors.New("unknown block type")
	ErrBlockExists         = errors.New("block type allows a single instance")
	ErrPayloadType         = errors.New("payload does not match block type")
	ErrNotTable            = errors.New("block has no table layout")
	ErrRequiredColumn      = errors.New("column is required")
	ErrLastVisibleColumn   = errors.New("at least one column must stay visible")
	ErrInvalidSubItemsMode = errors.New("invalid sub-items mode")
	ErrInvalidLogo         = errors.New("invalid logo settings")
)

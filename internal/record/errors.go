package record

import "errors"

var (
	ErrInvalidSchema    = errors.New("record: invalid schema")
	ErrIndexOutOfRange  = errors.New("record: index out of range")
	ErrNameNotFound     = errors.New("record: column name not found")
	ErrIncompleteRecord = errors.New("record: record has absent fields")
	ErrTypeMismatch     = errors.New("record: field does not fit column type")
	ErrBadBuffer        = errors.New("rowcodec: buffer size does not match schema")
	ErrBadType          = errors.New("record: unknown column type")
)

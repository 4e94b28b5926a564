package storage

import "errors"

const (
	OneKB = 1 << 10

	PageSize    = 8 * OneKB // default, overridable through config
	MinPageSize = 64
	HeaderSize  = 6 // pageID u32 + numSlots u16
)

const (
	FileMode0644 = 0o644
	FileMode0755 = 0o755
)

var (
	ErrNoSpace        = errors.New("page: no free slot")
	ErrBadSlot        = errors.New("page: invalid slot")
	ErrWrongSize      = errors.New("page: bad buffer size")
	ErrRecordTooLarge = errors.New("page: record larger than page")
	ErrPageCorrupted  = errors.New("page: header does not match schema")
	ErrSchemaMismatch = errors.New("page: record schema differs from page schema")
	ErrInvalidPageID  = errors.New("pager: invalid page id")
	ErrPagerClosed    = errors.New("pager: closed")
)

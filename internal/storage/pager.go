package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Pager reads and writes whole pages of a single file.
type Pager struct {
	mu        sync.RWMutex
	file      *os.File
	pageSize  int
	pageCount uint32
}

// OpenPager opens (or creates) path. The file size must be a multiple of pageSize.
func OpenPager(path string, pageSize int) (*Pager, error) {
	if pageSize < MinPageSize {
		return nil, fmt.Errorf("%w: %d", ErrWrongSize, pageSize)
	}
	if err := os.MkdirAll(filepath.Dir(path), FileMode0755); err != nil {
		return nil, fmt.Errorf("create dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, FileMode0644)
	if err != nil {
		return nil, fmt.Errorf("open page file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat page file: %w", err)
	}
	if info.Size()%int64(pageSize) != 0 {
		_ = f.Close()
		return nil, fmt.Errorf("%w: file size %d is not a multiple of %d", ErrWrongSize, info.Size(), pageSize)
	}

	slog.Debug("pager: open", "path", path, "pages", info.Size()/int64(pageSize))
	return &Pager{
		file:      f,
		pageSize:  pageSize,
		pageCount: uint32(info.Size() / int64(pageSize)),
	}, nil
}

func (p *Pager) PageSize() int { return p.pageSize }

func (p *Pager) PageCount() uint32 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pageCount
}

// ReadPage fills dst with page pageID. Pages past the end of file are
// reported as ErrInvalidPageID.
func (p *Pager) ReadPage(pageID uint32, dst []byte) error {
	if len(dst) != p.pageSize {
		return fmt.Errorf("%w: dst %d, page %d", ErrWrongSize, len(dst), p.pageSize)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.file == nil {
		return ErrPagerClosed
	}
	if pageID >= p.pageCount {
		return fmt.Errorf("%w: %d (count %d)", ErrInvalidPageID, pageID, p.pageCount)
	}

	off := int64(pageID) * int64(p.pageSize)
	if _, err := p.file.ReadAt(dst, off); err != nil && err != io.EOF {
		return fmt.Errorf("read page %d: %w", pageID, err)
	}
	return nil
}

// WritePage writes data at pageID. Writing at PageCount() appends a page;
// anything further is rejected so the file never has holes.
func (p *Pager) WritePage(pageID uint32, data []byte) error {
	if len(data) != p.pageSize {
		return fmt.Errorf("%w: data %d, page %d", ErrWrongSize, len(data), p.pageSize)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.file == nil {
		return ErrPagerClosed
	}
	if pageID > p.pageCount {
		return fmt.Errorf("%w: %d (count %d)", ErrInvalidPageID, pageID, p.pageCount)
	}

	off := int64(pageID) * int64(p.pageSize)
	if _, err := p.file.WriteAt(data, off); err != nil {
		return fmt.Errorf("write page %d: %w", pageID, err)
	}
	if pageID == p.pageCount {
		p.pageCount++
		slog.Debug("pager: appended page", "page_id", pageID)
	}
	return nil
}

func (p *Pager) Sync() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.file == nil {
		return ErrPagerClosed
	}
	return p.file.Sync()
}

func (p *Pager) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.file == nil {
		return nil
	}
	err := p.file.Close()
	p.file = nil
	return err
}

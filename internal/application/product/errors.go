package product

import "errors"

var (
	ErrDecode            = errors.New("decode import file")
	ErrStoreWrite        = errors.New("write product batch")
	ErrInvalidImportFile = errors.New("invalid import file")
	ErrEnqueueImportJob  = errors.New("failed to enqueue import job")
	ErrInvalidJobID      = errors.New("invalid job id")
	ErrGetImportStatus   = errors.New("failed to get import status")
)

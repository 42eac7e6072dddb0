package domain

import "errors"

var (
	ErrFetchFailed      = errors.New("fetch persons failed")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrDecodeRecords    = errors.New("decode person records")
)

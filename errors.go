package stickercolors

import "errors"

// Errors returned by pool operations. They are wrapped, so test with
// errors.Is.
var (
	// ErrDecode means an image source could not be read or decoded.
	ErrDecode = errors.New("decode failed")
	// ErrCluster means the clustering step could not fit the pool.
	ErrCluster = errors.New("clustering failed")
	// ErrInvalidParameter means an option is outside its documented range.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrEmptyPool means the operation needs at least one colour.
	ErrEmptyPool = errors.New("color pool is empty")
)

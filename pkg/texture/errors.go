package texture

import "errors"

var (
	ErrInvalidMagic          = errors.New("texture: invalid DDS magic")
	ErrUnsupportedDXGIFormat = errors.New("texture: unsupported DXGI format")
	ErrTruncated             = errors.New("texture: data truncated")
	ErrLevelOutOfRange       = errors.New("texture: mip level out of range")
)

package system

import "errors"

// ErrUnsupportedOS marks operations the host operating system cannot serve.
var ErrUnsupportedOS = errors.New("unsupported operating system")

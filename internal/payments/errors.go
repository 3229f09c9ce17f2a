package payments

import "errors"

var ErrBadSignature = errors.New("payment signature verification failed")

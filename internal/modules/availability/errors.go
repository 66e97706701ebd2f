package availability

import "errors"

var ErrUnknownItem = errors.New("item not in catalog")

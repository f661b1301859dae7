package storage

import "errors"

var ErrIdentityNotFound = errors.New("identity not found in storage")
var ErrInvalidIdentity = errors.New("identity needs a room id and a guest user id")

package resources

import "errors"

var (
	ErrInvalidName     = errors.New("invalid resource name")
	ErrUnknownTag      = errors.New("no loader registered for tag")
	ErrDependencyCycle = errors.New("resource dependency cycle")
	ErrDependency      = errors.New("dependency unavailable")
	ErrNameMismatch    = errors.New("loader produced a resource with another name")
	ErrNotCached       = errors.New("resource is not cached")
	ErrMaterialType    = errors.New("material type is not registered")
	ErrMalformed       = errors.New("malformed resource document")
)

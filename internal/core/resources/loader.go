package resources

// Loader builds one kind of resource. CreateResource receives the base name
// (without tag). ReloadResource rebuilds the payload of an existing resource
// in place and must leave it untouched when it fails.
type Loader interface {
	CreateResource(s *Service, name string) (*Resource, error)
	ReloadResource(s *Service, r *Resource) error
}

type buildFunc func(s *Service, name string) (*Resource, error)

// rebuild is the shared reload strategy: build a fresh twin from the base
// name and adopt it only on success.
func rebuild(s *Service, r *Resource, build buildFunc) error {
	_, base, err := SplitName(r.Name())
	if err != nil {
		return err
	}
	fresh, err := build(s, base)
	if err != nil {
		return err
	}
	r.adopt(fresh)
	return nil
}

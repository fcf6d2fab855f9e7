package authz

// Gate is the predicate consulted before destructive operations. It only
// answers whether the presented credential belongs to an administrator;
// user authentication lives outside this service.
type Gate interface {
	Admin(credential string) bool
	Name() string
}

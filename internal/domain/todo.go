package domain

// Todo is a short free-form task on the user's todo list. Names are unique
// per owner.
type Todo struct {
	ID         int64
	OwnerLogin string
	Name       string
}

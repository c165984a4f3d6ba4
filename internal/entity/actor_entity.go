package entity

// Actor is the identity handed to the note domain by the auth layer.
// An empty UserId means the request is anonymous.
type Actor struct {
	UserId   string
	Groups   []string
	ClientIP string
}

func Guest() Actor {
	return Actor{}
}

func (a Actor) IsGuest() bool {
	return a.UserId == ""
}

func (a Actor) InGroup(name string) bool {
	for _, g := range a.Groups {
		if g == name {
			return true
		}
	}
	return false
}

// UserRef returns the user id as a nullable reference, nil for guests.
func (a Actor) UserRef() *string {
	if a.IsGuest() {
		return nil
	}
	id := a.UserId
	return &id
}

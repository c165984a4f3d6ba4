package permission

import "collabnote-be/internal/entity"

// Evaluator decides what an actor may do with a note. It has no side effects
// and never fails: missing data yields false.
//
// Every grant source is checked as a disjunction, so adding an access list
// entry or a visibility flag can only widen access.
type Evaluator struct {
	policy Policy
}

func NewEvaluator(policy Policy) *Evaluator {
	return &Evaluator{policy: policy}
}

func (e *Evaluator) MayCreate(actor entity.Actor) bool {
	if !actor.IsGuest() {
		return true
	}
	return e.policy.GuestAccess >= GuestAccessCreate
}

func (e *Evaluator) IsOwner(actor entity.Actor, note *entity.Note) bool {
	if note == nil || note.OwnerId == nil || actor.IsGuest() {
		return false
	}
	return *note.OwnerId == actor.UserId
}

func (e *Evaluator) MayRead(actor entity.Actor, note *entity.Note) bool {
	if note == nil {
		return false
	}
	if e.IsOwner(actor, note) {
		return true
	}

	if actor.IsGuest() {
		return note.Visibility.Everyone.CanRead() && e.policy.GuestAccess >= GuestAccessRead
	}

	if e.hasEntry(actor, note, false) {
		return true
	}
	return note.Visibility.Everyone.CanRead() || note.Visibility.LoggedIn.CanRead()
}

func (e *Evaluator) MayWrite(actor entity.Actor, note *entity.Note) bool {
	if note == nil {
		return false
	}
	if e.IsOwner(actor, note) {
		return true
	}

	if actor.IsGuest() {
		return note.Visibility.Everyone.CanEdit() && e.policy.GuestAccess >= GuestAccessWrite
	}

	if e.hasEntry(actor, note, true) {
		return true
	}
	return note.Visibility.Everyone.CanEdit() || note.Visibility.LoggedIn.CanEdit()
}

// hasEntry reports whether the access list names the actor or one of its groups.
// With needEdit set only entries carrying canEdit qualify.
func (e *Evaluator) hasEntry(actor entity.Actor, note *entity.Note, needEdit bool) bool {
	for _, p := range note.Permissions {
		if needEdit && !p.CanEdit {
			continue
		}
		switch p.GranteeKind {
		case entity.GranteeUser:
			if p.Grantee == actor.UserId {
				return true
			}
		case entity.GranteeGroup:
			if actor.InGroup(p.Grantee) {
				return true
			}
		}
	}
	return false
}

package memory

import (
	"artifact-host/core/mre"
)

type actor struct {
	rt        *Runtime
	seq       uint64
	id        mre.ActorID
	name      string
	resource  string
	transform mre.Transform
	hidden    bool
	subscribe bool
	collider  *mre.Collider
	grabbable bool
	body      *mre.RigidBody
	attached  *mre.Attachment
}

func (a *actor) ID() mre.ActorID { return a.id }

func (a *actor) Name() string { return a.name }

func (a *actor) Attachment() (mre.Attachment, bool) {
	a.rt.mu.Lock()
	defer a.rt.mu.Unlock()
	if !a.liveLocked() || a.attached == nil {
		return mre.Attachment{}, false
	}
	return *a.attached, true
}

func (a *actor) Attach(user mre.UserID, attachPoint string) error {
	a.rt.mu.Lock()
	if !a.liveLocked() {
		a.rt.mu.Unlock()
		return mre.ErrActorNotFound
	}
	if _, ok := a.rt.users[user]; !ok {
		a.rt.mu.Unlock()
		return mre.ErrUserNotFound
	}
	a.attached = &mre.Attachment{UserID: user, AttachPoint: attachPoint}
	evt := a.eventLocked(mre.EventActorUpdated)
	a.rt.mu.Unlock()

	a.rt.publish(evt)
	return nil
}

func (a *actor) Detach() error {
	a.rt.mu.Lock()
	if !a.liveLocked() {
		a.rt.mu.Unlock()
		return mre.ErrActorNotFound
	}
	if a.attached == nil {
		a.rt.mu.Unlock()
		return nil
	}
	a.attached = nil
	evt := a.eventLocked(mre.EventActorUpdated)
	a.rt.mu.Unlock()

	a.rt.publish(evt)
	return nil
}

func (a *actor) Destroy() error {
	a.rt.mu.Lock()
	if !a.liveLocked() {
		a.rt.mu.Unlock()
		return mre.ErrActorNotFound
	}
	delete(a.rt.actors, a.id)
	evt := a.eventLocked(mre.EventActorDestroyed)
	a.rt.mu.Unlock()

	a.rt.publish(evt)
	return nil
}

func (a *actor) SetGrabbable(grabbable bool) error {
	a.rt.mu.Lock()
	if !a.liveLocked() {
		a.rt.mu.Unlock()
		return mre.ErrActorNotFound
	}
	a.grabbable = grabbable
	evt := a.eventLocked(mre.EventActorUpdated)
	a.rt.mu.Unlock()

	a.rt.publish(evt)
	return nil
}

func (a *actor) EnableRigidBody(body mre.RigidBody) error {
	a.rt.mu.Lock()
	if !a.liveLocked() {
		a.rt.mu.Unlock()
		return mre.ErrActorNotFound
	}
	b := body
	a.body = &b
	evt := a.eventLocked(mre.EventActorUpdated)
	a.rt.mu.Unlock()

	a.rt.publish(evt)
	return nil
}

func (a *actor) liveLocked() bool {
	return a.rt.actors[a.id] == a
}

// stateLocked copies the actor's wire state; attachments are included only on request.
func (a *actor) stateLocked(withAttachment bool) mre.ActorState {
	st := mre.NewActorState(a.id, a.name, a.transform)
	st.Resource = a.resource
	st.Hidden = a.hidden
	st.Grabbable = a.grabbable
	if a.collider != nil {
		c := *a.collider
		st.Collider = &c
	}
	if a.body != nil {
		b := *a.body
		st.RigidBody = &b
	}
	if withAttachment && a.attached != nil {
		att := *a.attached
		st.Attachment = &att
	}
	return st
}

func (a *actor) eventLocked(kind mre.EventType) mre.Event {
	st := a.stateLocked(true)
	return mre.Event{Type: kind, Actor: &st}
}

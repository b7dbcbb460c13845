package game

// Removable is anything that can disappear from the world while a
// suspended script still holds a reference to it.
type Removable interface {
	Removed() bool
}

// Ref is a non-owning reference to a world entity. Scripts that span
// suspension points must hold entities through a Ref and re-validate on
// every read; the entity may have logged out or despawned in between.
type Ref[T Removable] struct {
	val T
	set bool
}

func NewRef[T Removable](v T) Ref[T] {
	return Ref[T]{val: v, set: true}
}

// Get resolves the reference. Returns ErrEntityGone if the entity has
// been removed from the world or the reference was never set.
func (r Ref[T]) Get() (T, error) {
	var zero T
	if !r.set || r.val.Removed() {
		return zero, ErrEntityGone
	}
	return r.val, nil
}

// Alive reports whether Get would succeed.
func (r Ref[T]) Alive() bool {
	return r.set && !r.val.Removed()
}

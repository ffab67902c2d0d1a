package element

import "time"

// Mutate applies update to el in place and bumps its version, so peers
// reconciling by version see the change.
func Mutate[T Element](el T, update func(T)) T {
	update(el)
	Touch(el)
	return el
}

// Touch marks el as changed without altering any other field.
func Touch(el Element) {
	b := el.Common()
	b.Version++
	b.VersionNonce = randomInteger()
	b.Updated = time.Now().UnixMilli()
}

// Delete soft-deletes el. The element stays in its scene.
func Delete(el Element) {
	Mutate(el, func(e Element) { e.Common().IsDeleted = true })
}

// IsBoundText reports whether el is a text element attached to a container.
func IsBoundText(el Element) bool {
	t, ok := el.(*Text)
	return ok && t.ContainerID != nil && *t.ContainerID != ""
}

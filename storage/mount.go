package storage

import (
	"sync"

	"github.com/joshuapare/jbkv"
	"github.com/joshuapare/jbkv/internal/log"
)

// mountToken represents one volume's registration in a metadata record's
// mount list. It is owned by exactly one StorageNode: the one returned by
// the Mount/MountAll call that created it. Closing that StorageNode closes
// the token.
//
// next chains to the token introduced by the StorageNode this one was
// built on top of, if any. Closing a token cascades down the chain, so
// closing the StorageNode at the end of a Mount().Mount().Mount() chain
// tears down every mount it stacked in one call, matching "mount lifetime
// is tied to the returned StorageNode" from doc.go. An intermediate
// StorageNode that the caller keeps and closes separately releases its own
// token exactly once regardless of ordering: close is idempotent.
type mountToken struct {
	once   sync.Once
	volume jbkv.VolumeNode
	next   *mountToken
	meta   *metadata
}

func newMountToken(volume jbkv.VolumeNode, next *mountToken, meta *metadata) *mountToken {
	t := &mountToken{volume: volume, next: next, meta: meta}
	meta.addMountPoint(t)
	log.Debug("storage: mounted volume", "path", meta.Name())
	return t
}

func (t *mountToken) close() {
	if t == nil {
		return
	}
	t.once.Do(func() {
		t.meta.removeMount(t)
		log.Debug("storage: unmounted volume", "path", t.meta.Name())
		t.next.close()
	})
}

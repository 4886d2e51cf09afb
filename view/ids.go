package view

// ids.go mirrors gazed-vu/eid.go's generation-tagged handle scheme for the
// entity/geometry handles VisibleItem carries internally. Light handles,
// the one external, caller-facing identity, instead use
// github.com/google/uuid, since they cross the package boundary and gain
// nothing from array-index packing.

import "log"

const idBits = 20                     // entity array index : 1048575
const edBits = 12                     // entity edition     :    4096
const maxEntityID = (1 << idBits) - 1 // mask and max active entities.
const maxEdition = (1 << edBits) - 1  // mask and max dispose/reuse.
const maxFree = 1 << (edBits - 1)     // recycle once free exceeds 2048.

// entityID is a live reference to a snapshot-scoped entity slot, packed
// with an edition so a stale handle from a prior snapshot is detectable.
type entityID uint32

func (e entityID) index() uint32    { return uint32(e) & maxEntityID }
func (e entityID) edition() uint16  { return uint16((uint32(e) >> idBits) & maxEdition) }

// entityIDs allocates and recycles entityID values scoped to a single
// ViewSet snapshot (spec §4.8: the scene's entity list is immutable for
// the life of the snapshot, so ids never need to survive past end_view_set).
type entityIDs struct {
	editions []uint16
	free     []uint32
}

func (ids *entityIDs) create() entityID {
	var id uint32
	if len(ids.free) > maxFree {
		id = ids.free[0]
		ids.free = append(ids.free[:0], ids.free[1:]...)
	} else {
		ids.editions = append(ids.editions, 0)
		id = uint32(len(ids.editions) - 1)
		if id > maxEntityID {
			if len(ids.free) == 0 {
				log.Printf("view: all %d entity identifiers in use", maxEntityID+1)
				return 0
			}
			id = ids.free[0]
			ids.free = append(ids.free[:0], ids.free[1:]...)
		}
	}
	return entityID(id | uint32(ids.editions[id])<<idBits)
}

func (ids *entityIDs) reset() {
	ids.editions = ids.editions[:0]
	ids.free = ids.free[:0]
}

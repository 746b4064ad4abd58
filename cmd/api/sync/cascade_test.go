package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPruneMenuChildren(t *testing.T) {
	snap := NewSnapshot()
	snap.SubMenus["s1"] = SubMenuRecord{ID: "s1", MenuID: "m1"}
	snap.SubMenus["s2"] = SubMenuRecord{ID: "s2", MenuID: "m2"}
	snap.Dishes["d1"] = DishRecord{ID: "d1", MenuID: "m1", SubMenuID: "s1"}
	snap.Dishes["d2"] = DishRecord{ID: "d2", MenuID: "m2", SubMenuID: "s2"}

	snap.PruneMenuChildren([]Deletion{{ID: "m1"}})

	assert.NotContains(t, snap.SubMenus, "s1")
	assert.NotContains(t, snap.Dishes, "d1")
	assert.Contains(t, snap.SubMenus, "s2")
	assert.Contains(t, snap.Dishes, "d2")
}

func TestPruneSubMenuChildren(t *testing.T) {
	snap := NewSnapshot()
	snap.Dishes["d1"] = DishRecord{ID: "d1", MenuID: "m1", SubMenuID: "s1"}
	snap.Dishes["d2"] = DishRecord{ID: "d2", MenuID: "m1", SubMenuID: "s2"}

	snap.PruneSubMenuChildren([]Deletion{{ID: "s1", MenuID: "m1"}})

	assert.NotContains(t, snap.Dishes, "d1")
	assert.Contains(t, snap.Dishes, "d2")
}

func TestPruneMenuChildren_NoDeletionsIsNoop(t *testing.T) {
	snap := NewSnapshot()
	snap.SubMenus["s1"] = SubMenuRecord{ID: "s1", MenuID: "m1"}

	snap.PruneMenuChildren(nil)

	assert.Len(t, snap.SubMenus, 1)
}

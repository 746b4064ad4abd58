package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffRecords_CreateUpdateDelete(t *testing.T) {
	source := map[string]MenuRecord{
		"a": {ID: "a", Title: "Drinks", Description: "cold"},
		"b": {ID: "b", Title: "Food", Description: "hot"},
	}
	store := map[string]MenuRecord{
		"b": {ID: "b", Title: "Food", Description: "stale description"},
		"c": {ID: "c", Title: "Gone", Description: ""},
	}

	diff := diffRecords(source, store, menuDeletion)

	assert.Equal(t, []MenuRecord{{ID: "a", Title: "Drinks", Description: "cold"}}, diff.Creates)
	assert.Equal(t, []MenuRecord{{ID: "b", Title: "Food", Description: "hot"}}, diff.Updates)
	assert.Equal(t, []Deletion{{ID: "c"}}, diff.Deletes)
}

func TestDiffRecords_EqualSidesProposeNothing(t *testing.T) {
	records := map[string]DishRecord{
		"d1": {ID: "d1", Title: "Soup", Price: "10.00", Discount: "0.00", MenuID: "m", SubMenuID: "s"},
		"d2": {ID: "d2", Title: "Steak", Price: "25.50", Discount: "0.10", MenuID: "m", SubMenuID: "s"},
	}
	store := map[string]DishRecord{
		"d1": records["d1"],
		"d2": records["d2"],
	}

	diff := diffRecords(records, store, dishDeletion)

	assert.True(t, diff.Empty())
}

func TestDiffRecords_DeterministicOrder(t *testing.T) {
	source := map[string]MenuRecord{
		"c": {ID: "c"}, "a": {ID: "a"}, "b": {ID: "b"},
	}
	store := map[string]MenuRecord{
		"z": {ID: "z"}, "x": {ID: "x"},
	}

	for i := 0; i < 10; i++ {
		diff := diffRecords(source, store, menuDeletion)
		assert.Equal(t, []MenuRecord{{ID: "a"}, {ID: "b"}, {ID: "c"}}, diff.Creates)
		assert.Equal(t, []Deletion{{ID: "x"}, {ID: "z"}}, diff.Deletes)
	}
}

func TestDiffRecords_DeletionCarriesParents(t *testing.T) {
	store := map[string]DishRecord{
		"d": {ID: "d", MenuID: "menu-1", SubMenuID: "sub-1"},
	}

	diff := diffRecords(map[string]DishRecord{}, store, dishDeletion)

	assert.Equal(t, []Deletion{{ID: "d", MenuID: "menu-1", SubMenuID: "sub-1"}}, diff.Deletes)
}

package sync

// Deletion identifies a record to remove, carrying the parent references
// the cascade resolver and the apply step need.
type Deletion struct {
	ID        string
	MenuID    string
	SubMenuID string
}

// Diff holds the outcome of comparing one entity kind between the
// source-of-truth snapshot and the store snapshot.
type Diff[R comparable] struct {
	Creates []R
	Updates []R
	Deletes []Deletion
}

// Empty reports whether the diff proposes no changes
func (d Diff[R]) Empty() bool {
	return len(d.Creates) == 0 && len(d.Updates) == 0 && len(d.Deletes) == 0
}

// diffRecords compares source against store for one entity kind. Records
// present only in source are created; records present on both sides but
// structurally unequal are updated with the source's values (source is
// always authoritative); records present only in store are deleted.
// Iteration is in sorted id order so apply and tests are deterministic.
func diffRecords[R comparable](source, store map[string]R, deletion func(id string, stored R) Deletion) Diff[R] {
	var diff Diff[R]

	for _, id := range sortedKeys(source) {
		record := source[id]
		stored, exists := store[id]
		if !exists {
			diff.Creates = append(diff.Creates, record)
		} else if stored != record {
			diff.Updates = append(diff.Updates, record)
		}
	}

	for _, id := range sortedKeys(store) {
		if _, exists := source[id]; !exists {
			diff.Deletes = append(diff.Deletes, deletion(id, store[id]))
		}
	}

	return diff
}

func menuDeletion(id string, _ MenuRecord) Deletion {
	return Deletion{ID: id}
}

func submenuDeletion(id string, stored SubMenuRecord) Deletion {
	return Deletion{ID: id, MenuID: stored.MenuID}
}

func dishDeletion(id string, stored DishRecord) Deletion {
	return Deletion{ID: id, MenuID: stored.MenuID, SubMenuID: stored.SubMenuID}
}

package sync

// Cascade pruning: when a parent is deleted the database removes its
// children by cascade, so the store snapshot must forget those children
// before the child level is diffed. Otherwise the next-level diff would
// still see them as "present in store" and propose updates or deletes
// for records that are already gone.

// PruneMenuChildren removes submenus and dishes of deleted menus from
// the snapshot. Must run after the menu-level diff and before the
// submenu-level diff.
func (s *Snapshot) PruneMenuChildren(deleted []Deletion) {
	if len(deleted) == 0 {
		return
	}

	menuIDs := make(map[string]struct{}, len(deleted))
	for _, del := range deleted {
		menuIDs[del.ID] = struct{}{}
	}

	for id, submenu := range s.SubMenus {
		if _, gone := menuIDs[submenu.MenuID]; gone {
			delete(s.SubMenus, id)
		}
	}
	for id, dish := range s.Dishes {
		if _, gone := menuIDs[dish.MenuID]; gone {
			delete(s.Dishes, id)
		}
	}
}

// PruneSubMenuChildren removes dishes of deleted submenus from the
// snapshot. Must run after the submenu-level diff and before the
// dish-level diff.
func (s *Snapshot) PruneSubMenuChildren(deleted []Deletion) {
	if len(deleted) == 0 {
		return
	}

	submenuIDs := make(map[string]struct{}, len(deleted))
	for _, del := range deleted {
		submenuIDs[del.ID] = struct{}{}
	}

	for id, dish := range s.Dishes {
		if _, gone := submenuIDs[dish.SubMenuID]; gone {
			delete(s.Dishes, id)
		}
	}
}

package models

// layoutSlotCounts maps a layout_type to the number of slots it renders.
// 1-6 are even splits; 10+N variants reserve a main area.
var layoutSlotCounts = map[int]int{
	1: 1, // single screen
	2: 2, // left/right
	3: 3, // three columns
	4: 4, // 2x2 grid
	5: 5, // two top, three bottom
	6: 6, // 2x3 grid

	12: 2, // top main + bottom
	13: 3, // left main + two right
	14: 4, // top main + three bottom
	15: 5, // top main + four bottom
	16: 6, // left main + four right
}

const defaultSlotCount = 4

// SlotCountForLayout returns how many slots a layout needs, defaulting to the
// 2x2 grid for unknown layout ids.
func SlotCountForLayout(layoutType int) int {
	if n, ok := layoutSlotCounts[layoutType]; ok {
		return n
	}
	return defaultSlotCount
}

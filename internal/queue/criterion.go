// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

package queue

import "fmt"

// Criterion selects how the queue is ordered before transcription.
type Criterion int

const (
	// OrderCreatedAsc transcribes the oldest-created file first.
	OrderCreatedAsc Criterion = iota + 1
	// OrderCreatedDesc transcribes the newest-created file first.
	OrderCreatedDesc
	// OrderModifiedAsc transcribes the least recently modified file first.
	OrderModifiedAsc
	// OrderModifiedDesc transcribes the most recently modified file first.
	OrderModifiedDesc
	// OrderNumbered follows the number in parentheses in each filename;
	// files without one go last.
	OrderNumbered
	// OrderAny keeps the enumeration order.
	OrderAny
)

// Criteria lists every ordering in menu order.
var Criteria = []Criterion{
	OrderCreatedAsc,
	OrderCreatedDesc,
	OrderModifiedAsc,
	OrderModifiedDesc,
	OrderNumbered,
	OrderAny,
}

// names maps each criterion to its flag value.
var names = map[Criterion]string{
	OrderCreatedAsc:   "created-asc",
	OrderCreatedDesc:  "created-desc",
	OrderModifiedAsc:  "modified-asc",
	OrderModifiedDesc: "modified-desc",
	OrderNumbered:     "numbered",
	OrderAny:          "any",
}

// descriptions maps each criterion to its menu line.
var descriptions = map[Criterion]string{
	OrderCreatedAsc:   "creation date, oldest first",
	OrderCreatedDesc:  "creation date, newest first",
	OrderModifiedAsc:  "modification date, oldest first",
	OrderModifiedDesc: "modification date, newest first",
	OrderNumbered:     "number in parentheses in the filename",
	OrderAny:          "no particular order",
}

// String returns the flag value for the criterion.
func (c Criterion) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("criterion(%d)", int(c))
}

// Description returns the human-readable menu line for the criterion.
func (c Criterion) Description() string {
	return descriptions[c]
}

// ParseCriterion accepts either a menu number ("1" through "6") or a
// flag value ("created-asc", "numbered", ...).
func ParseCriterion(s string) (Criterion, error) {
	switch s {
	case "1":
		return OrderCreatedAsc, nil
	case "2":
		return OrderCreatedDesc, nil
	case "3":
		return OrderModifiedAsc, nil
	case "4":
		return OrderModifiedDesc, nil
	case "5":
		return OrderNumbered, nil
	case "6":
		return OrderAny, nil
	}
	for c, name := range names {
		if s == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown order criterion %q", s)
}

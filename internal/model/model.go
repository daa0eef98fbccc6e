package model

// All lists the tables owned by the writing backend, in migration order.
func All() []interface{} {
	return []interface{}{
		&Document{},
		&Snapshot{},
		&Preference{},
	}
}

package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpr{},
	&SysOprLog{},
	// Ordering
	&Employee{},
	&Order{},
	&OrderItem{},
	// Snapshots
	&CatalogSnapshot{},
	&DirectoryEmployee{},
}

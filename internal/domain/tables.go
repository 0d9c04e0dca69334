package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysAuditLog{},
	// Storefront
	&HomeSection{},
	&StoreItem{},
}

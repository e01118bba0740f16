package db

// KVItem is a single persisted key-value entry. It mirrors the flat string
// storage the mobile app keeps its session material in, so the table holds
// exactly one row per storage key.
type KVItem struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `json:"value"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (KVItem) TableName() string { return "kv_items" }

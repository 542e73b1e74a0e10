package scope

import "gorm.io/gorm"

// OrderByLogPosition orders messages by their authoritative per-conversation
// position. Seq breaks created_at ties from concurrent sends.
func OrderByLogPosition(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, seq ASC")
}

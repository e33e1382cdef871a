package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Contact indexes for visibility filtering and ordering
		{"contacts", "idx_contacts_rep", "rep"},
		{"contacts", "idx_contacts_archived", "archived"},
		{"contacts", "idx_contacts_created_at", "created_at"},

		// Follow-up task indexes for dashboard aggregation
		{"follow_up_tasks", "idx_follow_up_tasks_contact_id", "contact_id"},
		{"follow_up_tasks", "idx_follow_up_tasks_due_date", "due_date"},
		{"follow_up_tasks", "idx_follow_up_tasks_completed", "completed"},

		// Child log indexes
		{"interaction_logs", "idx_interaction_logs_contact_id", "contact_id"},
		{"order_logs", "idx_order_logs_contact_id", "contact_id"},
		{"pop_logs", "idx_pop_logs_contact_id", "contact_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}

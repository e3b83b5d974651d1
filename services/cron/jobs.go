package cron

import (
	"log"
	"time"

	"github.com/sabyskool/api/model"
)

// softDeleteRetention is how long soft-deleted rows are kept before the
// daily purge removes them for good
const softDeleteRetention = 30 * 24 * time.Hour

// PurgeExpiredBlacklist removes blacklist entries whose tokens have expired
// anyway and no longer need to be checked
func (m *CronManager) PurgeExpiredBlacklist() {
	result := m.db.
		Where("expires_at < ?", time.Now()).
		Delete(&model.JWTTokenBlacklist{})
	if result.Error != nil {
		log.Printf("[CRON] purge_expired_blacklist failed: %v", result.Error)
		return
	}

	log.Printf("[CRON] purge_expired_blacklist removed %d rows", result.RowsAffected)
}

// PurgeSoftDeleted hard-deletes aulas and professors that were soft-deleted
// longer than the retention window ago
func (m *CronManager) PurgeSoftDeleted() {
	cutoff := time.Now().Add(-softDeleteRetention)

	aulas := m.db.Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Delete(&model.Aula{})
	if aulas.Error != nil {
		log.Printf("[CRON] purge_soft_deleted aulas failed: %v", aulas.Error)
	}

	professors := m.db.Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Delete(&model.AIProfessor{})
	if professors.Error != nil {
		log.Printf("[CRON] purge_soft_deleted professors failed: %v", professors.Error)
	}

	log.Printf("[CRON] purge_soft_deleted removed %d aulas and %d professors",
		aulas.RowsAffected, professors.RowsAffected)
}

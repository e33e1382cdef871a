package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/studiocrm/crm-api/internal/models"
	"github.com/studiocrm/crm-api/internal/utils"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Contact{},
		&models.FollowUpTask{},
		&models.InteractionLog{},
		&models.OrderLog{},
		&models.POPLog{},
		&models.RepNote{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func seedContactWithChildren(t *testing.T, db *gorm.DB) *models.Contact {
	t.Helper()

	contact := &models.Contact{Name: "Blue Bottle", Rep: "rory"}
	require.NoError(t, db.Create(contact).Error)

	due := time.Now().AddDate(0, 0, 1)
	require.NoError(t, db.Create(&models.FollowUpTask{ContactID: contact.ID, Task: "call back", DueDate: &due}).Error)
	require.NoError(t, db.Create(&models.InteractionLog{ContactID: contact.ID, Note: "spoke at trade show"}).Error)
	require.NoError(t, db.Create(&models.OrderLog{ContactID: contact.ID, OrderDate: time.Now()}).Error)
	require.NoError(t, db.Create(&models.POPLog{ContactID: contact.ID, Material: "poster", SentDate: time.Now()}).Error)

	return contact
}

func countChildren(t *testing.T, db *gorm.DB, contactID uint64) (tasks, interactions, orders, pops int64) {
	t.Helper()
	require.NoError(t, db.Model(&models.FollowUpTask{}).Where("contact_id = ?", contactID).Count(&tasks).Error)
	require.NoError(t, db.Model(&models.InteractionLog{}).Where("contact_id = ?", contactID).Count(&interactions).Error)
	require.NoError(t, db.Model(&models.OrderLog{}).Where("contact_id = ?", contactID).Count(&orders).Error)
	require.NoError(t, db.Model(&models.POPLog{}).Where("contact_id = ?", contactID).Count(&pops).Error)
	return
}

func TestContactDeleteCascadesToChildren(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewContactRepository(db)

	contact := seedContactWithChildren(t, db)

	require.NoError(t, repo.Delete(contact.ID))

	tasks, interactions, orders, pops := countChildren(t, db, contact.ID)
	require.Zero(t, tasks)
	require.Zero(t, interactions)
	require.Zero(t, orders)
	require.Zero(t, pops)

	_, err := repo.FindByID(contact.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestContactArchiveRetainsChildren(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewContactRepository(db)

	contact := seedContactWithChildren(t, db)

	require.NoError(t, repo.SetArchived(contact.ID, true))

	tasks, interactions, orders, pops := countChildren(t, db, contact.ID)
	require.EqualValues(t, 1, tasks)
	require.EqualValues(t, 1, interactions)
	require.EqualValues(t, 1, orders)
	require.EqualValues(t, 1, pops)

	// Archived contact drops out of the default listing but stays readable.
	visible, total, err := repo.List(ContactFilter{})
	require.NoError(t, err)
	require.Empty(t, visible)
	require.Zero(t, total)

	all, total, err := repo.List(ContactFilter{ShowArchived: true})
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.EqualValues(t, 1, total)
}

func TestContactDeleteMissingReturnsNotFound(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewContactRepository(db)

	require.ErrorIs(t, repo.Delete(9999), gorm.ErrRecordNotFound)
	require.ErrorIs(t, repo.SetArchived(9999, true), gorm.ErrRecordNotFound)
}

func TestContactListNewestFirst(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewContactRepository(db)

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"oldest", "middle", "newest"} {
		contact := &models.Contact{
			Name:      name,
			Rep:       "rory",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(contact).Error)
	}

	contacts, total, err := repo.List(ContactFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Equal(t, "newest", contacts[0].Name)
	require.Equal(t, "oldest", contacts[2].Name)
}

func TestContactListPaginates(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewContactRepository(db)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		contact := &models.Contact{
			Name:      fmt.Sprintf("contact-%d", i),
			Rep:       "rory",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(contact).Error)
	}

	contacts, total, err := repo.List(ContactFilter{
		Pagination: &utils.PaginationParams{Page: 2, Limit: 2, Offset: 2},
	})
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, contacts, 2)
	require.Equal(t, "contact-2", contacts[0].Name)
	require.Equal(t, "contact-1", contacts[1].Name)
}

func TestContactListFiltersByRep(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewContactRepository(db)

	require.NoError(t, db.Create(&models.Contact{Name: "a", Rep: "rory"}).Error)
	require.NoError(t, db.Create(&models.Contact{Name: "b", Rep: "sasha"}).Error)

	rep := "rory"
	contacts, total, err := repo.List(ContactFilter{Rep: &rep})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "rory", contacts[0].Rep)
}

package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/studiocrm/crm-api/internal/models"
)

func TestRepNoteGetOrCreateIsIdempotent(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRepNoteRepository(db)

	first, err := repo.GetOrCreate("rory")
	require.NoError(t, err)
	require.Equal(t, "rory", first.RepName)
	require.Empty(t, first.Note)

	second, err := repo.GetOrCreate("rory")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.RepNote{}).Where("rep_name = ?", "rory").Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestRepNoteGetOrCreateKeepsExistingNote(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRepNoteRepository(db)

	require.NoError(t, db.Create(&models.RepNote{RepName: "rory", Note: "already here"}).Error)

	note, err := repo.GetOrCreate("rory")
	require.NoError(t, err)
	require.Equal(t, "already here", note.Note)
}

func TestRepNoteUpdateMissingReturnsNotFound(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRepNoteRepository(db)

	require.ErrorIs(t, repo.UpdateNote("ghost", "note"), gorm.ErrRecordNotFound)
}

// TestRepNoteGetOrCreateLosesInsertRace simulates the concurrent first-read:
// our insert hits the unique constraint (zero rows affected) and the
// follow-up select lands on the row the other request created.
func TestRepNoteGetOrCreateLosesInsertRace(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `rep_notes`")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `rep_notes` WHERE rep_name = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "rep_name", "note", "updated_at"}).
			AddRow(7, "rory", "written by the winner", time.Now()))

	repo := NewRepNoteRepository(db)

	note, err := repo.GetOrCreate("rory")
	require.NoError(t, err)
	require.EqualValues(t, 7, note.ID)
	require.Equal(t, "written by the winner", note.Note)

	require.NoError(t, mock.ExpectationsWereMet())
}

package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planfact/planfact-bot/internal/domain"
	"github.com/planfact/planfact-bot/internal/domain/entity"
)

func TestUserRepo_Create(t *testing.T) {
	db := SetupTestDB(t)
	defer db.Close()

	office := &entity.Office{Name: "Kyiv Office"}
	require.NoError(t, newOfficeRepo(db.conn).Create(office))

	userRepo := newUserRepo(db.conn)

	t.Run("should create user successfully", func(t *testing.T) {
		user := &entity.User{
			SlackUserID: "U123456789",
			Name:        "Test User",
			OfficeID:    office.ID,
		}

		err := userRepo.Create(user)

		require.NoError(t, err)
		assert.NotZero(t, user.ID)
	})

	t.Run("should reject duplicate slack user id", func(t *testing.T) {
		user := &entity.User{
			SlackUserID: "U123456789",
			Name:        "Same Person",
			OfficeID:    office.ID,
		}

		err := userRepo.Create(user)

		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindDuplicateEntry))
	})

	t.Run("should reject user without existing office", func(t *testing.T) {
		user := &entity.User{
			SlackUserID: "U999999999",
			Name:        "Orphan",
			OfficeID:    12345,
		}

		err := userRepo.Create(user)

		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindIntegrityViolation))
	})
}

func TestUserRepo_GetRecipients(t *testing.T) {
	db := SetupTestDB(t)
	defer db.Close()

	office, geo, user := SeedOfficeWithGeo(t, db, "Kyiv Office", "North", "U1")
	geoSouth := &entity.Geo{Name: "South", OfficeID: office.ID}
	require.NoError(t, newGeoRepo(db.conn).Create(geoSouth))

	otherOffice := &entity.Office{Name: "Lviv Office"}
	require.NoError(t, newOfficeRepo(db.conn).Create(otherOffice))
	otherUser := &entity.User{SlackUserID: "U2", Name: "Other", OfficeID: otherOffice.ID}
	require.NoError(t, newUserRepo(db.conn).Create(otherUser))

	userRepo := newUserRepo(db.conn)

	recipients, err := userRepo.GetRecipients()

	require.NoError(t, err)
	require.Len(t, recipients, 2)

	first := recipients[0]
	assert.Equal(t, user.SlackUserID, first.User.SlackUserID)
	assert.Equal(t, office.Name, first.Office.Name)
	require.Len(t, first.Geos, 2)
	assert.Equal(t, geo.Name, first.Geos[0].Name)
	assert.Equal(t, "South", first.Geos[1].Name)

	// User in an office without geos still shows up, with no geos.
	second := recipients[1]
	assert.Equal(t, "U2", second.User.SlackUserID)
	assert.Empty(t, second.Geos)
}

func TestUserRepo_GetRecipientBySlackID(t *testing.T) {
	db := SetupTestDB(t)
	defer db.Close()

	office, geo, user := SeedOfficeWithGeo(t, db, "Kyiv Office", "North", "U1")

	userRepo := newUserRepo(db.conn)

	t.Run("should return recipient when found", func(t *testing.T) {
		rec, err := userRepo.GetRecipientBySlackID(user.SlackUserID)

		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, office.ID, rec.Office.ID)
		require.Len(t, rec.Geos, 1)
		assert.Equal(t, geo.ID, rec.Geos[0].ID)
	})

	t.Run("should return nil when not registered", func(t *testing.T) {
		rec, err := userRepo.GetRecipientBySlackID("U404")

		require.NoError(t, err)
		assert.Nil(t, rec)
	})
}

func TestOfficeCascadeDelete(t *testing.T) {
	db := SetupTestDB(t)
	defer db.Close()

	office, _, _ := SeedOfficeWithGeo(t, db, "Kyiv Office", "North", "U1")

	_, err := db.conn.Exec("DELETE FROM offices WHERE id = ?", office.ID)
	require.NoError(t, err)

	geos, err := newGeoRepo(db.conn).GetByOffice(office.ID)
	require.NoError(t, err)
	assert.Empty(t, geos)

	user, err := newUserRepo(db.conn).GetBySlackID("U1")
	require.NoError(t, err)
	assert.Nil(t, user)
}

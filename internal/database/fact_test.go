package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planfact/planfact-bot/internal/domain"
	"github.com/planfact/planfact-bot/internal/domain/entity"
)

func TestFactRepo_Create(t *testing.T) {
	db := SetupTestDB(t)
	defer db.Close()

	_, geo, _ := SeedOfficeWithGeo(t, db, "Kyiv Office", "North", "U123456789")
	factRepo := newFactRepo(db.conn)

	t.Run("should create fact successfully", func(t *testing.T) {
		fact := &entity.Fact{
			GeoID:      geo.ID,
			Month:      Date(2025, time.April, 1),
			AmountFact: 420000,
		}

		err := factRepo.Create(fact)

		require.NoError(t, err)
		assert.NotZero(t, fact.ID)
	})

	t.Run("should normalize month to first day before comparing", func(t *testing.T) {
		// Mid-month date keys the same month as the first entry.
		fact := &entity.Fact{
			GeoID:      geo.ID,
			Month:      Date(2025, time.April, 20),
			AmountFact: 1,
		}

		err := factRepo.Create(fact)

		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindDuplicateEntry))
	})

	t.Run("should accept different month for same geo", func(t *testing.T) {
		fact := &entity.Fact{
			GeoID:      geo.ID,
			Month:      Date(2025, time.May, 1),
			AmountFact: 380000,
		}

		err := factRepo.Create(fact)

		require.NoError(t, err)
	})

	t.Run("should reject fact for unknown geo", func(t *testing.T) {
		fact := &entity.Fact{
			GeoID:      9999,
			Month:      Date(2025, time.April, 1),
			AmountFact: 100,
		}

		err := factRepo.Create(fact)

		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindIntegrityViolation))
	})
}

func TestFactRepo_GetMonthlyDelta(t *testing.T) {
	db := SetupTestDB(t)
	defer db.Close()

	office, geoNorth, _ := SeedOfficeWithGeo(t, db, "Kyiv Office", "North", "U1")
	geoSouth := &entity.Geo{Name: "South", OfficeID: office.ID}
	require.NoError(t, newGeoRepo(db.conn).Create(geoSouth))

	reportRepo := newReportRepo(db.conn)
	factRepo := newFactRepo(db.conn)
	month := Date(2025, time.April, 1)

	// North: two daily plans plus a fact.
	require.NoError(t, reportRepo.Create(&entity.Report{
		OfficeID: office.ID, GeoID: geoNorth.ID, Date: Date(2025, time.April, 10), AmountPlanned: 100,
	}))
	require.NoError(t, reportRepo.Create(&entity.Report{
		OfficeID: office.ID, GeoID: geoNorth.ID, Date: Date(2025, time.April, 11), AmountPlanned: 200,
	}))
	require.NoError(t, factRepo.Create(&entity.Fact{
		GeoID: geoNorth.ID, Month: month, AmountFact: 280,
	}))

	// South: fact only, no plans.
	require.NoError(t, factRepo.Create(&entity.Fact{
		GeoID: geoSouth.ID, Month: month, AmountFact: 50,
	}))

	// Out-of-month report must not count.
	require.NoError(t, reportRepo.Create(&entity.Report{
		OfficeID: office.ID, GeoID: geoNorth.ID, Date: Date(2025, time.May, 1), AmountPlanned: 777,
	}))

	deltas, err := factRepo.GetMonthlyDelta(month)

	require.NoError(t, err)
	require.Len(t, deltas, 2)

	assert.Equal(t, "North", deltas[0].GeoName)
	assert.Equal(t, int64(300), deltas[0].TotalPlanned)
	assert.Equal(t, int64(280), deltas[0].AmountFact)
	assert.Equal(t, int64(-20), deltas[0].Delta())

	assert.Equal(t, "South", deltas[1].GeoName)
	assert.Equal(t, int64(0), deltas[1].TotalPlanned)
	assert.Equal(t, int64(50), deltas[1].AmountFact)

	t.Run("should return empty delta for month without data", func(t *testing.T) {
		deltas, err := factRepo.GetMonthlyDelta(Date(2024, time.January, 1))

		require.NoError(t, err)
		assert.Empty(t, deltas)
	})
}

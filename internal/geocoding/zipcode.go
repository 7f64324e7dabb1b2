package geocoding

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ngmaloney/weather-terminal/internal/database"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

// OpenZipcodeDB opens the local zipcode table. It returns a nil *sql.DB without
// error when the database has not been provisioned yet. A missing file is
// left missing.
func OpenZipcodeDB(dbPath string) (*sql.DB, error) {
	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	db, err := database.Open(dbPath)
	if err != nil {
		return nil, err
	}

	exists, err := database.TableExists(db, "zipcodes")
	if err != nil {
		db.Close()
		return nil, err
	}
	if !exists {
		db.Close()
		return nil, nil
	}
	return db, nil
}

// lookupZipcodeInDB looks up a zipcode in the provided database connection
func lookupZipcodeInDB(db *sql.DB, zipcode string) (*Location, error) {
	var city, state string
	var lat, lon float64

	// ZIP+4 codes are stored by their 5-digit prefix
	if len(zipcode) > 5 {
		zipcode = zipcode[:5]
	}

	err := db.QueryRow(
		"SELECT city, state, latitude, longitude FROM zipcodes WHERE zipcode = ?",
		zipcode,
	).Scan(&city, &state, &lat, &lon)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: zipcode %s", models.ErrNotFound, zipcode)
	}
	if err != nil {
		return nil, fmt.Errorf("querying zipcode: %w", err)
	}

	return &Location{
		Latitude:  lat,
		Longitude: lon,
		Name:      fmt.Sprintf("%s, %s %s, United States", city, state, zipcode),
	}, nil
}

package geocoding

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/ngmaloney/weather-terminal/internal/database"
)

const DefaultZipcodeCSVURL = "https://raw.githubusercontent.com/midwire/free_zipcode_data/develop/all_us_zipcodes.csv"

// ProvisionZipcodeDatabase downloads the US zipcode CSV and loads it into the zipcodes table.
// It is a no-op when the table already exists.
func ProvisionZipcodeDatabase(ctx context.Context, dbPath, csvURL string) error {
	db, err := database.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	exists, err := database.TableExists(db, "zipcodes")
	if err != nil {
		return err
	}
	if exists {
		log.Printf("Zipcode table already present in %s", dbPath)
		return nil
	}

	log.Printf("Downloading zipcode data from %s...", csvURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, csvURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("downloading zipcode CSV: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading zipcode CSV: HTTP error: %d", resp.StatusCode)
	}

	log.Println("Building zipcode database...")
	count, err := buildZipcodeTable(db, resp.Body)
	if err != nil {
		return fmt.Errorf("building database: %w", err)
	}

	log.Printf("Successfully provisioned %d zipcodes at %s", count, dbPath)
	return nil
}

// buildZipcodeTable loads CSV rows of the form
// Zipcode,ZipCodeType,City,State,LocationType,Lat,Long,... into the zipcodes table
func buildZipcodeTable(db *sql.DB, r io.Reader) (int, error) {
	if err := database.EnsureZipcodeSchema(db); err != nil {
		return 0, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		return 0, fmt.Errorf("reading header: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO zipcodes (zipcode, city, state, latitude, longitude) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil || len(record) < 7 {
			continue
		}

		lat, err := strconv.ParseFloat(record[5], 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(record[6], 64)
		if err != nil {
			continue
		}

		if _, err := stmt.Exec(record[0], record[2], record[3], lat, lon); err != nil {
			return count, fmt.Errorf("inserting zipcode %s: %w", record[0], err)
		}

		count++
		if count%5000 == 0 {
			log.Printf("Processed %d zipcodes...", count)
		}
	}

	if err := tx.Commit(); err != nil {
		return count, err
	}
	return count, nil
}

package geocoding

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ngmaloney/weather-terminal/internal/database"
	"github.com/ngmaloney/weather-terminal/internal/models"
	_ "modernc.org/sqlite"
)

func newZipcodeDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	// every pooled connection would get its own :memory: database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.EnsureZipcodeSchema(db); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	return db
}

func TestLookupZipcodeInDB(t *testing.T) {
	db := newZipcodeDB(t)

	_, err := db.Exec(`
		INSERT INTO zipcodes (zipcode, city, state, latitude, longitude)
		VALUES ('02633', 'Chatham', 'MA', 41.6821, -69.9597)
	`)
	if err != nil {
		t.Fatalf("Failed to insert test data: %v", err)
	}

	tests := []struct {
		name    string
		zipcode string
		want    bool
	}{
		{"existing zipcode", "02633", true},
		{"zip plus four", "02633-1234", true},
		{"non-existent zipcode", "99999", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := lookupZipcodeInDB(db, tt.zipcode)
			if !tt.want {
				if !errors.Is(err, models.ErrNotFound) {
					t.Errorf("lookupZipcodeInDB() error = %v, want ErrNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("lookupZipcodeInDB() error = %v, want nil", err)
			}
			if loc.Name != "Chatham, MA 02633, United States" {
				t.Errorf("Name = %q", loc.Name)
			}
			if loc.Latitude != 41.6821 || loc.Longitude != -69.9597 {
				t.Errorf("coordinates = %f,%f", loc.Latitude, loc.Longitude)
			}
		})
	}
}

func TestBuildZipcodeTable(t *testing.T) {
	db := newZipcodeDB(t)

	csvData := strings.Join([]string{
		`"Zipcode","ZipCodeType","City","State","LocationType","Lat","Long","Location","Decommisioned"`,
		`"02633","STANDARD","Chatham","MA","PRIMARY","41.6821","-69.9597","NA-US-MA-CHATHAM","false"`,
		`"90210","STANDARD","Beverly Hills","CA","PRIMARY","34.0901","-118.4065","NA-US-CA-BEVERLY HILLS","false"`,
		`"00000","STANDARD","Nowhere","XX","PRIMARY","","","",""`,
	}, "\n")

	count, err := buildZipcodeTable(db, strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("buildZipcodeTable() error = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2 (row without coordinates skipped)", count)
	}

	loc, err := lookupZipcodeInDB(db, "90210")
	if err != nil {
		t.Fatalf("lookupZipcodeInDB() error = %v", err)
	}
	if !strings.HasPrefix(loc.Name, "Beverly Hills, CA") {
		t.Errorf("Name = %q", loc.Name)
	}
}

func TestOpenZipcodeDB_Unprovisioned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	empty, err := database.Open(path)
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	empty.Close()

	db, err := OpenZipcodeDB(path)
	if err != nil {
		t.Fatalf("OpenZipcodeDB() error = %v", err)
	}
	if db != nil {
		db.Close()
		t.Error("OpenZipcodeDB() should return nil for a database without a zipcodes table")
	}
}

func TestOpenZipcodeDB_MissingFileNotCreated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	path := filepath.Join(dir, "weather-terminal.db")

	db, err := OpenZipcodeDB(path)
	if err != nil {
		t.Fatalf("OpenZipcodeDB() error = %v", err)
	}
	if db != nil {
		db.Close()
		t.Fatal("OpenZipcodeDB() should return nil when no database exists")
	}
	if _, err := os.Stat(dir); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("data directory was created (stat error = %v)", err)
	}
}

func TestGeocode_ZipcodeFromDB(t *testing.T) {
	db := newZipcodeDB(t)
	if _, err := db.Exec(`INSERT INTO zipcodes VALUES ('02633', 'Chatham', 'MA', 41.6821, -69.9597)`); err != nil {
		t.Fatalf("Failed to insert test data: %v", err)
	}

	// an unreachable base URL proves the network is never consulted
	g := NewGeocoder(Options{BaseURL: "http://127.0.0.1:0/search", ZipcodeDB: db})
	loc, err := g.Geocode(context.Background(), "02633")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if loc.Latitude != 41.6821 {
		t.Errorf("Latitude = %f, want 41.6821", loc.Latitude)
	}
}

func TestProvisionZipcodeDatabase(t *testing.T) {
	csvData := "Zipcode,ZipCodeType,City,State,LocationType,Lat,Long\n" +
		"02633,STANDARD,Chatham,MA,PRIMARY,41.6821,-69.9597\n"

	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(csvData))
	}))
	defer srv.Close()

	dbPath := filepath.Join(t.TempDir(), "data", "weather.db")
	if err := ProvisionZipcodeDatabase(context.Background(), dbPath, srv.URL); err != nil {
		t.Fatalf("ProvisionZipcodeDatabase() error = %v", err)
	}

	db, err := OpenZipcodeDB(dbPath)
	if err != nil || db == nil {
		t.Fatalf("OpenZipcodeDB() = %v, %v; want a provisioned database", db, err)
	}
	defer db.Close()

	if _, err := lookupZipcodeInDB(db, "02633"); err != nil {
		t.Errorf("lookupZipcodeInDB() error = %v", err)
	}

	// A second run finds the table and skips the download
	if err := ProvisionZipcodeDatabase(context.Background(), dbPath, srv.URL); err != nil {
		t.Fatalf("second ProvisionZipcodeDatabase() error = %v", err)
	}
	if requests != 1 {
		t.Errorf("downloads = %d, want 1", requests)
	}
}

func TestProvisionZipcodeDatabase_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	err := ProvisionZipcodeDatabase(context.Background(), filepath.Join(t.TempDir(), "weather.db"), srv.URL)
	if err == nil {
		t.Error("ProvisionZipcodeDatabase() should fail on HTTP 404")
	}
}

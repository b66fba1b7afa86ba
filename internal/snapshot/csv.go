// README: CSV snapshot backend; users.csv and trips.csv with the legacy column layout.
package snapshot

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	usersFile = "users.csv"
	tripsFile = "trips.csv"
)

var userHeader = []string{
	"ID", "Type", "Name", "ContactInfo", "Age", "Gender", "Rating", "RatingCount",
	"CarModel", "CarPlate", "CarCapacity", "YearsExp", "PaymentMethod", "MoneySaved", "DistanceCommuted",
}

var tripHeader = []string{
	"TripID", "DriverID", "OriginName", "OriginArea", "DestName", "DestArea",
	"DepartureTime", "Status", "PassengerCount",
}

// CSVStore reads and writes snapshot files in a single directory. A missing
// file means a fresh start, not an error.
type CSVStore struct {
	dir string
}

func NewCSVStore(dir string) *CSVStore {
	return &CSVStore{dir: dir}
}

func (s *CSVStore) SaveUsers(_ context.Context, records []UserRecord) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := []string{
			rec.ID, rec.Role, rec.Name, rec.ContactInfo,
			strconv.Itoa(rec.Age), rec.Gender,
			strconv.FormatFloat(rec.Rating, 'f', 1, 64),
			strconv.Itoa(rec.RatingCount),
			"", "", "", "", "", "", "",
		}
		// role-specific columns; the other role's stay empty
		if rec.Role == "Driver" {
			row[8] = rec.CarModel
			row[9] = rec.CarPlate
			row[10] = strconv.Itoa(rec.CarCapacity)
			row[11] = strconv.Itoa(rec.YearsExperience)
		} else {
			row[12] = rec.PaymentMethod
			row[13] = strconv.FormatFloat(rec.MoneySaved, 'f', 2, 64)
			row[14] = strconv.FormatFloat(rec.DistanceCommuted, 'f', 2, 64)
		}
		rows = append(rows, row)
	}
	return s.writeFile(usersFile, userHeader, rows)
}

func (s *CSVStore) LoadUsers(_ context.Context) ([]UserRecord, error) {
	rows, err := s.readFile(usersFile, len(userHeader))
	if err != nil {
		return nil, err
	}

	records := make([]UserRecord, 0, len(rows))
	for _, row := range rows {
		rec := UserRecord{
			ID:          row[0],
			Role:        row[1],
			Name:        row[2],
			ContactInfo: row[3],
			Gender:      row[5],
		}
		if rec.Age, err = strconv.Atoi(row[4]); err != nil {
			return nil, fmt.Errorf("user %s: bad age: %w", rec.ID, err)
		}
		if rec.Rating, err = strconv.ParseFloat(row[6], 64); err != nil {
			return nil, fmt.Errorf("user %s: bad rating: %w", rec.ID, err)
		}
		if rec.RatingCount, err = strconv.Atoi(row[7]); err != nil {
			return nil, fmt.Errorf("user %s: bad rating count: %w", rec.ID, err)
		}
		switch rec.Role {
		case "Driver":
			rec.CarModel = row[8]
			rec.CarPlate = row[9]
			if rec.CarCapacity, err = strconv.Atoi(row[10]); err != nil {
				return nil, fmt.Errorf("user %s: bad capacity: %w", rec.ID, err)
			}
			if rec.YearsExperience, err = strconv.Atoi(row[11]); err != nil {
				return nil, fmt.Errorf("user %s: bad experience: %w", rec.ID, err)
			}
		case "Rider":
			rec.PaymentMethod = row[12]
			if rec.MoneySaved, err = strconv.ParseFloat(row[13], 64); err != nil {
				return nil, fmt.Errorf("user %s: bad savings: %w", rec.ID, err)
			}
			if rec.DistanceCommuted, err = strconv.ParseFloat(row[14], 64); err != nil {
				return nil, fmt.Errorf("user %s: bad distance: %w", rec.ID, err)
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *CSVStore) SaveTrips(_ context.Context, records []TripRecord) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.TripID, rec.DriverID,
			rec.OriginName, rec.OriginArea, rec.DestName, rec.DestArea,
			rec.DepartureTime, rec.Status,
			strconv.Itoa(rec.PassengerCount),
		})
	}
	return s.writeFile(tripsFile, tripHeader, rows)
}

func (s *CSVStore) LoadTrips(_ context.Context) ([]TripRecord, error) {
	rows, err := s.readFile(tripsFile, len(tripHeader))
	if err != nil {
		return nil, err
	}

	records := make([]TripRecord, 0, len(rows))
	for _, row := range rows {
		rec := TripRecord{
			TripID:        row[0],
			DriverID:      row[1],
			OriginName:    row[2],
			OriginArea:    row[3],
			DestName:      row[4],
			DestArea:      row[5],
			DepartureTime: row[6],
			Status:        row[7],
		}
		if rec.PassengerCount, err = strconv.Atoi(row[8]); err != nil {
			return nil, fmt.Errorf("trip %s: bad passenger count: %w", rec.TripID, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *CSVStore) writeFile(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *CSVStore) readFile(name string, fields int) ([][]string, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = fields
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil // drop header
}
